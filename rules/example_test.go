package rules_test

import (
	"fmt"

	"github.com/katalvlaran/apriori/mining"
	"github.com/katalvlaran/apriori/rules"
)

// ExampleGenerate derives the rules that always hold in a tiny basket database.
func ExampleGenerate() {
	src := mining.Materialize([][]string{
		{"bread", "milk"},
		{"bread", "diapers", "beer", "eggs"},
		{"milk", "diapers", "beer", "cola"},
		{"bread", "milk", "diapers", "beer"},
		{"bread", "milk", "diapers", "cola"},
	})
	levels, n, err := mining.Mine[string](src, 0.6)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	found, err := rules.Generate(levels, n, 1.0)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, r := range found {
		fmt.Println(r)
	}
	// Output:
	// (beer) -> (diapers) (conf: 1.000, supp: 0.600, lift: 1.250, conv: +Inf)
}
