package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/apriori/config"
	"github.com/katalvlaran/apriori/itemset"
	"github.com/katalvlaran/apriori/rules"
)

// miningResult is what Mine returned for the configured input.
type miningResult struct {
	levels *itemset.Collection[string]
	n      int
}

type itemsetsDoc struct {
	Transactions int        `json:"transactions" yaml:"transactions"`
	Levels       []levelDoc `json:"levels" yaml:"levels"`
}

type levelDoc struct {
	K        int          `json:"k" yaml:"k"`
	Itemsets []itemsetDoc `json:"itemsets" yaml:"itemsets"`
}

type itemsetDoc struct {
	Items   []string `json:"items" yaml:"items,flow"`
	Count   int      `json:"count" yaml:"count"`
	Support float64  `json:"support" yaml:"support"`
}

type ruleDoc struct {
	LHS        []string `json:"lhs" yaml:"lhs,flow"`
	RHS        []string `json:"rhs" yaml:"rhs,flow"`
	Count      int      `json:"count" yaml:"count"`
	Confidence float64  `json:"confidence" yaml:"confidence"`
	Support    float64  `json:"support" yaml:"support"`
	Lift       float64  `json:"lift" yaml:"lift"`
	Conviction *float64 `json:"conviction,omitempty" yaml:"conviction,omitempty"` // nil when infinite
}

func writeItemsets(w io.Writer, format string, res *miningResult) error {
	doc := itemsetsDoc{Transactions: res.n, Levels: []levelDoc{}}
	for k, level := range res.levels.Levels() {
		ld := levelDoc{K: k}
		for is, count := range level.All() {
			ld.Itemsets = append(ld.Itemsets, itemsetDoc{
				Items:   is,
				Count:   count,
				Support: itemset.Support(count, res.n),
			})
		}
		doc.Levels = append(doc.Levels, ld)
	}

	switch format {
	case config.OutputJSON:
		return encodeJSON(w, doc)
	case config.OutputYAML:
		return encodeYAML(w, doc)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "K\tITEMSET\tCOUNT\tSUPPORT\n")
	for _, ld := range doc.Levels {
		for _, is := range ld.Itemsets {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%.4f\n", ld.K, strings.Join(is.Items, ", "), is.Count, is.Support)
		}
	}
	fmt.Fprintf(tw, "\n%d transactions\n", res.n)

	return tw.Flush()
}

func writeRules(w io.Writer, format string, found []rules.Rule[string]) error {
	docs := make([]ruleDoc, 0, len(found))
	for _, r := range found {
		d := ruleDoc{
			LHS:        r.LHS,
			RHS:        r.RHS,
			Count:      r.Count,
			Confidence: r.Confidence(),
			Support:    r.Support(),
			Lift:       r.Lift(),
		}
		if conv := r.Conviction(); !math.IsInf(conv, 0) {
			d.Conviction = &conv
		}
		docs = append(docs, d)
	}

	switch format {
	case config.OutputJSON:
		return encodeJSON(w, docs)
	case config.OutputYAML:
		return encodeYAML(w, docs)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "LHS\tRHS\tCONFIDENCE\tSUPPORT\tLIFT\tCONVICTION\n")
	for _, d := range docs {
		conv := "inf"
		if d.Conviction != nil {
			conv = fmt.Sprintf("%.4f", *d.Conviction)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%.4f\t%s\n",
			strings.Join(d.LHS, ", "), strings.Join(d.RHS, ", "), d.Confidence, d.Support, d.Lift, conv)
	}

	return tw.Flush()
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}
