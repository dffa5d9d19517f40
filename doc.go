// Package apriori is a frequent-itemset mining toolkit built around the
// classical level-wise Apriori algorithm (Agrawal et al., 1994).
//
// What is inside?
//
//	A small, dependency-light set of packages that together cover:
//		• Data model: itemsets, transactions, levels and collections
//		• Candidate generation: sorted-block join + downward-closure pruning
//		• Mining: the level-wise counting driver with row skipping
//		• Loading: re-readable basket and CSV transaction files
//		• Rules: association rules with confidence, lift and conviction
//
// Layout:
//
//	itemset/   Itemset, Transaction, Set, Level and Collection types
//	candidate/ Join, Prune and Generate (lazy iter.Seq pipelines)
//	mining/    Mine, the Source interface and its in-memory/factory adapters
//	loader/    file-backed streaming sources
//	rules/     association-rule derivation
//	config/    YAML configuration for the command-line tool
//	cmd/       the apriori CLI
//
// Quick example:
//
//	src := mining.Materialize([][]int{{1, 3, 4}, {2, 3, 5}, {1, 2, 3, 5}, {2, 5}})
//	levels, n, err := mining.Mine[int](src, 0.4)
//	// levels.Level(3) → {(2,3,5): 2}, n == 4
//
//	go get github.com/katalvlaran/apriori
package apriori
