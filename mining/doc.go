// Package mining implements the level-wise Apriori driver that discovers every
// frequent itemset in a collection of transactions.
//
// Overview:
//
//   - Level 1: one pass counts every item; items with count/N ≥ minSupport
//     become the sorted singleton level.
//   - Level k ≥ 2: candidates come from candidate.Generate on level k−1. One
//     pass over the transactions counts, for every active row, which
//     candidates it contains. Candidates with count/N ≥ minSupport form level k.
//   - The loop stops at the first level that produces no candidates or no
//     frequent itemsets (or after WithMaxLength levels).
//
// Row skipping:
//
//	A row that contains none of the level-k candidates cannot contain any
//	level-(k+1) candidate either, because each of those extends a level-k
//	itemset. Such rows are recorded in a roaring bitmap and skipped on every
//	later pass. Skipping only saves work; WithRowPruning(false) turns it off
//	and produces identical results.
//
// Sources:
//
//	Mine re-reads the transactions once per level through the Source interface:
//
//	  - Materialize(rows): in-memory rows deduplicated into Transactions once.
//	  - FromFactory(fn):   fn is called on every pass and must yield the same
//	                       rows each time (files, generators, cursors).
//	  - loader.File:       a file-backed Source[string].
//
//	Materialize drops empty rows. FromFactory yields them as empty transactions,
//	so they count toward N.
//
// Complexity:
//
//   - Time:  O(L · N · C · k) in the worst case for L levels, N rows, C candidates
//     per level and itemset length k. Row skipping shrinks N level by level.
//   - Space: O(C + I) for candidates and item counts, plus the bitmap of skipped rows.
//     Materialize additionally holds all rows in memory.
//
// Errors (sentinel):
//
//   - ErrInvalidInput:  root of every validation error below.
//   - ErrNilSource:     the source is nil.
//   - ErrNotIterable:   a factory is missing or returned a nil sequence.
//   - ErrBadMinSupport: minSupport is NaN or outside [0, 1].
//   - ErrBadMaxLength:  WithMaxLength got a negative value.
//   - ErrSource:        a source failed while being read (I/O-backed sources only).
//
// All validation happens before the first transaction is read; invalid input
// never produces a partial result.
//
// Example:
//
//	src := mining.Materialize([][]int{{1, 3, 4}, {2, 3, 5}, {1, 2, 3, 5}, {2, 5}})
//	levels, n, err := mining.Mine[int](src, 0.4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	l3, _ := levels.Level(3) // {(2, 3, 5): 2}, n == 4
package mining
