package candidate

import (
	"cmp"
	"iter"
	"slices"

	"github.com/katalvlaran/apriori/itemset"
)

// Join yields the length-(k+1) itemsets obtained by combining every pair of
// length-k itemsets that share their first k−1 items.
//
// Blocks are emitted in input order; inside a block, pairs (a, b) are emitted
// in ascending order with a < b. For sorted input the output is therefore
// sorted as well.
func Join[T cmp.Ordered](itemsets []itemset.Itemset[T]) iter.Seq[itemset.Itemset[T]] {
	return func(yield func(itemset.Itemset[T]) bool) {
		i := 0
		for i < len(itemsets) {
			// 1) Collect the block of itemsets sharing the prefix of itemsets[i].
			head := itemsets[i]
			prefix := head[:len(head)-1]
			tails := []T{head[len(head)-1]}
			j := i + 1
			for ; j < len(itemsets); j++ {
				next := itemsets[j]
				if !slices.Equal(prefix, next[:len(next)-1]) {
					break
				}
				tails = append(tails, next[len(next)-1])
			}

			// 2) Every 2-combination of tail items extends the prefix.
			//    Tails arrive sorted, so a < b holds for a before b.
			for x := 0; x < len(tails); x++ {
				for y := x + 1; y < len(tails); y++ {
					out := make(itemset.Itemset[T], 0, len(prefix)+2)
					out = append(out, prefix...)
					out = append(out, tails[x], tails[y])
					if !yield(out) {
						return
					}
				}
			}

			// 3) Skip the whole block.
			i = j
		}
	}
}

// Prune yields the candidates whose length-k subsets, formed by removing any
// item except the last two, all belong to itemsets. Input order is preserved.
func Prune[T cmp.Ordered](itemsets []itemset.Itemset[T], candidates iter.Seq[itemset.Itemset[T]]) iter.Seq[itemset.Itemset[T]] {
	return func(yield func(itemset.Itemset[T]) bool) {
		known := itemset.NewSet(itemsets...)
		for c := range candidates {
			if survives(known, c) && !yield(c) {
				return
			}
		}
	}
}

// survives reports whether every checked subset of c is in known.
func survives[T cmp.Ordered](known *itemset.Set[T], c itemset.Itemset[T]) bool {
	for i := 0; i < len(c)-2; i++ {
		if !known.Has(c.Without(i)) {
			return false
		}
	}

	return true
}

// Generate is the Apriori candidate generation step: Prune(itemsets, Join(itemsets)).
func Generate[T cmp.Ordered](itemsets []itemset.Itemset[T]) iter.Seq[itemset.Itemset[T]] {
	return Prune(itemsets, Join(itemsets))
}
