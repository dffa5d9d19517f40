// Package candidate turns the frequent itemsets of length k into the candidate
// itemsets of length k+1 that the mining driver has to count.
//
// Overview:
//
//   - Join combines itemsets sharing their first k−1 items. Input is scanned in
//     blocks of equal prefix; for every pair a<b of block tail items it yields
//     prefix+(a,b). Work is O(n·b) for n itemsets and mean block size b, rather
//     than O(n²) pairwise comparison.
//   - Prune drops candidates that have a length-k subset missing from the input
//     level (downward closure: every subset of a frequent itemset is frequent).
//     Only subsets formed by removing one of the first k−1 items are checked;
//     the two subsets that drop one of the last two items are exactly the
//     itemsets Join combined, so they are already known to be present.
//   - Generate is Prune(itemsets, Join(itemsets)).
//
// Preconditions (not validated):
//
//   - The input slice is sorted ascending (itemset.Compare) without duplicates,
//     and every itemset is itself strictly increasing. A Level's Itemsets()
//     satisfies this. Unsorted input silently yields incomplete candidates.
//
// Laziness:
//
//	All three functions return iter.Seq values computed on demand. Each is
//	meant to be ranged over once; Prune materializes its lookup set when the
//	range begins.
//
// Example:
//
//	// Agrawal et al. (1994)
//	in := []itemset.Itemset[int]{{1, 2, 3}, {1, 2, 4}, {1, 3, 4}, {1, 3, 5}, {2, 3, 4}}
//	slices.Collect(candidate.Join(in))     // [(1,2,3,4) (1,3,4,5)]
//	slices.Collect(candidate.Generate(in)) // [(1,2,3,4)]
package candidate
