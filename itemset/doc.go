// Package itemset defines the data model shared by every stage of frequent-itemset
// mining: items, itemsets, transactions, levels and level collections.
//
// Overview:
//
//   - An Item is any cmp.Ordered value. Only equality, hashing and ordering are used.
//   - An Itemset is a strictly increasing slice of unique items (length ≥ 1).
//     Itemsets are treated as immutable once built; every method that "changes"
//     an itemset returns a fresh copy.
//   - A Transaction is a deduplicated set of items with O(1) membership tests.
//   - A Level holds the frequent itemsets of one length together with their support
//     counts. Its iteration order is always the ascending order of its itemsets;
//     candidate generation relies on that.
//   - A Collection maps level numbers 1..K to Levels and only grows one level at a time.
//
// Ordering:
//
//	Itemsets compare lexicographically (slices.Compare): (1,2) < (1,3) < (2,3),
//	and a proper prefix sorts before its extensions: (1,2) < (1,2,3).
//
// Hashing:
//
//	Set and Level index itemsets with hash/maphash over their items, so lookups
//	cost O(k) expected time for an itemset of length k. Buckets resolve collisions
//	by exact comparison; a false positive is impossible.
//
// Errors (sentinel):
//
//   - ErrLevelOrder: a level was added to a Collection out of sequence.
//   - ErrEmptyLevel: an empty level was added to a Collection.
//
// Thread safety:
//
//   - Values are not synchronized. Build them in one goroutine; once built,
//     Levels and Collections are safe for concurrent readers.
package itemset
