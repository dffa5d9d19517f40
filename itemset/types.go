package itemset

import (
	"cmp"
	"errors"
	"hash/maphash"
)

// Sentinel errors returned by Collection.
var (
	// ErrLevelOrder indicates that a level was added whose length is not
	// exactly one more than the last installed level.
	ErrLevelOrder = errors.New("itemset: level added out of order")

	// ErrEmptyLevel indicates that an empty level was added to a Collection.
	// Collections only ever contain non-empty levels.
	ErrEmptyLevel = errors.New("itemset: level is empty")
)

// Itemset is a strictly increasing sequence of unique items.
//
// Use New to build one from arbitrary input; converting a raw slice directly
// is allowed when the caller already guarantees the ordering.
type Itemset[T cmp.Ordered] []T

// Entry pairs an itemset with its support count.
type Entry[T cmp.Ordered] struct {
	Items Itemset[T] // the itemset, strictly increasing
	Count int        // number of transactions containing Items
}

// Transaction is a deduplicated set of items.
type Transaction[T cmp.Ordered] struct {
	items map[T]struct{}
}

// Set is a hash set of itemsets that remembers insertion order.
type Set[T cmp.Ordered] struct {
	seed    maphash.Seed
	buckets map[uint64][]int // hash → positions in items
	items   []Itemset[T]
}

// Level holds the frequent itemsets of one length, sorted ascending,
// together with their support counts.
type Level[T cmp.Ordered] struct {
	k       int
	entries []Entry[T]
	index   *Set[T] // position in index == position in entries
}

// Collection maps level numbers 1..Len() to non-empty Levels.
type Collection[T cmp.Ordered] struct {
	levels []*Level[T] // levels[i] holds itemsets of length i+1
}
