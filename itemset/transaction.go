package itemset

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// NewTransaction builds a Transaction from items, collapsing duplicates.
func NewTransaction[T cmp.Ordered](items ...T) Transaction[T] {
	set := make(map[T]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}

	return Transaction[T]{items: set}
}

// Len returns the number of distinct items in t.
func (t Transaction[T]) Len() int { return len(t.items) }

// Has reports whether item occurs in t.
func (t Transaction[T]) Has(item T) bool {
	_, ok := t.items[item]
	return ok
}

// ContainsAll reports whether every item of s occurs in t.
// This is the inner-loop subset test of mining and runs in O(len(s)).
func (t Transaction[T]) ContainsAll(s Itemset[T]) bool {
	if len(s) > len(t.items) {
		return false
	}
	for _, item := range s {
		if _, ok := t.items[item]; !ok {
			return false
		}
	}

	return true
}

// All iterates the items of t in no particular order.
func (t Transaction[T]) All() iter.Seq[T] {
	return maps.Keys(t.items)
}

// Items returns the items of t as a sorted Itemset.
func (t Transaction[T]) Items() Itemset[T] {
	return Itemset[T](slices.Sorted(maps.Keys(t.items)))
}
