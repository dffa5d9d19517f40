package itemset

import (
	"cmp"
	"hash/maphash"
	"iter"
	"slices"
)

// NewSet returns a Set holding the given itemsets. Duplicates are kept once.
func NewSet[T cmp.Ordered](itemsets ...Itemset[T]) *Set[T] {
	s := &Set[T]{
		seed:    maphash.MakeSeed(),
		buckets: make(map[uint64][]int, len(itemsets)),
		items:   make([]Itemset[T], 0, len(itemsets)),
	}
	for _, is := range itemsets {
		s.Add(is)
	}

	return s
}

// Add inserts is and reports whether it was absent.
func (s *Set[T]) Add(is Itemset[T]) bool {
	h := s.hash(is)
	if s.find(h, is) >= 0 {
		return false
	}
	s.buckets[h] = append(s.buckets[h], len(s.items))
	s.items = append(s.items, is)

	return true
}

// Has reports whether is belongs to the set.
func (s *Set[T]) Has(is Itemset[T]) bool {
	return s.find(s.hash(is), is) >= 0
}

// Index returns the insertion position of is, or -1 and false when absent.
func (s *Set[T]) Index(is Itemset[T]) (int, bool) {
	pos := s.find(s.hash(is), is)
	return pos, pos >= 0
}

// Len returns the number of itemsets in the set.
func (s *Set[T]) Len() int { return len(s.items) }

// All iterates the itemsets in insertion order.
func (s *Set[T]) All() iter.Seq[Itemset[T]] {
	return slices.Values(s.items)
}

func (s *Set[T]) find(h uint64, is Itemset[T]) int {
	for _, pos := range s.buckets[h] {
		if s.items[pos].Equal(is) {
			return pos
		}
	}

	return -1
}

func (s *Set[T]) hash(is Itemset[T]) uint64 {
	var h maphash.Hash
	h.SetSeed(s.seed)
	for _, item := range is {
		maphash.WriteComparable(&h, item)
	}

	return h.Sum64()
}
