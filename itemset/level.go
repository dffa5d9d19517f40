package itemset

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
)

// NewLevel builds a Level from entries, sorting them ascending by itemset.
// The input slice is not modified. When an itemset appears more than once
// only its first entry is kept. All itemsets are expected to share one
// length; K reports the length of the first entry (0 for an empty level).
func NewLevel[T cmp.Ordered](entries []Entry[T]) *Level[T] {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry[T]) int {
		return Compare(a.Items, b.Items)
	})
	sorted = slices.CompactFunc(sorted, func(a, b Entry[T]) bool {
		return a.Items.Equal(b.Items)
	})

	l := &Level[T]{
		entries: sorted,
		index:   NewSet[T](),
	}
	if len(sorted) > 0 {
		l.k = len(sorted[0].Items)
	}
	for _, e := range sorted {
		l.index.Add(e.Items)
	}

	return l
}

// K returns the itemset length held by l.
func (l *Level[T]) K() int { return l.k }

// Len returns the number of itemsets in l.
func (l *Level[T]) Len() int { return len(l.entries) }

// Count returns the support count of is, or false if is is not in l.
func (l *Level[T]) Count(is Itemset[T]) (int, bool) {
	pos, ok := l.index.Index(is)
	if !ok {
		return 0, false
	}

	return l.entries[pos].Count, true
}

// Entries returns a copy of the entries in ascending itemset order.
func (l *Level[T]) Entries() []Entry[T] {
	return slices.Clone(l.entries)
}

// Itemsets returns the itemsets of l in ascending order.
func (l *Level[T]) Itemsets() []Itemset[T] {
	out := make([]Itemset[T], len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Items
	}

	return out
}

// All iterates (itemset, count) pairs in ascending itemset order.
func (l *Level[T]) All() iter.Seq2[Itemset[T], int] {
	return func(yield func(Itemset[T], int) bool) {
		for _, e := range l.entries {
			if !yield(e.Items, e.Count) {
				return
			}
		}
	}
}

// NewCollection returns an empty Collection.
func NewCollection[T cmp.Ordered]() *Collection[T] {
	return &Collection[T]{}
}

// Add installs l as the next level. l must be non-empty and hold itemsets of
// length Len()+1.
func (c *Collection[T]) Add(l *Level[T]) error {
	if l == nil || l.Len() == 0 {
		return ErrEmptyLevel
	}
	if want := len(c.levels) + 1; l.K() != want {
		return fmt.Errorf("%w: got k=%d, want k=%d", ErrLevelOrder, l.K(), want)
	}
	c.levels = append(c.levels, l)

	return nil
}

// Len returns the largest level number, 0 for an empty collection.
func (c *Collection[T]) Len() int { return len(c.levels) }

// Size returns the total number of itemsets across all levels.
func (c *Collection[T]) Size() int {
	n := 0
	for _, l := range c.levels {
		n += l.Len()
	}

	return n
}

// Level returns the level holding itemsets of length k.
func (c *Collection[T]) Level(k int) (*Level[T], bool) {
	if k < 1 || k > len(c.levels) {
		return nil, false
	}

	return c.levels[k-1], true
}

// Levels iterates (k, level) pairs in increasing k.
func (c *Collection[T]) Levels() iter.Seq2[int, *Level[T]] {
	return func(yield func(int, *Level[T]) bool) {
		for i, l := range c.levels {
			if !yield(i+1, l) {
				return
			}
		}
	}
}

// Count returns the support count of is from the level matching its length.
func (c *Collection[T]) Count(is Itemset[T]) (int, bool) {
	l, ok := c.Level(len(is))
	if !ok {
		return 0, false
	}

	return l.Count(is)
}
