package itemset

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// New returns an Itemset holding items sorted ascending with duplicates removed.
// The input slice is not modified.
func New[T cmp.Ordered](items ...T) Itemset[T] {
	s := slices.Clone(items)
	slices.Sort(s)

	return Itemset[T](slices.Compact(s))
}

// Compare orders two itemsets lexicographically; it is suitable for slices.SortFunc.
func Compare[T cmp.Ordered](a, b Itemset[T]) int {
	return slices.Compare(a, b)
}

// Len returns the number of items in s.
func (s Itemset[T]) Len() int { return len(s) }

// Equal reports whether s and o hold the same items.
func (s Itemset[T]) Equal(o Itemset[T]) bool {
	return slices.Equal(s, o)
}

// Compare orders s against o lexicographically.
func (s Itemset[T]) Compare(o Itemset[T]) int {
	return slices.Compare(s, o)
}

// Contains reports whether item is in s. Runs in O(log k).
func (s Itemset[T]) Contains(item T) bool {
	_, ok := slices.BinarySearch(s, item)
	return ok
}

// IsSubsetOf reports whether every item of s is in o. Both must be sorted.
// Runs in O(len(s) + len(o)) by merging.
func (s Itemset[T]) IsSubsetOf(o Itemset[T]) bool {
	if len(s) > len(o) {
		return false
	}
	j := 0
	for _, item := range s {
		for j < len(o) && o[j] < item {
			j++
		}
		if j == len(o) || o[j] != item {
			return false
		}
		j++
	}

	return true
}

// Without returns a copy of s with the item at position i removed.
// It panics if i is out of range.
func (s Itemset[T]) Without(i int) Itemset[T] {
	out := make(Itemset[T], 0, len(s)-1)
	out = append(out, s[:i]...)

	return append(out, s[i+1:]...)
}

// Difference returns the items of s not in o, in order.
func (s Itemset[T]) Difference(o Itemset[T]) Itemset[T] {
	out := make(Itemset[T], 0, len(s))
	for _, item := range s {
		if !o.Contains(item) {
			out = append(out, item)
		}
	}

	return out
}

// Union returns the sorted union of s and o.
func (s Itemset[T]) Union(o Itemset[T]) Itemset[T] {
	out := make(Itemset[T], 0, len(s)+len(o))
	i, j := 0, 0
	for i < len(s) && j < len(o) {
		switch {
		case s[i] < o[j]:
			out = append(out, s[i])
			i++
		case s[i] > o[j]:
			out = append(out, o[j])
			j++
		default:
			out = append(out, s[i])
			i++
			j++
		}
	}
	out = append(out, s[i:]...)

	return append(out, o[j:]...)
}

// String renders s as "(a, b, c)".
func (s Itemset[T]) String() string {
	parts := make([]string, len(s))
	for i, item := range s {
		parts[i] = fmt.Sprint(item)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// Support returns count/n, the fraction of transactions containing an itemset.
// It returns 0 when n is not positive.
func Support(count, n int) float64 {
	if n <= 0 {
		return 0
	}

	return float64(count) / float64(n)
}
