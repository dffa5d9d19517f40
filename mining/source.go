package mining

import (
	"cmp"
	"iter"

	"github.com/katalvlaran/apriori/itemset"
)

// Materialized is an in-memory Source. Rows are deduplicated into
// Transactions once and replayed on every Open.
type Materialized[T cmp.Ordered] struct {
	rows []itemset.Transaction[T]
}

// Materialize builds a Materialized source from rows. Empty rows are dropped.
func Materialize[T cmp.Ordered](rows [][]T) *Materialized[T] {
	m := &Materialized[T]{rows: make([]itemset.Transaction[T], 0, len(rows))}
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		m.rows = append(m.rows, itemset.NewTransaction(row...))
	}

	return m
}

// Len returns the number of cached transactions.
func (m *Materialized[T]) Len() int { return len(m.rows) }

// Open replays the cached transactions.
func (m *Materialized[T]) Open() (Scan[T], error) {
	if m == nil {
		return nil, ErrNilSource
	}

	return func(yield func(itemset.Transaction[T], error) bool) {
		for _, tx := range m.rows {
			if !yield(tx, nil) {
				return
			}
		}
	}, nil
}

// Factory is a streaming Source backed by a function that returns a fresh
// sequence of rows on every call. Rows are deduplicated as they stream by.
type Factory[T cmp.Ordered] struct {
	fn func() iter.Seq[[]T]
}

// FromFactory wraps fn as a Source. fn must yield the same rows on every call.
func FromFactory[T cmp.Ordered](fn func() iter.Seq[[]T]) *Factory[T] {
	return &Factory[T]{fn: fn}
}

// Open invokes the factory and streams its rows. Every row counts as a
// transaction, empty ones included.
func (f *Factory[T]) Open() (Scan[T], error) {
	if f == nil {
		return nil, ErrNilSource
	}
	if f.fn == nil {
		return nil, ErrNotIterable
	}
	rows := f.fn()
	if rows == nil {
		return nil, ErrNotIterable
	}

	return func(yield func(itemset.Transaction[T], error) bool) {
		for row := range rows {
			if !yield(itemset.NewTransaction(row...), nil) {
				return
			}
		}
	}, nil
}
