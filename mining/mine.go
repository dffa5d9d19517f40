package mining

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/roaring64"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/apriori/candidate"
	"github.com/katalvlaran/apriori/itemset"
)

// Mine returns every itemset whose support in src is at least minSupport,
// grouped by length, together with the number of transactions read.
//
// Returns:
//
//   - levels: level k holds the frequent k-itemsets with their counts, sorted.
//     levels.Len() == 0 when no single item is frequent.
//   - n:      number of (non-empty) transactions in src.
//   - err:    a validation error matching ErrInvalidInput, or ErrSource.
//
// Preconditions and validation (in order):
//  1. src must be non-nil (ErrNilSource).
//  2. minSupport must be in [0, 1] (ErrBadMinSupport).
//  3. MaxLength must be ≥ 0 (ErrBadMaxLength).
//  4. src.Open must succeed; factories must return a sequence (ErrNotIterable).
func Mine[T cmp.Ordered](src Source[T], minSupport float64, opts ...Option) (*itemset.Collection[T], int, error) {
	// 1) Build Options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate everything before reading a single transaction.
	if src == nil {
		return nil, 0, ErrNilSource
	}
	if math.IsNaN(minSupport) || minSupport < 0 || minSupport > 1 {
		return nil, 0, fmt.Errorf("%w: got %v", ErrBadMinSupport, minSupport)
	}
	if cfg.MaxLength < 0 {
		return nil, 0, fmt.Errorf("%w: got %d", ErrBadMaxLength, cfg.MaxLength)
	}
	scan, err := src.Open()
	if err != nil {
		return nil, 0, sourceError(err)
	}

	// 3) Run.
	r := &runner[T]{
		src:        src,
		options:    cfg,
		minSupport: minSupport,
		log:        cfg.Logger.WithField("run", uuid.NewString()),
		inactive:   roaring64.New(),
		levels:     itemset.NewCollection[T](),
	}
	if err = r.countItems(scan); err != nil {
		return nil, 0, err
	}
	if err = r.grow(); err != nil {
		return nil, 0, err
	}
	r.log.WithFields(logrus.Fields{
		"transactions": r.n,
		"levels":       r.levels.Len(),
		"itemsets":     r.levels.Size(),
	}).Debug("mining finished")

	return r.levels, r.n, nil
}

// runner holds the mutable state of one Mine call.
type runner[T cmp.Ordered] struct {
	src        Source[T]
	options    Options
	minSupport float64
	log        logrus.FieldLogger
	n          int                    // transactions seen in the first pass
	inactive   *roaring64.Bitmap      // rows that matched nothing at some level
	levels     *itemset.Collection[T] // result under construction
}

// frequent applies the inclusive support threshold. Unobserved itemsets never qualify.
func (r *runner[T]) frequent(count int) bool {
	return count > 0 && itemset.Support(count, r.n) >= r.minSupport
}

// countItems performs the first pass: item counts, N, and level 1.
func (r *runner[T]) countItems(scan Scan[T]) error {
	counts := make(map[T]int)
	for tx, err := range scan {
		if err != nil {
			return sourceError(err)
		}
		r.n++
		for item := range tx.All() {
			counts[item]++
		}
	}

	entries := make([]itemset.Entry[T], 0, len(counts))
	for item, c := range counts {
		if r.frequent(c) {
			entries = append(entries, itemset.Entry[T]{Items: itemset.Itemset[T]{item}, Count: c})
		}
	}
	r.log.WithFields(logrus.Fields{
		"level":        1,
		"transactions": r.n,
		"items":        len(counts),
		"frequent":     len(entries),
	}).Debug("level counted")
	if len(entries) == 0 {
		return nil
	}

	return r.levels.Add(itemset.NewLevel(entries))
}

// grow builds levels 2, 3, … until a level yields nothing.
func (r *runner[T]) grow() error {
	prev, ok := r.levels.Level(1)
	if !ok {
		return nil
	}
	for k := 2; r.options.MaxLength == 0 || k <= r.options.MaxLength; k++ {
		// a) Candidates of length k from level k−1.
		cands := slices.Collect(candidate.Generate(prev.Itemsets()))
		if len(cands) == 0 {
			r.log.WithField("level", k).Debug("no candidates")
			return nil
		}

		// b) Count them in one pass.
		counts, err := r.countCandidates(cands)
		if err != nil {
			return err
		}

		// c) Keep the frequent ones.
		entries := make([]itemset.Entry[T], 0, len(cands))
		for i, c := range cands {
			if r.frequent(counts[i]) {
				entries = append(entries, itemset.Entry[T]{Items: c, Count: counts[i]})
			}
		}
		r.log.WithFields(logrus.Fields{
			"level":         k,
			"candidates":    len(cands),
			"frequent":      len(entries),
			"inactive_rows": r.inactive.GetCardinality(),
		}).Debug("level counted")

		// d) Stop, or e) install level k.
		if len(entries) == 0 {
			return nil
		}
		next := itemset.NewLevel(entries)
		if err = r.levels.Add(next); err != nil {
			return err
		}
		prev = next
	}

	return nil
}

// countCandidates scans every active row once and counts candidate matches.
// Rows matching no candidate are marked inactive when row pruning is on.
func (r *runner[T]) countCandidates(cands []itemset.Itemset[T]) ([]int, error) {
	scan, err := r.src.Open()
	if err != nil {
		return nil, sourceError(err)
	}

	counts := make([]int, len(cands))
	var row uint64
	for tx, err := range scan {
		if err != nil {
			return nil, sourceError(err)
		}
		id := row
		row++
		if r.inactive.Contains(id) {
			continue
		}

		matched := false
		for i, c := range cands {
			if tx.ContainsAll(c) {
				counts[i]++
				matched = true
			}
		}
		if !matched && r.options.RowPruning {
			r.inactive.Add(id)
		}
	}

	return counts, nil
}

// sourceError passes validation errors through and tags everything else as ErrSource.
func sourceError(err error) error {
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrSource) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrSource, err)
}
