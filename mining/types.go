package mining

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/apriori/itemset"
)

// ErrInvalidInput is the root of every caller-input validation error.
var ErrInvalidInput = errors.New("mining: invalid input")

// Validation errors; each one matches ErrInvalidInput with errors.Is.
var (
	// ErrNilSource indicates that Mine received no transaction source.
	ErrNilSource = fmt.Errorf("%w: transaction source is nil", ErrInvalidInput)

	// ErrNotIterable indicates a factory that is missing or returns a nil sequence.
	ErrNotIterable = fmt.Errorf("%w: transaction factory must return a sequence", ErrInvalidInput)

	// ErrBadMinSupport indicates a minimum support that is NaN or outside [0, 1].
	ErrBadMinSupport = fmt.Errorf("%w: min support must be a number in [0, 1]", ErrInvalidInput)

	// ErrBadMaxLength indicates a negative maximum itemset length.
	ErrBadMaxLength = fmt.Errorf("%w: max length must be non-negative", ErrInvalidInput)
)

// ErrSource indicates that a source failed while its transactions were being read.
var ErrSource = errors.New("mining: transaction source failed")

// Scan is one pass over the transactions of a Source. A non-nil error aborts mining.
type Scan[T cmp.Ordered] func(yield func(itemset.Transaction[T], error) bool)

// Source produces a fresh pass over the same logical transactions on every Open.
// Mine calls Open once per level.
type Source[T cmp.Ordered] interface {
	Open() (Scan[T], error)
}

// Options configures Mine.
//
// Logger     – receives per-level debug records; default logrus.StandardLogger().
// RowPruning – skip rows that matched no candidate at an earlier level; default true.
// MaxLength  – stop after itemsets of this length; 0 (default) means unbounded.
type Options struct {
	Logger     logrus.FieldLogger
	RowPruning bool
	MaxLength  int
}

// Option represents a functional option for configuring Mine.
type Option func(*Options)

// WithLogger sets the logger used for progress records. A nil logger is ignored.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRowPruning enables or disables skipping of rows that can no longer match.
// Results are identical either way; only running time differs.
func WithRowPruning(enabled bool) Option {
	return func(o *Options) {
		o.RowPruning = enabled
	}
}

// WithMaxLength limits the length of mined itemsets. Zero means no limit;
// a negative value makes Mine fail with ErrBadMaxLength.
func WithMaxLength(k int) Option {
	return func(o *Options) {
		o.MaxLength = k
	}
}

// DefaultOptions returns the Options used when Mine is called without options.
func DefaultOptions() Options {
	return Options{
		Logger:     logrus.StandardLogger(),
		RowPruning: true,
		MaxLength:  0,
	}
}
