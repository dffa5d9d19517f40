package loader

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Sentinel errors returned by NewFile and ReadAll.
var (
	// ErrEmptyPath indicates that no file path was given.
	ErrEmptyPath = errors.New("loader: path is empty")

	// ErrUnknownFormat indicates an unsupported file format.
	ErrUnknownFormat = errors.New("loader: unknown format")

	// ErrBadDelimiter indicates a delimiter that cannot separate items.
	ErrBadDelimiter = errors.New("loader: invalid delimiter")
)

// Format names a transaction file layout.
type Format string

const (
	// FormatBasket is one delimiter-separated transaction per line.
	FormatBasket Format = "basket"

	// FormatCSV is an RFC 4180 CSV file, one transaction per record.
	FormatCSV Format = "csv"
)

// ParseFormat converts a user-supplied name into a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatBasket, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Options configures how a file is parsed.
//
// Format    – FormatBasket (default) or FormatCSV.
// Delimiter – item separator; default ','.
// Header    – skip the first record; default false.
type Options struct {
	Format    Format
	Delimiter rune
	Header    bool
}

// Option represents a functional option for configuring a loader.
type Option func(*Options)

// WithFormat selects the file layout.
func WithFormat(f Format) Option {
	return func(o *Options) {
		o.Format = f
	}
}

// WithDelimiter sets the item separator.
func WithDelimiter(r rune) Option {
	return func(o *Options) {
		o.Delimiter = r
	}
}

// WithHeader makes the loader skip the first record.
func WithHeader() Option {
	return func(o *Options) {
		o.Header = true
	}
}

// DefaultOptions returns comma-separated basket parsing without a header.
func DefaultOptions() Options {
	return Options{
		Format:    FormatBasket,
		Delimiter: ',',
		Header:    false,
	}
}

func (o Options) validate() error {
	if _, err := ParseFormat(string(o.Format)); err != nil {
		return err
	}
	switch {
	case o.Delimiter == 0, o.Delimiter == '\n', o.Delimiter == '\r', o.Delimiter == '"', o.Delimiter == '#',
		o.Delimiter == utf8.RuneError, !utf8.ValidRune(o.Delimiter):
		return fmt.Errorf("%w: %q", ErrBadDelimiter, o.Delimiter)
	}

	return nil
}
