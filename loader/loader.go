package loader

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/katalvlaran/apriori/itemset"
	"github.com/katalvlaran/apriori/mining"
)

// maxLineSize bounds a single basket line.
const maxLineSize = 16 << 20

// File is a re-readable transaction file usable as a mining.Source[string].
type File struct {
	path    string
	options Options
}

var _ mining.Source[string] = (*File)(nil)

// NewFile validates the options and returns a File for path.
// The file itself is not touched until Open.
func NewFile(path string, opts ...Option) (*File, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &File{path: path, options: cfg}, nil
}

// Path returns the file path.
func (f *File) Path() string { return f.path }

// Open checks that the file is readable and returns a pass over it.
// The file is opened when the pass starts and closed when it ends.
func (f *File) Open() (mining.Scan[string], error) {
	if f == nil {
		return nil, mining.ErrNilSource
	}
	info, err := os.Stat(f.path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("loader: %s is a directory", f.path)
	}

	return func(yield func(itemset.Transaction[string], error) bool) {
		fh, err := os.Open(f.path)
		if err != nil {
			yield(itemset.Transaction[string]{}, fmt.Errorf("loader: %w", err))
			return
		}
		defer fh.Close()

		stopped := false
		err = parse(fh, f.options, func(row []string) bool {
			if !yield(itemset.NewTransaction(row...), nil) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil && !stopped {
			yield(itemset.Transaction[string]{}, fmt.Errorf("loader: %s: %w", f.path, err))
		}
	}, nil
}

// ReadAll parses every transaction in path into memory.
func ReadAll(path string, opts ...Option) ([][]string, error) {
	f, err := NewFile(path, opts...)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer fh.Close()

	return Read(fh, opts...)
}

// Read parses every transaction from r into memory.
func Read(r io.Reader, opts ...Option) ([][]string, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var rows [][]string
	err := parse(r, cfg, func(row []string) bool {
		rows = append(rows, row)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	return rows, nil
}

// parse feeds every non-empty record of r to emit until emit returns false.
func parse(r io.Reader, o Options, emit func([]string) bool) error {
	if o.Format == FormatCSV {
		return parseCSV(r, o, emit)
	}

	return parseBasket(r, o, emit)
}

func parseBasket(r io.Reader, o Options, emit func([]string) bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	skip := o.Header
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if skip {
			skip = false
			continue
		}
		var fields []string
		if unicode.IsSpace(o.Delimiter) {
			fields = strings.Fields(line)
		} else {
			fields = strings.Split(line, string(o.Delimiter))
		}
		if row := clean(fields); len(row) > 0 && !emit(row) {
			return nil
		}
	}

	return sc.Err()
}

func parseCSV(r io.Reader, o Options, emit func([]string) bool) error {
	cr := csv.NewReader(r)
	cr.Comma = o.Delimiter
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	skip := o.Header
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if skip {
			skip = false
			continue
		}
		if row := clean(rec); len(row) > 0 && !emit(row) {
			return nil
		}
	}
}

// clean trims every field and drops the empty ones into a fresh slice.
func clean(fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}

	return out
}
