// Package loader reads transactions from text files for mining.
//
// Formats:
//
//   - FormatBasket: one transaction per line, items separated by Delimiter
//     (default ','). Whitespace around items is trimmed, empty items and blank
//     lines are ignored, and lines starting with '#' are comments. A whitespace
//     delimiter splits on any run of spaces or tabs.
//   - FormatCSV: RFC 4180 records read with encoding/csv; every non-empty cell
//     is an item. Rows may have different lengths.
//
// With Header set, the first record is skipped in both formats.
//
// File is a mining.Source[string]: the file is re-opened and re-parsed on every
// pass, so memory stays bounded by the longest line. ReadAll loads everything
// at once for use with mining.Materialize when the data fits in memory.
//
// Errors (sentinel):
//
//   - ErrEmptyPath:      the path is empty.
//   - ErrUnknownFormat:  the format is neither "basket" nor "csv".
//   - ErrBadDelimiter:   the delimiter is a line break, a quote, the comment marker or invalid UTF-8.
package loader
