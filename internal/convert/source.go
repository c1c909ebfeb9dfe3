package convert

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// contextCheckInterval is how many records are read between checks for
// context cancellation.
const contextCheckInterval = 1000

// Collection is the buffered result of reading a source.
type Collection struct {
	// Columns is the resolved schema, nil when the source was empty.
	Columns []string
	// Rows holds every data record in source order.
	Rows []Row
	// Empty is set when the source yielded no record at all.
	Empty bool
}

// newRecordReader builds the CSV tokenizer for a source.
//
// A leading byte-order mark selects the decoding (UTF-8 or UTF-16) and is
// stripped. Without one the stream is passed through untouched and later
// checked for valid UTF-8.
func newRecordReader(r io.Reader, opts Options) *csv.Reader {
	decoded := transform.NewReader(r, unicode.BOMOverride(transform.Nop))

	cr := csv.NewReader(decoded)
	cr.Comma = opts.delimiter()
	cr.FieldsPerRecord = -1
	if opts.Strict {
		cr.FieldsPerRecord = 0
	}

	return cr
}

// Collect reads the whole source, resolving the header from its first
// record and buffering every data record as a Row.
//
// A malformed record aborts the collection and nothing is returned, so the
// sink is never touched for a source that cannot be fully read.
func Collect(
	ctx context.Context, r io.Reader, hasHeader bool, opts Options,
) (Collection, error) {
	cr := newRecordReader(r, opts)
	logger := opts.logger()

	var columns []string
	var rows []Row

	for n := 0; ; n++ {
		if n%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Collection{}, fmt.Errorf("%w: %w", ErrReadSource, err)
			}
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Collection{}, fmt.Errorf("%w: %w", ErrReadSource, err)
		}

		line, _ := cr.FieldPos(0)
		if err := validateRecordEncoding(record, line); err != nil {
			return Collection{}, err
		}

		if columns == nil {
			columns = ResolveHeader(record, hasHeader)
			logger.DebugNs("convert", "header resolved", kvColumns(columns, hasHeader))
			if hasHeader {
				continue
			}
		}

		rows = append(rows, NewRow(line, columns, record))
	}

	if columns == nil {
		return Collection{Empty: true}, nil
	}

	return Collection{
		Columns: columns,
		Rows:    rows,
	}, nil
}

// validateRecordEncoding rejects records holding invalid UTF-8.
func validateRecordEncoding(record []string, line int) error {
	for i, field := range record {
		if !utf8.ValidString(field) {
			return fmt.Errorf("%w: line %d, field %d", ErrInvalidEncoding, line, i+1)
		}
	}
	return nil
}
