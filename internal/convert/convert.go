// Package convert turns a CSV source into a table of an SQLite database.
//
// A conversion resolves the column names from the first record, buffers
// every data record in memory and then replaces the target table with one
// TEXT column per resolved name. No type inference is done.
package convert

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ATechAdventurer/csv2sqlite/internal/log"
	"github.com/ATechAdventurer/csv2sqlite/internal/util/numutil"
	"github.com/orsinium-labs/enum"
)

// Request is the validated input of a conversion.
type Request struct {
	// SourcePath is the CSV file to read.
	SourcePath string
	// SinkPath is the SQLite database file, or an NSQLite connection
	// string.
	SinkPath string
	// TableName is the table to replace. It must match ^[A-Za-z0-9_]+$.
	TableName string
	// HasHeader tells whether the first record holds the column names.
	HasHeader bool
}

// Options tune a conversion. The zero value is ready to use.
type Options struct {
	// Logger receives per-row failures and debug traces. A zero Logger
	// discards everything.
	Logger log.Logger
	// Strict makes a record with a different field count than the first
	// one a fatal read error. Otherwise short records are padded with
	// empty strings and extra fields are ignored.
	Strict bool
	// Delimiter is the field separator, defaults to a comma.
	Delimiter rune
	// Driver opens file sinks, defaults to DriverMattn.
	Driver Driver
	// OnRowsCollected is called once with the number of buffered rows,
	// right before the sink is touched.
	OnRowsCollected func(total int)
	// OnRowInserted is called after every successful insert.
	OnRowInserted func()
	// OnRowFailed is called after every failed insert.
	OnRowFailed func()
}

func (o Options) logger() log.Logger {
	if !o.Logger.IsInitialized() {
		return log.NewDiscardLogger()
	}
	return o.Logger
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

func (o Options) rowsCollected(total int) {
	if o.OnRowsCollected != nil {
		o.OnRowsCollected(total)
	}
}

func (o Options) rowInserted() {
	if o.OnRowInserted != nil {
		o.OnRowInserted()
	}
}

func (o Options) rowFailed() {
	if o.OnRowFailed != nil {
		o.OnRowFailed()
	}
}

// Status is the kind of a successful conversion.
type Status = enum.Member[string]

var (
	// StatusImported means the table was replaced, possibly with zero rows.
	StatusImported = Status{Value: "imported"}
	// StatusEmptySource means the source had no record and nothing was
	// written.
	StatusEmptySource = Status{Value: "empty_source"}
)

// Outcome describes a successful conversion.
type Outcome struct {
	Status        Status
	Table         string
	SinkPath      string
	Columns       []string
	RowsCollected int
	RowsImported  int
	RowsFailed    int
	Duration      time.Duration
}

// Summary returns the human readable result of the conversion.
func (o Outcome) Summary() string {
	if o.Status == StatusEmptySource {
		return fmt.Sprintf("Source is empty, no table was created in %s", o.SinkPath)
	}

	noun := "rows"
	if o.RowsImported == 1 {
		noun = "row"
	}
	summary := fmt.Sprintf(
		"Imported %s %s into table %q in %s",
		numutil.WithCommas(o.RowsImported), noun, o.Table, o.SinkPath,
	)
	if o.RowsFailed > 0 {
		summary += fmt.Sprintf(" (%s failed)", numutil.WithCommas(o.RowsFailed))
	}
	return summary
}

// Convert runs a whole conversion: it reads the source, and unless the
// source is empty, replaces the target table in the sink.
//
// Once every row is buffered the materialization runs to completion even
// if ctx is cancelled.
func Convert(ctx context.Context, req Request, opts Options) (Outcome, error) {
	start := time.Now()
	logger := opts.logger()

	file, err := os.Open(req.SourcePath)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrReadSource, err)
	}
	defer file.Close()

	collection, err := Collect(ctx, file, req.HasHeader, opts)
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{
		Status:        StatusImported,
		Table:         req.TableName,
		SinkPath:      req.SinkPath,
		Columns:       collection.Columns,
		RowsCollected: len(collection.Rows),
	}

	if collection.Empty {
		outcome.Status = StatusEmptySource
		outcome.Duration = time.Since(start)
		logger.DebugNs("convert", "source is empty, skipping table creation", log.KV{
			"source": req.SourcePath,
		})
		return outcome, nil
	}

	opts.rowsCollected(len(collection.Rows))

	sink, err := OpenSink(ctx, req.SinkPath, opts.Driver)
	if err != nil {
		return Outcome{}, err
	}

	spec := TableSpec{
		Name:    req.TableName,
		Columns: collection.Columns,
	}
	imported, failed, err := Materialize(
		context.WithoutCancel(ctx), sink, spec, collection.Rows, opts,
	)
	if err != nil {
		return Outcome{}, err
	}

	outcome.RowsImported = imported
	outcome.RowsFailed = failed
	outcome.Duration = time.Since(start)

	logger.DebugNs("convert", "conversion finished", log.KV{
		"source":   req.SourcePath,
		"sink":     req.SinkPath,
		"table":    req.TableName,
		"imported": imported,
		"failed":   failed,
		"duration": outcome.Duration.String(),
	})

	return outcome, nil
}

func kvColumns(columns []string, hasHeader bool) log.KV {
	return log.KV{
		"columns":   columns,
		"hasHeader": hasHeader,
	}
}
