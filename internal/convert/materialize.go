package convert

import (
	"context"
	"fmt"

	"github.com/ATechAdventurer/csv2sqlite/internal/log"
)

// Materialize replaces the table described by spec with the given rows.
//
// The steps run in order: drop, create, prepare, insert every row, then
// finalize the statement and close the sink. A failing drop, create or
// prepare aborts before any insert. A failing insert is logged and
// counted, the remaining rows are still attempted. The sink is closed in
// every case.
func Materialize(
	ctx context.Context, sink Sink, spec TableSpec, rows []Row, opts Options,
) (imported int, failed int, err error) {
	logger := opts.logger()

	defer func() {
		closeErr := sink.Close()
		if closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrCloseSink, closeErr)
		}
	}()

	if err := sink.Replace(ctx, spec.Name); err != nil {
		return 0, 0, fmt.Errorf("%w %q: %w", ErrDropTable, spec.Name, err)
	}

	if err := sink.Create(ctx, spec); err != nil {
		return 0, 0, fmt.Errorf("%w %q: %w", ErrCreateTable, spec.Name, err)
	}
	logger.DebugNs("convert", "table created", log.KV{
		"table":   spec.Name,
		"columns": spec.Columns,
	})

	inserter, err := sink.Prepare(ctx, spec)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrPrepareInsert, err)
	}

	for i, row := range rows {
		if missing := missingColumns(row, spec.Columns); len(missing) > 0 {
			logger.DebugNs("convert", "row padded with empty strings", log.KV{
				"table":   spec.Name,
				"row":     i + 1,
				"line":    row.Line,
				"missing": missing,
			})
		}

		if err := inserter.Insert(ctx, row.Values(spec.Columns)); err != nil {
			failed++
			opts.rowFailed()
			logger.WarnNs("convert", "failed to insert row", log.KV{
				"table": spec.Name,
				"row":   i + 1,
				"line":  row.Line,
				"error": err.Error(),
			})
			continue
		}
		imported++
		opts.rowInserted()
	}

	if err := inserter.Close(); err != nil {
		return imported, failed, fmt.Errorf("%w: %w", ErrFinalize, err)
	}

	return imported, failed, nil
}

// missingColumns returns the columns the row has no value for.
func missingColumns(row Row, columns []string) []string {
	var missing []string
	for _, column := range columns {
		if !row.Has(column) {
			missing = append(missing, column)
		}
	}
	return missing
}
