package convert

// Row is a single source record keyed by column name.
//
// Values are kept as raw text. When two columns share a name the later
// field wins, which matches how the header is resolved.
type Row struct {
	// Line is the source line the record started on.
	Line   int
	values map[string]string
}

// NewRow maps record fields to columns by position. Fields beyond the
// schema are dropped, columns beyond the record stay absent.
func NewRow(line int, columns []string, record []string) Row {
	values := make(map[string]string, len(columns))
	for i, field := range record {
		if i >= len(columns) {
			break
		}
		values[columns[i]] = field
	}

	return Row{
		Line:   line,
		values: values,
	}
}

// Get returns the value of the named column, or an empty string when the
// row has none.
func (r Row) Get(column string) string {
	return r.values[column]
}

// Has reports whether the row carries a value for the named column.
func (r Row) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// Values returns the row as insert parameters in column order. Missing
// columns become empty strings, never NULL.
func (r Row) Values(columns []string) []any {
	params := make([]any, len(columns))
	for i, column := range columns {
		params[i] = r.Get(column)
	}
	return params
}
