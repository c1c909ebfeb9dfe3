package styled

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// NewTableWriter returns a new table.Writer with the custom
// styles for the csv2sqlite CLI.
func NewTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Color.Header = text.Colors{text.FgCyan, text.Bold}
	tw.Style().Color.Footer = text.Colors{text.FgCyan, text.Bold}

	return tw
}

// ColumnsTable renders the columns of a created table, one per line with
// their position and SQLite type.
func ColumnsTable(name string, columns []string) string {
	tw := NewTableWriter()
	tw.SetTitle(name)
	tw.AppendHeader(table.Row{"#", "Column", "Type"})
	for i, column := range columns {
		tw.AppendRow(table.Row{i + 1, column, "TEXT"})
	}
	return tw.Render()
}
