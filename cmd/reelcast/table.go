package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one table column. Numeric columns align right.
type column struct {
	title   string
	numeric bool
}

// renderTable draws rows under the given columns with rounded borders. Short
// rows are padded and a non-empty footer is rendered below the rows.
func renderTable(columns []column, rows [][]string, footer []string) string {
	if len(columns) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault

	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		configs[i] = table.ColumnConfig{Number: i + 1, AlignHeader: text.AlignLeft, Align: text.AlignLeft}
		if col.numeric {
			configs[i].Align = text.AlignRight
			configs[i].AlignFooter = text.AlignRight
		}
	}
	tw.SetColumnConfigs(configs)

	tw.AppendHeader(tableRow(columns, func(i int) string { return columns[i].title }))
	for _, row := range rows {
		tw.AppendRow(tableRow(columns, cell(row)))
	}
	if len(footer) > 0 {
		tw.AppendFooter(tableRow(columns, cell(footer)))
	}
	return tw.Render()
}

func tableRow(columns []column, value func(int) string) table.Row {
	row := make(table.Row, len(columns))
	for i := range row {
		row[i] = value(i)
	}
	return row
}

func cell(values []string) func(int) string {
	return func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}
}
