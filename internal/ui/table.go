package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/lazyconn/internal/inventory"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// InstanceHeaders are the column titles of the instance table.
var InstanceHeaders = []string{"#", "ID", "Name", "Type", "IP Address", "Key"}

// NewTable creates a new Bubbles table with default styling.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	// Unfocused tables still style the cursor row; keep it plain.
	s.Selected = lipgloss.NewStyle()

	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a non-interactive table string.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := NewTable(columns, tableRows)
	return t.View()
}

// RenderInstanceTable renders instances as a numbered table, one row per
// instance in the given order. Columns are sized to fit their content.
func RenderInstanceTable(instances []inventory.Instance) string {
	if len(instances) == 0 {
		return ""
	}

	rows := make([][]string, len(instances))
	for i, inst := range instances {
		rows[i] = inst.Row()
	}
	return RenderSimpleTable(fitColumns(InstanceHeaders, rows), rows)
}

// fitColumns sizes each column to its widest cell (or title).
func fitColumns(headers []string, rows [][]string) []TableColumn {
	cols := make([]TableColumn, len(headers))
	for i, h := range headers {
		cols[i] = TableColumn{Title: h, Width: lipgloss.Width(h)}
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(cols) {
				break
			}
			if w := lipgloss.Width(cell); w > cols[i].Width {
				cols[i].Width = w
			}
		}
	}
	return cols
}
