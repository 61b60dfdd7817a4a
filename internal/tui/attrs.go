package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"vizpro/internal/chart"
)

// refreshAttrsFromCurrent rebuilds the analyze table from the loaded chart.
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := buildAttributes(m.surf.Chart())
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no chart data to analyze"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: 12})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := append([]string{strconv.Itoa(i + 1)}, r...)
		trows = append(trows, table.Row(row))
	}
	// clear rows first so the table never sees a column/row mismatch
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes lists every series point with its logical and pixel position.
func buildAttributes(c *chart.Chart) ([]string, [][]string) {
	cols := []string{"series", "x", "y", "xPos", "yPos"}
	if c == nil {
		return cols, nil
	}
	rows := make([][]string, 0, c.PointCount())
	for _, s := range c.Series {
		for _, p := range s.Data {
			rows = append(rows, []string{
				s.Name,
				chart.FormatValue(p.X),
				chart.FormatValue(p.Y),
				fmt.Sprintf("%.1f", float64(p.XPos)),
				fmt.Sprintf("%.1f", float64(p.YPos)),
			})
		}
	}
	return cols, rows
}
