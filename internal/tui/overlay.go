package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"vizpro/internal/chart"
)

// infoPanel renders the details box for the selected point, or "".
func (m Model) infoPanel() string {
	sel, ok := m.surf.Selected()
	if !ok {
		return ""
	}
	th := m.theme()
	label := lipgloss.NewStyle().Bold(true)
	series := lipgloss.NewStyle().Foreground(lipgloss.Color(sel.Color)).Bold(true).Render(sel.Series)
	body := strings.Join([]string{
		th.title.Render("Data Point Details"),
		label.Render("Series: ") + series,
		label.Render("X Value: ") + chart.FormatValue(sel.X),
		label.Render("Y Value: ") + chart.FormatValue(sel.Y),
	}, "\n")
	return th.info.Render(body)
}

// infoCell converts the info anchor to a cell offset within the chart area.
func (m Model) infoCell() (int, int) {
	a := m.surf.InfoAnchor()
	return int(a.X / float64(m.cfg.CellWidthPx)), int(a.Y / float64(m.cfg.CellHeightPx))
}

// overlay paints box over base with its top-left corner at cell (x, y). The
// box is shifted left or up to stay within base when it would overflow.
func overlay(base, box string, x, y int) string {
	if box == "" {
		return base
	}
	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")
	baseW := 0
	for _, l := range baseLines {
		baseW = max(baseW, ansi.StringWidth(l))
	}
	boxW := lipgloss.Width(box)
	x = max(0, min(x, baseW-boxW))
	y = max(0, min(y, len(baseLines)-len(boxLines)))

	for i, bl := range boxLines {
		row := y + i
		if row >= len(baseLines) {
			break
		}
		line := baseLines[row]
		left := ansi.Truncate(line, x, "")
		if lw := ansi.StringWidth(left); lw < x {
			left += strings.Repeat(" ", x-lw)
		}
		right := ""
		if lineW := ansi.StringWidth(line); x+boxW < lineW {
			right = ansi.TruncateLeft(line, x+boxW, "")
		}
		baseLines[row] = left + ansi.ResetStyle + bl + ansi.ResetStyle + right
	}
	return strings.Join(baseLines, "\n")
}
