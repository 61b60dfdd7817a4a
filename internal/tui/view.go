package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	th := m.theme()
	l := m.layout()
	contentWidth := max(10, m.width)

	// Header
	title := " vizpro ─ chart projection surface "
	if m.holo {
		title = " vizpro ─ holographic projection "
	}
	header := th.title.Render(title)
	if m.sess.Dataset != "" {
		header += dimStyle.Render(" " + m.sess.Dataset + " · " + m.sess.GraphType)
	}
	header = lipgloss.NewStyle().Width(contentWidth).MaxHeight(headerHeight).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Height(l.chartH).Render(m.l.View())
	}

	// Chart area
	var chartView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, l.chartW-6)
		}
		maxW := min(l.chartW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(l.chartH-2, 20))
		box := th.box.Width(maxW).Render(m.tbl.View())
		chartView = lipgloss.Place(l.chartW, l.chartH, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(l.chartW)
		m.ta.SetHeight(min(l.chartH, 12))
		chartView = lipgloss.NewStyle().Width(l.chartW).Height(l.chartH).Render(m.ta.View())
	default:
		chartView = m.renderChart(l.chartW, l.chartH)
		if info := m.infoPanel(); info != "" {
			x, y := m.infoCell()
			chartView = overlay(chartView, info, x, y)
		}
	}

	parts := []string{}
	if m.showSidebar {
		parts = append(parts, sidebar, " ")
	}
	parts = append(parts, chartView)
	if m.panel != panelNone {
		parts = append(parts, " ", m.renderPanel(l.chartH))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	// Footer
	status := m.status
	if m.busy() {
		status = m.spin.View() + " " + status
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, dimStyle.Render(" "+status+" "), m.renderHelp())
	coords := dimStyle.Render("  zoom " + m.surf.Viewport().State().Percent() + "  ")
	if m.hovering && m.surf.Chart() != nil {
		x, y := m.surf.Viewport().State().ToChart(m.hover.X, m.hover.Y)
		coords = dimStyle.Render(fmt.Sprintf("  x=%.0f y=%.0f", x, y)) + coords
	}
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return th.app.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"drag/↑↓←→ pan",
		"wheel/+/- zoom",
		"r reset",
		"Tab files",
		"p paste",
		"c columns",
		"k colors",
		"g charts",
		"a analyze",
		"d download",
		"o holo",
		"m render",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
