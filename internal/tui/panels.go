package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vizpro/internal/catalog"
)

type galleryItem struct {
	card    catalog.Card
	current bool
}

func (g galleryItem) Title() string {
	t := g.card.Label()
	if g.current {
		t += " ●"
	}
	return t
}

func (g galleryItem) Description() string {
	if m := g.card.Match(); m != "" {
		return g.card.Meter(8) + " " + m
	}
	return g.card.Description
}

func (g galleryItem) FilterValue() string { return g.card.Name }

// refreshGallery rebuilds the chart type list from the session's cards.
func (m *Model) refreshGallery() {
	cards := m.sess.Cards
	if !m.galleryAll && len(cards) > catalog.QuickCount {
		cards = cards[:catalog.QuickCount]
	}
	items := make([]list.Item, 0, len(cards))
	sel := 0
	for i, c := range cards {
		cur := c.Type == m.sess.GraphType
		if cur {
			sel = i
		}
		items = append(items, galleryItem{card: c, current: cur})
	}
	m.gallery.SetItems(items)
	m.gallery.Select(sel)
	if m.galleryAll {
		m.gallery.Title = "All Chart Types"
	} else {
		m.gallery.Title = "Chart Types"
	}
}

// handlePanelKey handles keys for the open side panel. Unhandled keys fall
// through to the global bindings.
func (m *Model) handlePanelKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()
	if key == "esc" {
		m.panel = panelNone
		m.resize()
		return nil, true
	}
	switch m.panel {
	case panelColumns:
		return m.columnsKey(key)
	case panelColors:
		return m.colorsKey(key)
	case panelGallery:
		switch key {
		case "enter":
			it, ok := m.gallery.SelectedItem().(galleryItem)
			if !ok {
				return nil, true
			}
			m.sess.GraphType = it.card.Type
			m.refreshGallery()
			return m.generate(), true
		case "s":
			m.galleryAll = !m.galleryAll
			m.refreshGallery()
			return nil, true
		case "up", "down", "pgup", "pgdown", "home", "end":
			var cmd tea.Cmd
			m.gallery, cmd = m.gallery.Update(msg)
			return cmd, true
		}
	}
	return nil, false
}

func (m *Model) columnsKey(key string) (tea.Cmd, bool) {
	cats := m.sess.Categories
	switch key {
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(cats)-1 {
			m.cursor++
		}
	case "x":
		if m.cursor < len(cats) {
			m.sess.SetX(cats[m.cursor])
			m.status = "x axis: " + cats[m.cursor]
		}
	case " ", "space", "y":
		if m.cursor < len(cats) {
			m.sess.ToggleY(cats[m.cursor])
			m.status = "y axis: " + strings.Join(m.sess.YColumns, ", ")
		}
	case "enter":
		return m.generate(), true
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) colorsKey(key string) (tea.Cmd, bool) {
	n := len(m.sess.YColumns)
	switch key {
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < n {
			m.cursor++
		}
	case "left", "right":
		step := 1
		if key == "left" {
			step = -1
		}
		if m.cursor < n {
			m.sess.CycleColor(m.cursor, step)
		}
	case " ", "space":
		if m.cursor == n {
			m.sess.SetApplyAll(!m.sess.ApplyAll)
			m.status = fmt.Sprintf("sync spectrum: %v", m.sess.ApplyAll)
		}
	case "enter":
		return m.generate(), true
	default:
		return nil, false
	}
	return nil, true
}

func (m Model) renderPanel(h int) string {
	var body string
	switch m.panel {
	case panelColumns:
		body = m.renderColumnsPanel()
	case panelColors:
		body = m.renderColorsPanel()
	case panelGallery:
		body = m.gallery.View() + "\n" + dimStyle.Render("enter generate  s show all")
	}
	return m.theme().box.Width(panelWidth - 2).Height(max(1, h-2)).Render(body)
}

func (m Model) renderColumnsPanel() string {
	th := m.theme()
	lines := []string{th.title.Render("Data Dimensions")}
	if len(m.sess.Categories) == 0 {
		lines = append(lines, dimStyle.Render("upload a dataset first"))
		return strings.Join(lines, "\n")
	}
	for i, c := range m.sess.Categories {
		mark := "  "
		if i == m.cursor {
			mark = "> "
		}
		tag := "   "
		switch {
		case c == m.sess.XColumn:
			tag = "[X]"
		case m.sess.IsY(c):
			tag = "[Y]"
		}
		line := mark + tag + " " + c
		if i == m.cursor {
			line = th.title.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", dimStyle.Render("x set X  space toggle Y  enter generate"))
	return strings.Join(lines, "\n")
}

func (m Model) renderColorsPanel() string {
	th := m.theme()
	lines := []string{th.title.Render("Chromatic Config")}
	if len(m.sess.YColumns) == 0 {
		lines = append(lines, dimStyle.Render("no y columns selected"))
	}
	for i, y := range m.sess.YColumns {
		mark := "  "
		if i == m.cursor {
			mark = "> "
		}
		col := ""
		if i < len(m.sess.Colors) {
			col = m.sess.Colors[i]
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(col)).Render("██")
		lines = append(lines, padRight(mark+y, 18-len([]rune(mark+y)))+" "+swatch+" "+col)
	}
	mark := "  "
	if m.cursor == len(m.sess.YColumns) {
		mark = "> "
	}
	check := "[ ]"
	if m.sess.ApplyAll {
		check = "[x]"
	}
	lines = append(lines, "", mark+check+" sync spectrum")
	lines = append(lines, "", dimStyle.Render("←→ color  space sync  enter generate"))
	return strings.Join(lines, "\n")
}
