package tui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#328E6E")
	borderCol = lipgloss.Color("#243141")

	holoFg     = lipgloss.Color("#B8F7FF")
	holoAccent = lipgloss.Color("#00E5FF")
	holoBorder = lipgloss.Color("#7C3AED")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
)

// theme groups the styles and canvas colors of one look.
type theme struct {
	app   lipgloss.Style
	box   lipgloss.Style
	title lipgloss.Style
	info  lipgloss.Style

	canvas colorful.Color
	// tint is blended into every chart pixel when tintAmount > 0.
	tint       colorful.Color
	tintAmount float64
	scanlines  bool
}

var (
	normalTheme = theme{
		app:    appStyle,
		box:    boxStyle,
		title:  titleStyle,
		info:   boxStyle.BorderForeground(accentFg),
		canvas: mustHex("#0B0F14"),
	}
	holoTheme = theme{
		app:        lipgloss.NewStyle().Foreground(holoFg),
		box:        boxStyle.BorderForeground(holoBorder),
		title:      lipgloss.NewStyle().Foreground(holoAccent).Bold(true),
		info:       boxStyle.BorderForeground(holoAccent).BorderStyle(lipgloss.DoubleBorder()),
		canvas:     mustHex("#05070D"),
		tint:       mustHex("#00E5FF"),
		tintAmount: 0.35,
		scanlines:  true,
	}
)

func (m Model) theme() theme {
	if m.holo {
		return holoTheme
	}
	return normalTheme
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
