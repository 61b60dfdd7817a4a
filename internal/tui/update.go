package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	spinner "github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"vizpro/internal/chart"
	"vizpro/internal/config"
	"vizpro/internal/viewport"
)

const (
	sidebarWidth = 28
	panelWidth   = 36
	headerHeight = 1
	footerHeight = 2
)

// layout is the chart area in terminal cells.
type layout struct {
	chartX, chartY int
	chartW, chartH int
}

func (l layout) contains(cx, cy int) bool {
	return cx >= l.chartX && cx < l.chartX+l.chartW && cy >= l.chartY && cy < l.chartY+l.chartH
}

func (m Model) layout() layout {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	x := 0
	if m.showSidebar {
		x = sidebarWidth + 1
	}
	w := contentWidth - x
	if m.panel != panelNone {
		w -= panelWidth + 1
	}
	return layout{chartX: x, chartY: headerHeight, chartW: max(10, w), chartH: contentHeight}
}

// toSurface converts a terminal cell to surface-relative screen pixels at the cell center.
func (m Model) toSurface(l layout, cx, cy int) chart.Point {
	return chart.Point{
		X: (float64(cx-l.chartX) + 0.5) * float64(m.cfg.CellWidthPx),
		Y: (float64(cy-l.chartY) + 0.5) * float64(m.cfg.CellHeightPx),
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case openMsg:
		cmd := m.beginUpload(msg.path)
		return m, cmd
	case uploadedMsg, chartMsg, recsMsg, downloadedMsg, errMsg:
		cmd := m.handleResult(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m *Model) resize() {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	m.l.SetSize(sidebarWidth-2, contentHeight-2)
	m.gallery.SetSize(panelWidth-4, contentHeight-4)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the explorer is filtering, keys belong to the list.
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.pasteMode {
		switch msg.String() {
		case "esc":
			m.pasteMode = false
			m.ta.Blur()
			m.status = "paste cancelled"
			return m, nil
		case "ctrl+d":
			text := strings.TrimSpace(m.ta.Value())
			if text == "" {
				m.status = "paste: empty"
				return m, nil
			}
			m.pasteMode = false
			m.ta.Blur()
			cmd := m.uploadPasted(text + "\n")
			return m, cmd
		}
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		return m, cmd
	}
	if m.panel != panelNone {
		if cmd, handled := m.handlePanelKey(msg); handled {
			return m, cmd
		}
	}

	vp := m.surf.Viewport()
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "+", "=":
		vp.ZoomIn()
		m.status = "zoom: " + vp.State().Percent()
	case "-", "_":
		vp.ZoomOut()
		m.status = "zoom: " + vp.State().Percent()
	case "r":
		vp.Reset()
		m.status = "view reset"
	case "up":
		vp.Pan(0, -float64(m.cfg.CellHeightPx))
	case "down":
		vp.Pan(0, float64(m.cfg.CellHeightPx))
	case "left":
		vp.Pan(-2*float64(m.cfg.CellWidthPx), 0)
	case "right":
		vp.Pan(2*float64(m.cfg.CellWidthPx), 0)
	case "esc":
		m.surf.Dismiss()
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
		}
		m.resize()
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				cmd := m.beginUpload(it.path)
				return m, cmd
			}
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste mode"
	case "c":
		m.togglePanel(panelColumns)
	case "k":
		m.togglePanel(panelColors)
	case "g":
		m.togglePanel(panelGallery)
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrsFromCurrent()
		}
	case "d":
		cmd := m.download()
		return m, cmd
	case "o":
		m.holo = !m.holo
		m.status = fmt.Sprintf("holographic: %v", m.holo)
	case "m":
		if m.renderMode == config.RenderBraille {
			m.renderMode = config.RenderBlocks
		} else {
			m.renderMode = config.RenderBraille
		}
		m.status = "render: " + m.renderMode
	case "h":
		m.helpVisible = !m.helpVisible
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) togglePanel(p panelKind) {
	if m.panel == p {
		m.panel = panelNone
	} else {
		m.panel = p
		m.cursor = 0
	}
	m.resize()
}

// handleMouse feeds the chart surface. Positions outside the chart area end
// any drag as a pointer-leave.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.pasteMode || m.showAttrs {
		return
	}
	l := m.layout()
	inside := l.contains(msg.X, msg.Y)
	p := m.toSurface(l, msg.X, msg.Y)

	if !inside {
		if m.hovering {
			m.surf.PointerLeave()
		}
		m.hovering = false
		return
	}
	m.hovering = true
	m.hover = p

	if tea.MouseEvent(msg).IsWheel() {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.surf.Viewport().OnWheel(-m.cfg.WheelDelta)
		case tea.MouseButtonWheelDown:
			m.surf.Viewport().OnWheel(m.cfg.WheelDelta)
		}
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m.surf.PointerDown(pointerButton(msg.Button), p)
	case tea.MouseActionMotion:
		m.surf.PointerMove(p)
	case tea.MouseActionRelease:
		if m.surf.PointerUp(p) {
			if sel, ok := m.surf.Selected(); ok {
				m.status = fmt.Sprintf("%s  x=%s  y=%s", sel.Series, chart.FormatValue(sel.X), chart.FormatValue(sel.Y))
			}
		}
	}
}

// pointerButton maps terminal buttons onto DOM button numbers.
func pointerButton(b tea.MouseButton) int {
	switch b {
	case tea.MouseButtonLeft:
		return viewport.PrimaryButton
	case tea.MouseButtonMiddle:
		return 1
	case tea.MouseButtonRight:
		return 2
	default:
		return -1
	}
}
