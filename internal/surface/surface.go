// Package surface combines the viewport controller and the point selection of
// the interactive chart area into one state machine.
package surface

import (
	"vizpro/internal/chart"
	"vizpro/internal/viewport"
)

// InfoMargin offsets the info panel from the click that opened it, in screen pixels.
const InfoMargin = 20.0

type State int

const (
	Idle State = iota
	Dragging
	PointSelected
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case PointSelected:
		return "point-selected"
	default:
		return "idle"
	}
}

// Surface owns the current chart, its viewport and the selected point.
type Surface struct {
	vp       *viewport.Controller
	chart    *chart.Chart
	selected *chart.SelectedPoint
	click    chart.Point

	// press is where the primary button went down; a release at the same spot is a click.
	press   chart.Point
	pressed bool
}

func New() *Surface {
	return &Surface{vp: viewport.New()}
}

func (s *Surface) Viewport() *viewport.Controller { return s.vp }
func (s *Surface) Chart() *chart.Chart            { return s.chart }

func (s *Surface) Selected() (chart.SelectedPoint, bool) {
	if s.selected == nil {
		return chart.SelectedPoint{}, false
	}
	return *s.selected, true
}

// State reports the dominant state; a drag wins over an open selection.
func (s *Surface) State() State {
	switch {
	case s.vp.Dragging():
		return Dragging
	case s.selected != nil:
		return PointSelected
	default:
		return Idle
	}
}

// Load installs a new chart. Viewport, drag and selection are reset regardless of state.
func (s *Surface) Load(c *chart.Chart) {
	s.chart = c
	s.vp.Load()
	s.selected = nil
	s.pressed = false
}

// Clear drops the current chart, as when a new dataset is uploaded.
func (s *Surface) Clear() {
	s.Load(nil)
}

func (s *Surface) Dismiss() { s.selected = nil }

// PointerDown, PointerMove and PointerUp take positions relative to the
// surface origin.
func (s *Surface) PointerDown(button int, p chart.Point) {
	s.vp.OnPointerDown(button, p.X, p.Y)
	if button == viewport.PrimaryButton {
		s.press = p
		s.pressed = true
	}
}

func (s *Surface) PointerMove(p chart.Point) {
	s.vp.OnPointerMove(p.X, p.Y)
}

// PointerUp ends a drag. A release at the press position also counts as a
// click and runs the hit test; it reports whether a click happened.
func (s *Surface) PointerUp(p chart.Point) bool {
	s.vp.OnPointerUp()
	clicked := s.pressed && p == s.press
	s.pressed = false
	if clicked {
		s.Click(p)
	}
	return clicked
}

func (s *Surface) PointerLeave() {
	s.vp.OnPointerLeave()
	s.pressed = false
}

// Click hit-tests a surface-relative position. With no chart loaded it does nothing.
func (s *Surface) Click(p chart.Point) (chart.SelectedPoint, bool) {
	if s.chart == nil {
		return chart.SelectedPoint{}, false
	}
	s.click = p
	sel, ok := chart.Locate(p, chart.Point{}, s.vp.State(), s.chart.Series)
	if !ok {
		s.selected = nil
		return chart.SelectedPoint{}, false
	}
	s.selected = &sel
	return sel, true
}

// InfoAnchor is where the info panel's top-left corner goes, relative to the surface origin.
func (s *Surface) InfoAnchor() chart.Point {
	return chart.Point{X: s.click.X + InfoMargin, Y: s.click.Y + InfoMargin}
}
