package surface

import (
	"testing"

	"vizpro/internal/chart"
	"vizpro/internal/viewport"
)

func testChart() *chart.Chart {
	return &chart.Chart{Series: []chart.Series{{
		Name:  "temperature",
		Color: "#ffb56e",
		Data: []chart.SeriesPoint{
			{X: "mon", Y: 21.0, XPos: 100, YPos: 100},
			{X: "tue", Y: 23.0, XPos: 200, YPos: 80},
		},
	}}}
}

func pt(x, y float64) chart.Point { return chart.Point{X: x, Y: y} }

func TestClickSelectsPoint(t *testing.T) {
	s := New()
	s.Load(testChart())
	s.PointerDown(viewport.PrimaryButton, pt(102, 98))
	if got := s.State(); got != Dragging {
		t.Fatalf("State() = %v; want dragging", got)
	}
	if !s.PointerUp(pt(102, 98)) {
		t.Fatal("PointerUp() at the press position was not a click")
	}
	if got := s.State(); got != PointSelected {
		t.Fatalf("State() = %v; want point-selected", got)
	}
	sel, ok := s.Selected()
	if !ok || sel.X != "mon" || sel.Series != "temperature" {
		t.Fatalf("Selected() = %+v, %v", sel, ok)
	}
	if got := s.InfoAnchor(); got != pt(122, 118) {
		t.Fatalf("InfoAnchor() = %+v; want (122, 118)", got)
	}
}

func TestDragIsNotAClick(t *testing.T) {
	s := New()
	s.Load(testChart())
	s.PointerDown(viewport.PrimaryButton, pt(100, 100))
	s.PointerMove(pt(140, 120))
	if s.PointerUp(pt(140, 120)) {
		t.Fatal("PointerUp() after a drag reported a click")
	}
	if got := s.State(); got != Idle {
		t.Fatalf("State() = %v; want idle", got)
	}
	if vp := s.Viewport().State(); vp.OffsetX != 40 || vp.OffsetY != 20 {
		t.Fatalf("offset = (%v, %v); want (40, 20)", vp.OffsetX, vp.OffsetY)
	}
}

func TestMissClearsSelection(t *testing.T) {
	s := New()
	s.Load(testChart())
	if _, ok := s.Click(pt(100, 100)); !ok {
		t.Fatal("Click() missed")
	}
	if _, ok := s.Click(pt(500, 500)); ok {
		t.Fatal("Click() far away selected a point")
	}
	if _, ok := s.Selected(); ok {
		t.Fatal("Selected() still set after a miss")
	}
}

func TestClickWithoutChartIsNoop(t *testing.T) {
	s := New()
	if _, ok := s.Click(pt(1, 1)); ok {
		t.Fatal("Click() without a chart selected a point")
	}
	if got := s.State(); got != Idle {
		t.Fatalf("State() = %v; want idle", got)
	}
}

func TestLoadResetsEverything(t *testing.T) {
	s := New()
	s.Load(testChart())
	s.Click(pt(100, 100))
	s.Viewport().OnWheel(-500)
	s.PointerDown(viewport.PrimaryButton, pt(10, 10))
	s.PointerMove(pt(60, 60))

	s.Load(testChart())

	if _, ok := s.Selected(); ok {
		t.Fatal("selection survived Load")
	}
	if got := s.Viewport().State(); got != viewport.Default() {
		t.Fatalf("viewport = %+v; want default", got)
	}
	if got := s.State(); got != Idle {
		t.Fatalf("State() = %v; want idle", got)
	}
	s.PointerMove(pt(90, 90))
	if got := s.Viewport().State(); got != viewport.Default() {
		t.Fatalf("move after Load panned to %+v", got)
	}
	if s.PointerUp(pt(90, 90)) {
		t.Fatal("release after Load counted as a click")
	}
}

func TestDismissAndClear(t *testing.T) {
	s := New()
	s.Load(testChart())
	s.Click(pt(200, 80))
	s.Dismiss()
	if got := s.State(); got != Idle {
		t.Fatalf("State() after Dismiss = %v; want idle", got)
	}
	s.Click(pt(200, 80))
	s.Clear()
	if s.Chart() != nil {
		t.Fatal("Chart() not nil after Clear")
	}
	if _, ok := s.Selected(); ok {
		t.Fatal("selection survived Clear")
	}
}

func TestPointerLeaveEndsDragAndPress(t *testing.T) {
	s := New()
	s.Load(testChart())
	s.PointerDown(viewport.PrimaryButton, pt(100, 100))
	s.PointerLeave()
	if got := s.State(); got != Idle {
		t.Fatalf("State() = %v; want idle", got)
	}
	if s.PointerUp(pt(100, 100)) {
		t.Fatal("release after leave counted as a click")
	}
}
