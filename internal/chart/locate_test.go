package chart

import (
	"testing"

	"vizpro/internal/viewport"
)

var zoomed = viewport.State{Scale: 2, OffsetX: 10, OffsetY: 10}

func TestLocateExactHit(t *testing.T) {
	series := []Series{{Name: "sales", Color: "#ff6ec7", Data: []SeriesPoint{
		{X: "jan", Y: 4.0, XPos: 100, YPos: 100},
	}}}
	got, ok := Locate(Point{210, 210}, Point{}, zoomed, series)
	if !ok {
		t.Fatal("Locate() found nothing; want the point at (100, 100)")
	}
	if got.Series != "sales" || got.Color != "#ff6ec7" || got.X != "jan" {
		t.Fatalf("Locate() = %+v", got)
	}
}

func TestLocateThresholdIsExclusive(t *testing.T) {
	series := []Series{{Name: "s", Data: []SeriesPoint{{XPos: 100, YPos: 100}}}}
	tests := []struct {
		name   string
		chartX float64
		want   bool
	}{
		{name: "distance 30", chartX: 130, want: false},
		{name: "distance 29.99", chartX: 129.99, want: true},
		{name: "distance 0", chartX: 100, want: true},
		{name: "far away", chartX: 400, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := zoomed.ToScreen(tt.chartX, 100)
			_, ok := Locate(Point{sx, sy}, Point{}, zoomed, series)
			if ok != tt.want {
				t.Fatalf("Locate() ok = %v; want %v", ok, tt.want)
			}
		})
	}
}

func TestLocateSubtractsContainerOrigin(t *testing.T) {
	series := []Series{{Name: "s", Data: []SeriesPoint{{XPos: 50, YPos: 20}}}}
	vp := viewport.Default()
	if _, ok := Locate(Point{50, 20}, Point{40, 16}, vp, series); ok {
		t.Fatal("Locate() ignored the container origin")
	}
	if _, ok := Locate(Point{90, 36}, Point{40, 16}, vp, series); !ok {
		t.Fatal("Locate() missed a point under the click")
	}
}

func TestLocateTieFirstWins(t *testing.T) {
	series := []Series{
		{Name: "a", Data: []SeriesPoint{{X: 1.0, XPos: 90, YPos: 100}}},
		{Name: "b", Data: []SeriesPoint{{X: 2.0, XPos: 110, YPos: 100}}},
	}
	got, ok := Locate(Point{100, 100}, Point{}, viewport.Default(), series)
	if !ok {
		t.Fatal("Locate() found nothing")
	}
	if got.Series != "a" {
		t.Fatalf("Locate() picked series %q; want first in order %q", got.Series, "a")
	}
}

func TestLocateNearestWins(t *testing.T) {
	series := []Series{
		{Name: "far", Data: []SeriesPoint{{XPos: 80, YPos: 100}}},
		{Name: "near", Data: []SeriesPoint{{XPos: 95, YPos: 100}, {XPos: 140, YPos: 100}}},
	}
	got, ok := Locate(Point{100, 100}, Point{}, viewport.Default(), series)
	if !ok || got.Series != "near" || got.XPos != 95 {
		t.Fatalf("Locate() = %+v, %v; want the point at xPos 95", got, ok)
	}
}

func TestLocateFallbackColor(t *testing.T) {
	series := []Series{{Name: "s", Data: []SeriesPoint{{}}}}
	got, ok := Locate(Point{3, 4}, Point{}, viewport.Default(), series)
	if !ok {
		t.Fatal("Locate() missed a point at the origin")
	}
	if got.Color != FallbackColor {
		t.Fatalf("Color = %q; want %q", got.Color, FallbackColor)
	}
}

func TestLocateWithoutData(t *testing.T) {
	if _, ok := Locate(Point{1, 1}, Point{}, viewport.Default(), nil); ok {
		t.Fatal("Locate(nil series) selected a point")
	}
	empty := []Series{{Name: "empty"}}
	if _, ok := Locate(Point{1, 1}, Point{}, viewport.Default(), empty); ok {
		t.Fatal("Locate(empty series) selected a point")
	}
}
