package chart

import (
	"math"

	"vizpro/internal/viewport"
)

// HitRadius is the exclusive chart-space distance within which a click selects a point.
const HitRadius = 30.0

// Point is a screen or chart position.
type Point struct {
	X, Y float64
}

// Locate finds the point nearest to a click. click and origin are in screen
// space; origin is the untransformed top-left of the chart surface. The first
// point in series order wins ties, and nothing is selected at HitRadius or beyond.
func Locate(click, origin Point, vp viewport.State, series []Series) (SelectedPoint, bool) {
	if len(series) == 0 || vp.Scale == 0 {
		return SelectedPoint{}, false
	}
	cx, cy := vp.ToChart(click.X-origin.X, click.Y-origin.Y)

	best := math.Inf(1)
	var sel SelectedPoint
	found := false
	for _, s := range series {
		for _, p := range s.Data {
			d := math.Hypot(cx-float64(p.XPos), cy-float64(p.YPos))
			if d < best && d < HitRadius {
				best = d
				sel = SelectedPoint{SeriesPoint: p, Series: s.Name, Color: s.Color}
				found = true
			}
		}
	}
	if !found {
		return SelectedPoint{}, false
	}
	if sel.Color == "" {
		sel.Color = FallbackColor
	}
	return sel, true
}
