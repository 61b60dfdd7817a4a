package chart

import (
	"bytes"
	"encoding/json"
	"image"
	"strconv"
	"strings"
)

// FallbackColor is used for series the backend sent without a color.
const FallbackColor = "#328e6e"

// Coord is a screen-space coordinate supplied by the backend. Missing, null or
// non-numeric values decode to 0 so the point is still matchable at the origin.
type Coord float64

func (c *Coord) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*c = Coord(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*c = Coord(f)
			return nil
		}
	}
	*c = 0
	return nil
}

// SeriesPoint is one datum and its position in the untransformed chart image.
type SeriesPoint struct {
	X    any   `json:"x"`
	Y    any   `json:"y"`
	XPos Coord `json:"xPos"`
	YPos Coord `json:"yPos"`
}

type Series struct {
	Name  string        `json:"name"`
	Color string        `json:"color"`
	Data  []SeriesPoint `json:"data"`
}

// SelectedPoint is a located point annotated with its series.
type SelectedPoint struct {
	SeriesPoint
	Series string
	Color  string
}

// Chart is one decoded generation result. It is replaced, never mutated.
type Chart struct {
	PNG    []byte
	Image  image.Image
	Series []Series
}

// Bounds returns the image size in chart-space units.
func (c *Chart) Bounds() image.Rectangle {
	if c == nil || c.Image == nil {
		return image.Rectangle{}
	}
	return c.Image.Bounds()
}

// PointCount returns the number of points across all series.
func (c *Chart) PointCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, s := range c.Series {
		n += len(s.Data)
	}
	return n
}

// FormatValue renders a logical x/y value the way the info panel shows it.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
