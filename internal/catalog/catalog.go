package catalog

import (
	"fmt"
	"math"
	"strings"
)

// ChartType is one entry of the chart gallery.
type ChartType struct {
	Type        string
	Icon        string
	Name        string
	Description string
}

// QuickCount is how many types the compact gallery shows.
const QuickCount = 6

var chartTypes = []ChartType{
	{"line", "〰", "Quantum Line", "Temporal data streams visualization"},
	{"bar", "▮▮", "Nano Bars", "Molecular-level comparison matrices"},
	{"pie", "⊛", "Holographic Pie", "Sectoral energy distribution mapping"},
	{"area", "◬", "Topographic Area", "Volumetric data terrain modeling"},
	{"scatter", "⏺", "Photon Scatter", "Particle correlation visualization"},
	{"histogram", "▯▯", "Frequency Matrix", "Data wave distribution analysis"},
	{"box", "⬛", "Quantum Box", "Multi-dimensional data containment"},
	{"violin", "♫", "Sonic Violin", "Harmonic data resonance patterns"},
	{"funnel", "⏳", "Temporal Funnel", "Data flow convergence visualization"},
	{"sunburst", "☀", "Solar Flare", "Radial data energy mapping"},
	{"waterfall", "≋", "Hydro Cascade", "Sequential data transformation flow"},
	{"combo", "⚡", "Fusion Chart", "Hybrid data visualization matrix"},
	{"stock", "↗", "Quantum Ticker", "Temporal financial data streams"},
}

// ChartTypes returns a copy of the full gallery in display order.
func ChartTypes() []ChartType {
	out := make([]ChartType, len(chartTypes))
	copy(out, chartTypes)
	return out
}

// Quick returns the compact gallery.
func Quick() []ChartType {
	return ChartTypes()[:QuickCount]
}

// Lookup finds a chart type by its backend identifier.
func Lookup(typ string) (ChartType, bool) {
	for _, c := range chartTypes {
		if c.Type == typ {
			return c, true
		}
	}
	return ChartType{}, false
}

func (c ChartType) Label() string {
	return c.Icon + " " + c.Name
}

// Recommendation is the backend's confidence for one chart type.
type Recommendation struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// Card is a gallery entry annotated with a recommendation confidence in [0, 1].
type Card struct {
	ChartType
	Confidence float64
}

func (c Card) Recommended() bool { return c.Confidence > 0 }

// Match renders the confidence as "NN% match", or "" when not recommended.
func (c Card) Match() string {
	if !c.Recommended() {
		return ""
	}
	return fmt.Sprintf("%d%% match", int(math.Round(c.Confidence*100)))
}

// Meter renders the confidence as a bar of the given width.
func (c Card) Meter(width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(c.Confidence * float64(width)))
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Merge annotates every chart type with the first matching recommendation.
// Types the backend did not mention get zero confidence.
func Merge(recs []Recommendation) []Card {
	cards := make([]Card, 0, len(chartTypes))
	for _, ct := range chartTypes {
		card := Card{ChartType: ct}
		for _, r := range recs {
			if r.Type == ct.Type {
				card.Confidence = r.Confidence
				break
			}
		}
		cards = append(cards, card)
	}
	return cards
}
