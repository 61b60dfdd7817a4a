// Package session holds the dataset and chart parameters the user has picked.
package session

import (
	"slices"

	"vizpro/internal/api"
	"vizpro/internal/catalog"
)

// DefaultGraphType is generated right after an upload.
const DefaultGraphType = "line"

type Session struct {
	palette catalog.Palette

	Dataset    string
	Categories []string
	XColumn    string
	YColumns   []string
	Colors     []string
	ApplyAll   bool
	GraphType  string
	Cards      []catalog.Card
}

func New(palette catalog.Palette) *Session {
	if len(palette) == 0 {
		palette = catalog.DefaultPalette
	}
	return &Session{
		palette:   palette,
		GraphType: DefaultGraphType,
		Cards:     catalog.Merge(nil),
	}
}

func (s *Session) Palette() catalog.Palette { return s.palette }

// BeginUpload forgets the previous dataset's columns and recommendations.
func (s *Session) BeginUpload(dataset string) {
	s.Dataset = dataset
	s.Categories = nil
	s.Cards = catalog.Merge(nil)
}

// SetCategories installs the columns of a freshly uploaded dataset, picking the
// first column for X, the second for Y and resetting the chart type.
func (s *Session) SetCategories(cats []string) {
	s.Categories = slices.Clone(cats)
	s.XColumn = ""
	s.YColumns = nil
	if len(cats) > 0 {
		s.XColumn = cats[0]
	}
	if len(cats) > 1 {
		s.YColumns = []string{cats[1]}
	}
	s.Colors = slices.Clone(s.palette[:min(len(s.YColumns), len(s.palette))])
	s.GraphType = DefaultGraphType
	s.syncColors()
}

func (s *Session) SetRecommendations(recs []catalog.Recommendation) {
	s.Cards = catalog.Merge(recs)
}

func (s *Session) SetX(col string) { s.XColumn = col }

// ToggleY adds or removes a Y column, keeping category order.
func (s *Session) ToggleY(col string) {
	if i := slices.Index(s.YColumns, col); i >= 0 {
		s.YColumns = slices.Delete(slices.Clone(s.YColumns), i, i+1)
		if i < len(s.Colors) {
			s.Colors = slices.Delete(slices.Clone(s.Colors), i, i+1)
		}
	} else {
		var next []string
		for _, c := range s.Categories {
			if c == col || slices.Contains(s.YColumns, c) {
				next = append(next, c)
			}
		}
		if !slices.Contains(s.Categories, col) {
			next = append(next, col)
		}
		s.YColumns = next
	}
	s.syncColors()
}

func (s *Session) IsY(col string) bool { return slices.Contains(s.YColumns, col) }

// SetColor changes the i-th series color; with ApplyAll every series follows.
func (s *Session) SetColor(i int, color string) {
	if i < 0 || i >= len(s.Colors) {
		return
	}
	if s.ApplyAll {
		for j := range s.Colors {
			s.Colors[j] = color
		}
		return
	}
	s.Colors[i] = color
}

// CycleColor moves the i-th series color through the palette.
func (s *Session) CycleColor(i, step int) {
	if i < 0 || i >= len(s.Colors) {
		return
	}
	s.SetColor(i, s.palette.Next(s.Colors[i], step))
}

func (s *Session) SetApplyAll(v bool) {
	s.ApplyAll = v
	s.syncColors()
}

// syncColors keeps one color per Y column: padded from the palette, or all
// equal to the first color while ApplyAll is on.
func (s *Session) syncColors() {
	if len(s.YColumns) == 0 {
		return
	}
	if s.ApplyAll && len(s.Colors) > 0 {
		first := s.Colors[0]
		s.Colors = make([]string, len(s.YColumns))
		for i := range s.Colors {
			s.Colors[i] = first
		}
		return
	}
	colors := slices.Clone(s.Colors)
	for len(colors) < len(s.YColumns) {
		colors = append(colors, s.palette.At(len(colors)))
	}
	s.Colors = colors[:len(s.YColumns)]
}

// Request builds the generate_graph payload for the current selection.
func (s *Session) Request(download bool) api.GraphRequest {
	return api.GraphRequest{
		GraphType: s.GraphType,
		XColumn:   s.XColumn,
		YColumns:  slices.Clone(s.YColumns),
		Colors:    slices.Clone(s.Colors),
		ColorAll:  s.ApplyAll,
		Download:  download,
	}
}

// Ready reports whether a dataset with columns has been uploaded.
func (s *Session) Ready() bool { return len(s.Categories) > 0 }
