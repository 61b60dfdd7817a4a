package catalog

// DefaultPalette is the series color palette offered by the color panel.
var DefaultPalette = []string{
	"#328e6e", "#67ae6e", "#90c67c", "#e1eebc",
	"#6ec8ff", "#ff6ec7", "#c7ff6e", "#ffb56e",
	"#9e6eff", "#ff6e9e", "#6eff9e", "#ff6e6e",
	"#6e6eff", "#ffff6e", "#6effff", "#ff6eff",
}

// Palette is an ordered set of colors used for series.
type Palette []string

// At returns the color for the i-th series, wrapping around.
func (p Palette) At(i int) string {
	if len(p) == 0 {
		return ""
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

// Index returns the position of color in the palette, or -1.
func (p Palette) Index(color string) int {
	for i, c := range p {
		if c == color {
			return i
		}
	}
	return -1
}

// Next returns the color after color, wrapping; unknown colors start at the first entry.
func (p Palette) Next(color string, step int) string {
	if len(p) == 0 {
		return color
	}
	i := p.Index(color)
	if i < 0 {
		return p[0]
	}
	n := (i + step) % len(p)
	if n < 0 {
		n += len(p)
	}
	return p[n]
}
