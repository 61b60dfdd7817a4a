package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// inkSum accumulates the colors painted into one cell.
type inkSum struct {
	r, g, b, n float64
}

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	ink  [][]inkSum
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	ink := make([][]inkSum, h)
	for i := range m {
		m[i] = make([]uint8, w)
		ink[i] = make([]inkSum, w)
	}
	return &brailleBuf{w: w, h: h, m: m, ink: ink}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) bool {
	if mx < 0 || my < 0 {
		return false
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return false
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	return true
}

// paint sets a micro-pixel and adds its color to the cell with the given weight.
func (b *brailleBuf) paint(mx, my int, c colorful.Color, weight float64) {
	if !b.setPixel(mx, my) {
		return
	}
	s := &b.ink[my/4][mx/2]
	s.r += c.R * weight
	s.g += c.G * weight
	s.b += c.B * weight
	s.n += weight
}

// drawLineMicro draws a line on the microgrid using Bresenham. Line pixels
// dominate the cell color.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, c colorful.Color) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.paint(x0, y0, c, 16)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (b *brailleBuf) color(cx, cy int) colorful.Color {
	s := b.ink[cy][cx]
	if s.n == 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: s.r / s.n, G: s.g / s.n, B: s.b / s.n}
}

// render returns one styled line per cell row on the theme canvas.
func (b *brailleBuf) render(th theme) []string {
	out := make([]string, b.h)
	bg := ansi.Style{}.BackgroundColor(th.canvas).String()
	var sb strings.Builder
	for y := 0; y < b.h; y++ {
		sb.Reset()
		sb.WriteString(bg)
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				sb.WriteByte(' ')
				continue
			}
			fg := shade(b.color(x, y), th, y)
			sb.WriteString(ansi.Style{}.ForegroundColor(fg).BackgroundColor(th.canvas).Styled(string(rune(0x2800 + int(mask)))))
			sb.WriteString(bg)
		}
		sb.WriteString(ansi.ResetStyle)
		out[y] = sb.String()
	}
	return out
}
