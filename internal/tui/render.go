package tui

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"vizpro/internal/chart"
	"vizpro/internal/config"
	"vizpro/internal/viewport"
)

const (
	// markerRadius is the selection ring radius in screen pixels.
	markerRadius = 12.0
	// inkThreshold is the Lab distance from the paper color that counts as ink.
	inkThreshold = 0.18
)

// rasterize draws src under the viewport transform into a w x h dot canvas
// where one dot covers dotW x dotH screen pixels.
func rasterize(src image.Image, st viewport.State, dotW, dotH float64, w, h int, bg color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	a := st.Affine()
	s2d := f64.Aff3{
		a[0] / dotW, a[1] / dotW, a[2] / dotW,
		a[3] / dotH, a[4] / dotH, a[5] / dotH,
	}
	draw.BiLinear.Transform(dst, s2d, src, src.Bounds(), draw.Over, nil)
	return dst
}

func (m Model) renderChart(w, h int) string {
	c := m.surf.Chart()
	th := m.theme()
	if c == nil || c.Image == nil {
		msg := "No chart yet.  Tab: open a dataset   p: paste CSV"
		if m.busy() {
			msg = m.spin.View() + " " + m.status
		}
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, dimStyle.Render(msg))
	}
	st := m.surf.Viewport().State()
	if m.renderMode == config.RenderBraille {
		return m.renderBraille(c, st, w, h, th)
	}
	return m.renderBlocks(c, st, w, h, th)
}

// renderBlocks draws two dots per cell with the upper half block, foreground
// for the top dot and background for the bottom one.
func (m Model) renderBlocks(c *chart.Chart, st viewport.State, w, h int, th theme) string {
	dotW := float64(m.cfg.CellWidthPx)
	dotH := float64(m.cfg.CellHeightPx) / 2
	canvas := rasterize(c.Image, st, dotW, dotH, w, h*2, th.canvas)
	if th.tintAmount > 0 {
		tintCanvas(canvas, th)
	}
	if sel, ok := m.surf.Selected(); ok {
		sx, sy := st.ToScreen(float64(sel.XPos), float64(sel.YPos))
		rx := math.Max(1.5, markerRadius/dotW)
		ry := math.Max(1.5, markerRadius/dotH)
		drawMarker(canvas, sx/dotW, sy/dotH, rx, ry, seriesColor(sel.Color))
	}

	lines := make([]string, h)
	var sb strings.Builder
	for y := 0; y < h; y++ {
		sb.Reset()
		var lastTop, lastBot color.RGBA
		for x := 0; x < w; x++ {
			top := canvas.RGBAAt(x, 2*y)
			bot := canvas.RGBAAt(x, 2*y+1)
			if x == 0 || top != lastTop || bot != lastBot {
				sb.WriteString(ansi.Style{}.ForegroundColor(top).BackgroundColor(bot).String())
				lastTop, lastBot = top, bot
			}
			sb.WriteString("▀")
		}
		sb.WriteString(ansi.ResetStyle)
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// renderBraille draws a 2x4 dot grid per cell. Dots that differ from the
// chart's paper color are ink; each cell takes the mean ink color.
func (m Model) renderBraille(c *chart.Chart, st viewport.State, w, h int, th theme) string {
	dotW := float64(m.cfg.CellWidthPx) / 2
	dotH := float64(m.cfg.CellHeightPx) / 4
	paper := paperColor(c.Image)
	canvas := rasterize(c.Image, st, dotW, dotH, w*2, h*4, paper)

	br := newBrailleBuf(w, h)
	for y := 0; y < h*4; y++ {
		for x := 0; x < w*2; x++ {
			px, _ := colorful.MakeColor(canvas.RGBAAt(x, y))
			if px.DistanceLab(paper) > inkThreshold {
				br.paint(x, y, px, 1)
			}
		}
	}
	if sel, ok := m.surf.Selected(); ok {
		sx, sy := st.ToScreen(float64(sel.XPos), float64(sel.YPos))
		mx, my := int(sx/dotW), int(sy/dotH)
		col := seriesColor(sel.Color)
		br.drawLineMicro(mx-4, my, mx+4, my, col)
		br.drawLineMicro(mx, my-4, mx, my+4, col)
	}
	return strings.Join(br.render(th), "\n")
}

func tintCanvas(img *image.RGBA, th theme) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, y, shade(img.RGBAAt(x, y), th, y))
		}
	}
}

// shade applies the theme tint and, on odd rows, the scanline dimming.
func shade(c color.Color, th theme, row int) colorful.Color {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		cc = th.canvas
	}
	if th.tintAmount > 0 {
		cc = cc.BlendLab(th.tint, th.tintAmount).Clamped()
	}
	if th.scanlines && row%2 == 1 {
		cc = cc.BlendLab(th.canvas, 0.3).Clamped()
	}
	return cc
}

func drawMarker(img *image.RGBA, cx, cy, rx, ry float64, col colorful.Color) {
	x0, x1 := int(math.Floor(cx-rx-1)), int(math.Ceil(cx+rx+1))
	y0, y1 := int(math.Floor(cy-ry-1)), int(math.Ceil(cy+ry+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot((float64(x)+0.5-cx)/rx, (float64(y)+0.5-cy)/ry)
			if (d >= 0.6 && d <= 1.15) || d < 0.3 {
				img.Set(x, y, col)
			}
		}
	}
}

// paperColor samples the image's top-left pixel as its background.
func paperColor(img image.Image) colorful.Color {
	c, ok := colorful.MakeColor(img.At(img.Bounds().Min.X, img.Bounds().Min.Y))
	if !ok {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}

// seriesColor parses a backend series color, falling back to the default.
func seriesColor(s string) colorful.Color {
	if c, err := colorful.Hex(s); err == nil {
		return c
	}
	c, _ := colorful.Hex(chart.FallbackColor)
	return c
}
