package viewport

import "fmt"

const (
	MinScale = 0.5
	MaxScale = 3.0

	// WheelFactor converts a wheel delta into a scale change.
	WheelFactor = 0.002
	// ZoomStep is the scale change of a single zoom in/out action.
	ZoomStep = 0.1
)

// PrimaryButton is the only button that starts a drag.
const PrimaryButton = 0

// State is the zoom and pan of the chart surface.
type State struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Default is the state of a freshly loaded chart.
func Default() State {
	return State{Scale: 1}
}

// Drag is the transient anchor of an in-progress pan gesture.
type Drag struct {
	Active  bool
	AnchorX float64
	AnchorY float64
}

// Controller owns the viewport state and turns pointer/wheel gestures into it.
type Controller struct {
	state State
	drag  Drag
}

func New() *Controller {
	return &Controller{state: Default()}
}

func (c *Controller) State() State { return c.state }
func (c *Controller) Drag() Drag   { return c.drag }
func (c *Controller) Dragging() bool {
	return c.drag.Active
}

// OnWheel zooms by -deltaY*WheelFactor. Negative deltas (wheel up) zoom in.
func (c *Controller) OnWheel(deltaY float64) {
	c.state.Scale = clamp(c.state.Scale+(-deltaY*WheelFactor), MinScale, MaxScale)
}

// OnPointerDown starts a drag for the primary button; other buttons are ignored.
func (c *Controller) OnPointerDown(button int, screenX, screenY float64) {
	if button != PrimaryButton {
		return
	}
	c.drag = Drag{
		Active:  true,
		AnchorX: screenX - c.state.OffsetX,
		AnchorY: screenY - c.state.OffsetY,
	}
}

func (c *Controller) OnPointerMove(screenX, screenY float64) {
	if !c.drag.Active {
		return
	}
	c.state.OffsetX = screenX - c.drag.AnchorX
	c.state.OffsetY = screenY - c.drag.AnchorY
}

func (c *Controller) OnPointerUp()    { c.drag = Drag{} }
func (c *Controller) OnPointerLeave() { c.drag = Drag{} }

// Reset restores the default zoom and pan.
func (c *Controller) Reset() { c.state = Default() }

// Load resets everything, including an in-progress drag, for a new chart.
func (c *Controller) Load() {
	c.state = Default()
	c.drag = Drag{}
}

func (c *Controller) ZoomIn()  { c.state.Scale = clamp(c.state.Scale+ZoomStep, MinScale, MaxScale) }
func (c *Controller) ZoomOut() { c.state.Scale = clamp(c.state.Scale-ZoomStep, MinScale, MaxScale) }

// Pan nudges the offset, used by keyboard navigation.
func (c *Controller) Pan(dx, dy float64) {
	c.state.OffsetX += dx
	c.state.OffsetY += dy
}

// ToChart maps a surface-relative screen position into untransformed chart space.
func (s State) ToChart(x, y float64) (float64, float64) {
	return (x - s.OffsetX) / s.Scale, (y - s.OffsetY) / s.Scale
}

// ToScreen maps a chart-space position onto the surface.
func (s State) ToScreen(x, y float64) (float64, float64) {
	return x*s.Scale + s.OffsetX, y*s.Scale + s.OffsetY
}

// Affine returns the chart->surface transform as the row-major matrix
// [a b c; d e f] with x' = a*x + b*y + c and y' = d*x + e*y + f.
// Translation is applied after scaling about the top-left origin.
func (s State) Affine() [6]float64 {
	return [6]float64{s.Scale, 0, s.OffsetX, 0, s.Scale, s.OffsetY}
}

// Percent is the zoom level as shown to the user.
func (s State) Percent() string {
	return fmt.Sprintf("%.0f%%", s.Scale*100)
}

// String renders the transform in CSS notation.
func (s State) String() string {
	return fmt.Sprintf("translate(%gpx, %gpx) scale(%g)", s.OffsetX, s.OffsetY, s.Scale)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
