package mouse

import (
	"image"

	"github.com/ayusman/handmouse/internal/geometry"
)

// Default mapping parameters.
const (
	DefaultMargin        = 20
	DefaultSensitivity   = 1.0
	DefaultVerticalBoost = 0.2
)

// Controller maps frame coordinates onto the screen and drives the pointer.
type Controller struct {
	driver Driver
	screen Screen

	// Margin is trimmed from every frame edge before mapping and kept free on
	// the right and bottom screen edges.
	Margin int
	// Sensitivity scales both axes.
	Sensitivity float64
	// VerticalBoost is added to Sensitivity for the vertical axis.
	VerticalBoost float64
}

// NewController creates a Controller for the given screen with default mapping parameters.
func NewController(driver Driver, screen Screen) *Controller {
	return &Controller{
		driver:        driver,
		screen:        screen,
		Margin:        DefaultMargin,
		Sensitivity:   DefaultSensitivity,
		VerticalBoost: DefaultVerticalBoost,
	}
}

// Screen returns the screen the controller maps onto.
func (c *Controller) Screen() Screen {
	return c.screen
}

// Target maps a pixel position in a frameW x frameH frame to screen pixels.
// The range [Margin, frameW-Margin] spans the full screen width, and likewise
// vertically; the result is clamped to [0, screen-Margin] on each axis.
func (c *Controller) Target(x, y, frameW, frameH int) image.Point {
	m := float64(c.Margin)

	sx := int(geometry.Interp(float64(x), m, float64(frameW)-m, 0, float64(c.screen.Width)) * c.Sensitivity)
	sy := int(geometry.Interp(float64(y), m, float64(frameH)-m, 0, float64(c.screen.Height)) * (c.Sensitivity + c.VerticalBoost))

	return image.Point{
		X: geometry.Clamp(sx, 0, c.screen.Width-c.Margin),
		Y: geometry.Clamp(sy, 0, c.screen.Height-c.Margin),
	}
}

// Move sets the absolute pointer position for a frame coordinate and returns it.
// Every call is independent; no smoothing is applied across frames.
func (c *Controller) Move(x, y, frameW, frameH int) image.Point {
	p := c.Target(x, y, frameW, frameH)
	c.driver.MoveTo(p.X, p.Y)
	return p
}

// LeftClick presses and releases the left button.
func (c *Controller) LeftClick() {
	c.driver.Press(Left)
	c.driver.Release(Left)
}

// RightClick clicks the right button once.
func (c *Controller) RightClick() {
	c.driver.Click(Right, 1)
}

// DoubleClick clicks the left button twice.
func (c *Controller) DoubleClick() {
	c.driver.Click(Left, 2)
}
