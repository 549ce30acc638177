package pointview

import "github.com/go-gl/mathgl/mgl64"

// WheelDeltaPerNotch converts wheel notches into the angle-delta units Zoom
// expects.
const WheelDeltaPerNotch = 120

type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

// Controller turns window events into camera and scene operations: left drag
// rotates, right drag pans, the wheel zooms and a middle click picks a grid
// cell. It reports whether the view changed so the caller can redraw.
type Controller struct {
	camera *Camera
	scene  *Scene

	leftDown  bool
	rightDown bool
}

func NewController(cam *Camera, scene *Scene) *Controller {
	return &Controller{camera: cam, scene: scene}
}

func (c *Controller) Dragging() bool {
	return c.leftDown || c.rightDown
}

// MousePress records a button press at pixel (x, y).
func (c *Controller) MousePress(b MouseButton, x, y float64) bool {
	switch b {
	case ButtonLeft:
		c.leftDown = true
	case ButtonRight:
		c.rightDown = true
	case ButtonMiddle:
		if c.scene != nil {
			c.scene.PickCell(c.camera, x, y)
			return true
		}
	}
	c.camera.SetPrevMouse(c.camera.TransformMouse(x, y))
	return false
}

func (c *Controller) MouseRelease(b MouseButton) {
	switch b {
	case ButtonLeft:
		c.leftDown = false
	case ButtonRight:
		c.rightDown = false
	}
}

// MouseMove handles a cursor move to pixel (x, y). The previous position is
// updated on every move, dragging or not.
func (c *Controller) MouseMove(x, y float64) bool {
	cur := c.camera.TransformMouse(x, y)
	prev := c.camera.PrevMouse()

	switch {
	case c.leftDown:
		c.camera.Rotate(prev, cur)
	case c.rightDown:
		c.camera.Pan(cur.Sub(prev))
	}

	c.camera.SetPrevMouse(cur)
	return c.Dragging()
}

// Wheel zooms by a wheel offset in notches. Scrolling up (positive) moves
// the camera away.
func (c *Controller) Wheel(notches float64) bool {
	if notches == 0 {
		return false
	}
	c.camera.Zoom(-notches * WheelDeltaPerNotch)
	return true
}

func (c *Controller) Resize(width, height int) bool {
	size := c.camera.WindowSize()
	if int(size.X()) == width && int(size.Y()) == height {
		return false
	}
	c.camera.SetWindowSize(width, height)
	return true
}

// MouseNDC is the last cursor position in normalized device coordinates.
func (c *Controller) MouseNDC() mgl64.Vec2 {
	return c.camera.PrevMouse()
}
