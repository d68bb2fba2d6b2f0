// Package gesture maps drag and pinch input to camera orientation and zoom.
package gesture

import (
	"math"

	"github.com/e2McNuts/three-sixty-media/camera"
)

// Controller keeps a mirror of the camera state and proposes new values
// through its callbacks. It never touches the camera itself.
type Controller struct {
	// OnOrientation receives the proposed yaw and pitch in radians.
	OnOrientation func(yaw, pitch float64)
	// OnFov receives the proposed vertical field of view in degrees.
	OnFov func(fov float64)

	yaw, pitch     float64
	fov            float64
	minFov, maxFov float64
	viewport       camera.Viewport
	disabled       bool
}

func NewController() *Controller {
	return &Controller{
		fov:      camera.DefaultFov,
		minFov:   camera.DefaultMinFov,
		maxFov:   camera.DefaultMaxFov,
		viewport: camera.NewViewport(1, 1),
	}
}

func (c *Controller) Yaw() float64   { return c.yaw }
func (c *Controller) Pitch() float64 { return c.pitch }
func (c *Controller) Fov() float64   { return c.fov }

func (c *Controller) SetEnabled(enabled bool) {
	c.disabled = !enabled
}

func (c *Controller) Enabled() bool {
	return !c.disabled
}

// Drag rotates by a pixel delta so that a drag across the full view width
// pans one horizontal field of view. It always reports the input consumed.
func (c *Controller) Drag(dx, dy float64) bool {
	if c.disabled {
		return true
	}
	vFov := c.fov * math.Pi / 180
	hFov := camera.HorizontalFov(vFov, c.viewport.Aspect())

	c.yaw -= dx / float64(c.viewport.Width) * hFov
	c.pitch = camera.ClampPitch(c.pitch - dy/float64(c.viewport.Height)*vFov)

	if c.OnOrientation != nil {
		c.OnOrientation(c.yaw, c.pitch)
	}
	return true
}

// Pinch zooms by the ratio of the current finger span to the previous one.
// Spreading the fingers (s > 1) narrows the field of view.
func (c *Controller) Pinch(s float64) bool {
	if c.disabled {
		return true
	}
	if !(s > 0) || math.IsInf(s, 0) {
		return true
	}
	c.fov = camera.ClampFov(c.fov/s, c.minFov, c.maxFov)

	if c.OnFov != nil {
		c.OnFov(c.fov)
	}
	return true
}

func (c *Controller) UpdateViewSize(width, height int) {
	c.viewport = camera.NewViewport(width, height)
}

func (c *Controller) UpdateFovLimits(min, max float64) {
	c.minFov, c.maxFov = min, max
	c.fov = camera.ClampFov(c.fov, min, max)
}

func (c *Controller) SetFov(fov float64) {
	c.fov = camera.ClampFov(fov, c.minFov, c.maxFov)
}

func (c *Controller) SetOrientation(yaw, pitch float64) {
	c.yaw = yaw
	c.pitch = camera.ClampPitch(pitch)
}
