// Package camera holds the orientation and zoom of a viewer standing at the
// centre of a panorama sphere.
package camera

import (
	"errors"
	"math"

	"github.com/seqsense/pcgol/mat"
)

const (
	DefaultFov    = 75.0
	DefaultMinFov = 30.0
	DefaultMaxFov = 100.0

	DefaultNear = 0.1
	DefaultFar  = 100.0

	maxFovLimit = 180.0
)

var (
	ErrInvalidFovLimits = errors.New("invalid fov limits")
	ErrNotFinite        = errors.New("value is not finite")
)

// Viewport is a render surface size in pixels.
type Viewport struct {
	Width, Height int
}

// NewViewport coerces degenerate sizes to 1.
func NewViewport(width, height int) Viewport {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return Viewport{Width: width, Height: height}
}

// Aspect returns width/height.
func (v Viewport) Aspect() float64 {
	return float64(v.Width) / float64(v.Height)
}

// Camera is not safe for concurrent use. It is owned by the render loop.
type Camera struct {
	yaw, pitch     float64
	fov            float64
	minFov, maxFov float64
	near, far      float64
	viewport       Viewport

	projection mat.Mat4
}

// Option configures a Camera.
type Option func(*Camera)

// WithFovLimits overrides the default zoom range.
func WithFovLimits(min, max float64) Option {
	return func(c *Camera) {
		c.minFov, c.maxFov = min, max
	}
}

// WithFov overrides the initial field of view.
func WithFov(fov float64) Option {
	return func(c *Camera) {
		c.fov = fov
	}
}

// WithClipPlanes overrides the near and far clip distances.
func WithClipPlanes(near, far float64) Option {
	return func(c *Camera) {
		c.near, c.far = near, far
	}
}

func New(opts ...Option) *Camera {
	c := &Camera{
		fov:      DefaultFov,
		minFov:   DefaultMinFov,
		maxFov:   DefaultMaxFov,
		near:     DefaultNear,
		far:      DefaultFar,
		viewport: NewViewport(1, 1),
	}
	for _, o := range opts {
		o(c)
	}
	if !validFovLimits(c.minFov, c.maxFov) {
		c.minFov, c.maxFov = DefaultMinFov, DefaultMaxFov
	}
	c.fov = ClampFov(c.fov, c.minFov, c.maxFov)
	c.updateProjection()
	return c
}

func (c *Camera) Yaw() float64       { return c.yaw }
func (c *Camera) Pitch() float64     { return c.pitch }
func (c *Camera) Fov() float64       { return c.fov }
func (c *Camera) MinFov() float64    { return c.minFov }
func (c *Camera) MaxFov() float64    { return c.maxFov }
func (c *Camera) Viewport() Viewport { return c.viewport }

// SetOrientation sets yaw as is and clamps pitch to [-π/2, π/2].
func (c *Camera) SetOrientation(yaw, pitch float64) error {
	if !finite(yaw) || !finite(pitch) {
		return ErrNotFinite
	}
	c.yaw = yaw
	c.pitch = ClampPitch(pitch)
	return nil
}

// SetFov clamps fov into the current limits and returns the stored value.
func (c *Camera) SetFov(fov float64) (float64, error) {
	if !finite(fov) {
		return c.fov, ErrNotFinite
	}
	c.fov = ClampFov(fov, c.minFov, c.maxFov)
	c.updateProjection()
	return c.fov, nil
}

// SetFovLimits replaces the zoom range and reclamps the current fov.
func (c *Camera) SetFovLimits(min, max float64) (float64, error) {
	if !validFovLimits(min, max) {
		return c.fov, ErrInvalidFovLimits
	}
	c.minFov, c.maxFov = min, max
	c.fov = ClampFov(c.fov, min, max)
	c.updateProjection()
	return c.fov, nil
}

// Reset looks straight ahead at the middle of the zoom range.
func (c *Camera) Reset() {
	c.yaw = 0
	c.pitch = 0
	c.fov = (c.minFov + c.maxFov) / 2
	c.updateProjection()
}

func (c *Camera) SetViewport(width, height int) {
	c.viewport = NewViewport(width, height)
	c.updateProjection()
}

// Direction returns the unit look direction. yaw=0 looks toward +Z.
func (c *Camera) Direction() mat.Vec3 {
	sy, cy := math.Sincos(c.yaw)
	sp, cp := math.Sincos(c.pitch)
	return mat.Vec3{float32(cp * sy), float32(sp), float32(cp * cy)}
}

// View returns the look-at matrix from the origin.
func (c *Camera) View() mat.Mat4 {
	sy, cy := math.Sincos(c.yaw)
	sp, cp := math.Sincos(c.pitch)
	// Up is tilted with pitch so that looking straight up stays defined.
	// For |pitch| < π/2 this is the same matrix as using world up (0,1,0).
	up := mat.Vec3{float32(-sp * sy), float32(cp), float32(-sp * cy)}
	return LookAt(mat.Vec3{}, c.Direction(), up)
}

func (c *Camera) Projection() mat.Mat4 {
	return c.projection
}

func (c *Camera) ViewProjection() mat.Mat4 {
	return c.projection.Mul(c.View())
}

// HorizontalFov returns the horizontal field of view in radians.
func (c *Camera) HorizontalFov() float64 {
	return HorizontalFov(c.fov*math.Pi/180, c.viewport.Aspect())
}

func (c *Camera) updateProjection() {
	c.projection = Perspective(
		float32(c.fov*math.Pi/180),
		float32(c.viewport.Aspect()),
		float32(c.near), float32(c.far),
	)
}

// ClampPitch limits pitch to [-π/2, π/2].
func ClampPitch(p float64) float64 {
	if p < -math.Pi/2 {
		return -math.Pi / 2
	} else if p > math.Pi/2 {
		return math.Pi / 2
	}
	return p
}

// ClampFov limits fov to [min, max].
func ClampFov(fov, min, max float64) float64 {
	if fov < min {
		return min
	} else if fov > max {
		return max
	}
	return fov
}

// HorizontalFov converts a vertical field of view in radians.
func HorizontalFov(vFov, aspect float64) float64 {
	return 2 * math.Atan(math.Tan(vFov/2)*aspect)
}

func validFovLimits(min, max float64) bool {
	return finite(min) && finite(max) && 0 < min && min < max && max <= maxFovLimit
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
