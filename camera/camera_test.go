package camera

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/seqsense/pcgol/mat"
)

func TestClampPitch(t *testing.T) {
	testCases := map[string]struct {
		input    float64
		expected float64
	}{
		"InRange":      {input: 0.3, expected: 0.3},
		"Zero":         {input: 0, expected: 0},
		"UpperBound":   {input: math.Pi / 2, expected: math.Pi / 2},
		"AboveUpper":   {input: 2, expected: math.Pi / 2},
		"BelowLower":   {input: -10, expected: -math.Pi / 2},
		"NegativeEdge": {input: -math.Pi / 2, expected: -math.Pi / 2},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			if p := ClampPitch(tt.input); p != tt.expected {
				t.Errorf("Expected: %f, got: %f", tt.expected, p)
			}
		})
	}
}

func TestClampFov(t *testing.T) {
	for _, f := range []float64{-100, 0, 29.9, 30, 55, 100, 100.1, 1000} {
		v := ClampFov(f, 30, 100)
		if v < 30 || 100 < v {
			t.Errorf("ClampFov(%f) must be in [30, 100], got: %f", f, v)
		}
		if 30 <= f && f <= 100 && v != f {
			t.Errorf("In-range fov must be kept, expected: %f, got: %f", f, v)
		}
	}
}

func TestCamera_Defaults(t *testing.T) {
	c := New()
	if c.Yaw() != 0 || c.Pitch() != 0 {
		t.Errorf("Expected zero orientation, got: (%f, %f)", c.Yaw(), c.Pitch())
	}
	if c.Fov() != 75 || c.MinFov() != 30 || c.MaxFov() != 100 {
		t.Errorf("Expected: 75 [30, 100], got: %f [%f, %f]", c.Fov(), c.MinFov(), c.MaxFov())
	}
}

func TestCamera_SetFov(t *testing.T) {
	testCases := map[string]struct {
		input    float64
		expected float64
		err      error
	}{
		"InRange":   {input: 60, expected: 60},
		"TooWide":   {input: 150, expected: 100},
		"TooNarrow": {input: 10, expected: 30},
		"NaN":       {input: math.NaN(), expected: 75, err: ErrNotFinite},
		"Inf":       {input: math.Inf(1), expected: 75, err: ErrNotFinite},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			c := New()
			fov, err := c.SetFov(tt.input)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Expected error: %v, got: %v", tt.err, err)
			}
			if fov != tt.expected || c.Fov() != tt.expected {
				t.Errorf("Expected: %f, got: %f (stored %f)", tt.expected, fov, c.Fov())
			}
		})
	}
}

func TestCamera_SetFovLimits(t *testing.T) {
	testCases := map[string]struct {
		min, max float64
		fov      float64
		err      error
	}{
		"Narrower":     {min: 40, max: 60, fov: 60},
		"Wider":        {min: 10, max: 170, fov: 75},
		"AboveCurrent": {min: 80, max: 120, fov: 80},
		"Inverted":     {min: 100, max: 30, fov: 75, err: ErrInvalidFovLimits},
		"Equal":        {min: 50, max: 50, fov: 75, err: ErrInvalidFovLimits},
		"Zero":         {min: 0, max: 50, fov: 75, err: ErrInvalidFovLimits},
		"OverHalfTurn": {min: 30, max: 181, fov: 75, err: ErrInvalidFovLimits},
		"NotANumber":   {min: math.NaN(), max: 90, fov: 75, err: ErrInvalidFovLimits},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			c := New()
			fov, err := c.SetFovLimits(tt.min, tt.max)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Expected error: %v, got: %v", tt.err, err)
			}
			if fov != tt.fov {
				t.Errorf("Expected: %f, got: %f", tt.fov, fov)
			}
			if tt.err != nil && (c.MinFov() != 30 || c.MaxFov() != 100) {
				t.Errorf("Limits must be kept on error, got: [%f, %f]", c.MinFov(), c.MaxFov())
			}
		})
	}
}

func TestCamera_Reset(t *testing.T) {
	c := New()
	if err := c.SetOrientation(1, 0.5); err != nil {
		t.Fatal(err)
	}
	if _, err := c.SetFovLimits(40, 90); err != nil {
		t.Fatal(err)
	}
	if _, err := c.SetFov(88); err != nil {
		t.Fatal(err)
	}
	c.Reset()
	if c.Yaw() != 0 || c.Pitch() != 0 {
		t.Errorf("Expected zero orientation, got: (%f, %f)", c.Yaw(), c.Pitch())
	}
	if c.Fov() != 65 {
		t.Errorf("Expected: 65, got: %f", c.Fov())
	}
}

func TestCamera_SetOrientation(t *testing.T) {
	c := New()
	if err := c.SetOrientation(7, 3); err != nil {
		t.Fatal(err)
	}
	if c.Yaw() != 7 {
		t.Errorf("Yaw must be stored as is, expected: 7, got: %f", c.Yaw())
	}
	if c.Pitch() != math.Pi/2 {
		t.Errorf("Expected: %f, got: %f", math.Pi/2, c.Pitch())
	}
	if err := c.SetOrientation(math.NaN(), 0); !errors.Is(err, ErrNotFinite) {
		t.Errorf("Expected error: %v, got: %v", ErrNotFinite, err)
	}
	if c.Yaw() != 7 {
		t.Errorf("Yaw must be kept on error, got: %f", c.Yaw())
	}
}

func TestCamera_Viewport(t *testing.T) {
	c := New()
	c.SetViewport(0, -3)
	if vp := c.Viewport(); vp.Width != 1 || vp.Height != 1 {
		t.Errorf("Expected: 1x1, got: %dx%d", vp.Width, vp.Height)
	}
	for _, v := range c.Projection() {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("Projection must be finite, got: %v", c.Projection())
		}
	}
}

func TestCamera_Projection(t *testing.T) {
	c := New()
	c.SetViewport(1920, 1080)
	if _, err := c.SetFov(60); err != nil {
		t.Fatal(err)
	}
	expected := mgl32.Perspective(mgl32.DegToRad(60), 1920.0/1080.0, 0.1, 100)
	assertMat(t, expected, c.Projection())
}

func TestCamera_View(t *testing.T) {
	testCases := map[string]struct {
		yaw, pitch float64
	}{
		"Forward":   {},
		"Right":     {yaw: math.Pi / 2},
		"Behind":    {yaw: math.Pi},
		"UpLeft":    {yaw: -0.7, pitch: 0.4},
		"DownRight": {yaw: 2.1, pitch: -1.2},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			c := New()
			if err := c.SetOrientation(tt.yaw, tt.pitch); err != nil {
				t.Fatal(err)
			}
			d := c.Direction()
			expected := mgl32.LookAtV(
				mgl32.Vec3{0, 0, 0},
				mgl32.Vec3{d[0], d[1], d[2]},
				mgl32.Vec3{0, 1, 0},
			)
			assertMat(t, expected, c.View())
		})
	}
}

func TestCamera_ViewStraightUp(t *testing.T) {
	c := New()
	if err := c.SetOrientation(0.3, math.Pi/2); err != nil {
		t.Fatal(err)
	}
	v := c.View()
	for _, e := range v {
		if math.IsNaN(float64(e)) {
			t.Fatalf("View must be defined when looking straight up, got: %v", v)
		}
	}
	// The look direction maps to -Z in eye space.
	p := v.Transform(mat.Vec3{0, 1, 0})
	if p[2] > -0.99 {
		t.Errorf("Expected: (0, 0, -1), got: %v", p)
	}
}

func TestHorizontalFov(t *testing.T) {
	vFov := math.Pi / 2
	if h := HorizontalFov(vFov, 1); math.Abs(h-vFov) > 1e-9 {
		t.Errorf("Square viewport must keep the fov, expected: %f, got: %f", vFov, h)
	}
	if h := HorizontalFov(vFov, 2); math.Abs(h-2*math.Atan(2)) > 1e-9 {
		t.Errorf("Expected: %f, got: %f", 2*math.Atan(2), h)
	}
}

func assertMat(t *testing.T, expected mgl32.Mat4, got mat.Mat4) {
	t.Helper()
	for i := range got {
		if diff := got[i] - expected[i]; diff < -1e-4 || 1e-4 < diff {
			t.Errorf("m[%d] expected to be %0.4f, got %0.4f", i, expected[i], got[i])
		}
	}
}
