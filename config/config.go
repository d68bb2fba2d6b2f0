// Package config loads viewer settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/e2McNuts/three-sixty-media/camera"
	"github.com/e2McNuts/three-sixty-media/render"
	"github.com/e2McNuts/three-sixty-media/sphere"
)

// SourceMemory marks a viewer whose image arrives through loadImageBytes.
const SourceMemory = "memory"

var ErrInvalid = errors.New("invalid config")

type Mesh struct {
	Stacks int     `yaml:"stacks"`
	Slices int     `yaml:"slices"`
	Radius float32 `yaml:"radius"`
}

type Camera struct {
	Fov    float64 `yaml:"fov"`
	MinFov float64 `yaml:"min_fov"`
	MaxFov float64 `yaml:"max_fov"`
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`
}

type Gestures struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	// Source is an image path or URL loaded at startup.
	Source string `yaml:"source"`
	// Remote is a websocket URL delivering host calls.
	Remote string `yaml:"remote"`

	Mesh           Mesh       `yaml:"mesh"`
	Camera         Camera     `yaml:"camera"`
	Gestures       Gestures   `yaml:"gestures"`
	ClearColor     [4]float32 `yaml:"clear_color,flow"`
	MaxTextureSize int        `yaml:"max_texture_size"`
}

func Default() *Config {
	return &Config{
		Source: SourceMemory,
		Mesh: Mesh{
			Stacks: sphere.DefaultStacks,
			Slices: sphere.DefaultSlices,
			Radius: sphere.DefaultRadius,
		},
		Camera: Camera{
			Fov:    camera.DefaultFov,
			MinFov: camera.DefaultMinFov,
			MaxFov: camera.DefaultMaxFov,
			Near:   camera.DefaultNear,
			Far:    camera.DefaultFar,
		},
		Gestures:   Gestures{Enabled: true},
		ClearColor: [4]float32{0, 0, 0, 1},
	}
}

// Parse overlays a YAML document on the defaults.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Read(r io.Reader) (*Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Mesh.Stacks < 1 || c.Mesh.Slices < 1 || !(c.Mesh.Radius > 0) {
		return fmt.Errorf("%w: mesh %dx%d radius %g", ErrInvalid, c.Mesh.Stacks, c.Mesh.Slices, c.Mesh.Radius)
	}
	if sphere.VertexCount(c.Mesh.Stacks, c.Mesh.Slices) > sphere.MaxVertices {
		return fmt.Errorf("%w: mesh %dx%d: %v", ErrInvalid, c.Mesh.Stacks, c.Mesh.Slices, sphere.ErrTooManyVertices)
	}
	cam := c.Camera
	if !(0 < cam.MinFov && cam.MinFov < cam.MaxFov && cam.MaxFov <= 180) {
		return fmt.Errorf("%w: fov limits [%g, %g]", ErrInvalid, cam.MinFov, cam.MaxFov)
	}
	if !(0 < cam.Near && cam.Near < cam.Far) {
		return fmt.Errorf("%w: clip planes %g, %g", ErrInvalid, cam.Near, cam.Far)
	}
	if c.MaxTextureSize < 0 {
		return fmt.Errorf("%w: max_texture_size %d", ErrInvalid, c.MaxTextureSize)
	}
	return nil
}

// HasSource reports whether an image should be loaded at startup.
func (c *Config) HasSource() bool {
	return c.Source != "" && c.Source != SourceMemory
}

// RenderOptions converts the config for render.NewLoop.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Stacks:     c.Mesh.Stacks,
		Slices:     c.Mesh.Slices,
		Radius:     c.Mesh.Radius,
		ClearColor: c.ClearColor,
		Camera: []camera.Option{
			camera.WithFovLimits(c.Camera.MinFov, c.Camera.MaxFov),
			camera.WithFov(c.Camera.Fov),
			camera.WithClipPlanes(c.Camera.Near, c.Camera.Far),
		},
		MaxTextureSize: c.MaxTextureSize,
	}
}
