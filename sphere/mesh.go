// Package sphere generates UV sphere geometry for sampling equirectangular
// images from the inside.
package sphere

import (
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

const (
	DefaultStacks = 48
	DefaultSlices = 96
	DefaultRadius = 1.0

	// MaxVertices is the number of vertices addressable by 16 bit indices.
	MaxVertices = math.MaxUint16 + 1
)

var (
	ErrInvalidResolution = errors.New("invalid sphere resolution")
	ErrTooManyVertices   = errors.New("too many vertices for 16 bit indices")
)

// Mesh is immutable after Generate.
type Mesh struct {
	Stacks, Slices int
	Radius         float32

	// Positions holds x, y, z per vertex.
	Positions []float32
	// TexCoords holds u, v per vertex.
	TexCoords []float32
	Indices   []uint16
}

// VertexCount returns (stacks+1)*(slices+1).
func VertexCount(stacks, slices int) int {
	return (stacks + 1) * (slices + 1)
}

// IndexCount returns 6*stacks*slices.
func IndexCount(stacks, slices int) int {
	return 6 * stacks * slices
}

// Generate builds a sphere whose triangles face its centre.
func Generate(stacks, slices int, radius float32) (*Mesh, error) {
	if stacks < 1 || slices < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidResolution, stacks, slices)
	}
	if !(radius > 0) || math32.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: radius %f", ErrInvalidResolution, radius)
	}
	if n := VertexCount(stacks, slices); n > MaxVertices {
		return nil, fmt.Errorf("%w: %d", ErrTooManyVertices, n)
	}

	m := &Mesh{
		Stacks:    stacks,
		Slices:    slices,
		Radius:    radius,
		Positions: make([]float32, 0, 3*VertexCount(stacks, slices)),
		TexCoords: make([]float32, 0, 2*VertexCount(stacks, slices)),
		Indices:   make([]uint16, 0, IndexCount(stacks, slices)),
	}

	for i := 0; i <= stacks; i++ {
		v := float32(i) / float32(stacks)
		sinPhi, cosPhi := math32.Sincos(math32.Pi * v)
		for j := 0; j <= slices; j++ {
			u := float32(j) / float32(slices)
			sinTheta, cosTheta := math32.Sincos(2 * math32.Pi * u)
			// Negated so that normals point toward the centre.
			m.Positions = append(m.Positions,
				-radius*sinPhi*cosTheta,
				-radius*cosPhi,
				-radius*sinPhi*sinTheta,
			)
			m.TexCoords = append(m.TexCoords, u, 1-v)
		}
	}

	for i := 0; i < stacks; i++ {
		k1 := i * (slices + 1)
		k2 := k1 + slices + 1
		for j := 0; j < slices; j++ {
			m.Indices = append(m.Indices,
				uint16(k1+j), uint16(k2+j), uint16(k1+j+1),
				uint16(k1+j+1), uint16(k2+j), uint16(k2+j+1),
			)
		}
	}
	return m, nil
}

// VertexCount returns the number of generated vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// IndexCount returns the number of generated indices.
func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}
