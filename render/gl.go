package render

import (
	"github.com/seqsense/pcgol/mat"
)

// Handles are backend object names. Zero means none.
type (
	Program uint32
	Buffer  uint32
	Texture uint32
)

// Uniform is a uniform location. Negative means the uniform is not active.
type Uniform int32

type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

type Capability int

const (
	DepthTest Capability = iota
	CullFace
)

type TextureParameter int

const (
	TextureMinFilter TextureParameter = iota
	TextureMagFilter
	TextureWrapS
	TextureWrapT
)

type TextureValue int

const (
	Linear TextureValue = iota
	Nearest
	ClampToEdge
	Repeat
)

// Dialect selects the shading language version a backend accepts.
type Dialect int

const (
	GLSLES300 Dialect = iota
	GLSL410
)

// GL is the subset of OpenGL ES 3 / WebGL 2 the viewer draws with.
// Every method must be called from the render goroutine only.
type GL interface {
	Dialect() Dialect

	// NewProgram compiles and links a vertex and fragment shader pair.
	NewProgram(vertex, fragment string) (Program, error)
	UseProgram(p Program)
	AttribLocation(p Program, name string) int
	UniformLocation(p Program, name string) Uniform
	UniformMatrix4(u Uniform, m mat.Mat4)
	Uniform1i(u Uniform, v int)

	CreateBuffer() Buffer
	BindBuffer(target BufferTarget, b Buffer)
	BufferFloat32(target BufferTarget, data []float32)
	BufferUint16(target BufferTarget, data []uint16)
	DeleteBuffer(b Buffer)
	VertexAttribPointer(index, size int)
	EnableVertexAttribArray(index int)
	DisableVertexAttribArray(index int)
	// DrawTriangles draws count uint16 indices from the bound element buffer.
	DrawTriangles(count int)

	CreateTexture() Texture
	ActiveTexture(unit int)
	BindTexture(t Texture)
	TexParameter(param TextureParameter, value TextureValue)
	// TexImage2D uploads tightly packed RGBA8 pixels, top row first.
	TexImage2D(width, height int, pixels []byte)
	DeleteTexture(t Texture)
	MaxTextureSize() int

	ClearColor(r, g, b, a float32)
	Enable(c Capability)
	// Clear clears the color and depth buffers.
	Clear()
	Viewport(x, y, width, height int)
}
