package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/seqsense/pcgol/mat"
)

// fakeGL records calls instead of drawing.
type fakeGL struct {
	calls []string

	next       uint32
	programErr error
	maxTexture int

	buffers  map[Buffer]bool
	textures map[Texture]bool
	images   []fakeImage
	mvp      mat.Mat4
	bound    Texture
	params   map[TextureParameter]TextureValue
	drawn    []int
}

type fakeImage struct {
	tex           Texture
	width, height int
	size          int
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		buffers:  make(map[Buffer]bool),
		textures: make(map[Texture]bool),
		params:   make(map[TextureParameter]TextureValue),
	}
}

func (g *fakeGL) record(format string, args ...interface{}) {
	g.calls = append(g.calls, fmt.Sprintf(format, args...))
}

func (g *fakeGL) count(prefix string) int {
	var n int
	for _, c := range g.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (g *fakeGL) Dialect() Dialect { return GLSLES300 }

func (g *fakeGL) NewProgram(vertex, fragment string) (Program, error) {
	g.record("NewProgram")
	if g.programErr != nil {
		return 0, g.programErr
	}
	if !strings.HasPrefix(vertex, "#version 300 es") || !strings.HasPrefix(fragment, "#version 300 es") {
		return 0, errors.New("missing version header")
	}
	g.next++
	return Program(g.next), nil
}

func (g *fakeGL) UseProgram(p Program) { g.record("UseProgram %d", p) }

func (g *fakeGL) AttribLocation(p Program, name string) int {
	switch name {
	case "aPos":
		return 0
	case "aTex":
		return 1
	}
	return -1
}

func (g *fakeGL) UniformLocation(p Program, name string) Uniform {
	switch name {
	case "uMVP":
		return 0
	case "uTexture":
		return 1
	}
	return -1
}

func (g *fakeGL) UniformMatrix4(u Uniform, m mat.Mat4) {
	g.record("UniformMatrix4 %d", u)
	g.mvp = m
}

func (g *fakeGL) Uniform1i(u Uniform, v int) { g.record("Uniform1i %d %d", u, v) }

func (g *fakeGL) CreateBuffer() Buffer {
	g.next++
	b := Buffer(g.next)
	g.buffers[b] = true
	g.record("CreateBuffer")
	return b
}

func (g *fakeGL) BindBuffer(target BufferTarget, b Buffer) { g.record("BindBuffer %d", target) }

func (g *fakeGL) BufferFloat32(target BufferTarget, data []float32) {
	g.record("BufferFloat32 %d %d", target, len(data))
}

func (g *fakeGL) BufferUint16(target BufferTarget, data []uint16) {
	g.record("BufferUint16 %d %d", target, len(data))
}

func (g *fakeGL) DeleteBuffer(b Buffer) {
	delete(g.buffers, b)
	g.record("DeleteBuffer")
}

func (g *fakeGL) VertexAttribPointer(index, size int) {
	g.record("VertexAttribPointer %d %d", index, size)
}

func (g *fakeGL) EnableVertexAttribArray(index int) { g.record("EnableVertexAttribArray %d", index) }

func (g *fakeGL) DisableVertexAttribArray(index int) { g.record("DisableVertexAttribArray %d", index) }

func (g *fakeGL) DrawTriangles(count int) {
	g.record("DrawTriangles %d", count)
	g.drawn = append(g.drawn, count)
}

func (g *fakeGL) CreateTexture() Texture {
	g.next++
	t := Texture(g.next)
	g.textures[t] = true
	g.record("CreateTexture")
	return t
}

func (g *fakeGL) ActiveTexture(unit int) { g.record("ActiveTexture %d", unit) }

func (g *fakeGL) BindTexture(t Texture) {
	g.record("BindTexture %d", t)
	g.bound = t
}

func (g *fakeGL) TexParameter(param TextureParameter, value TextureValue) {
	g.params[param] = value
}

func (g *fakeGL) TexImage2D(width, height int, pixels []byte) {
	g.record("TexImage2D %dx%d", width, height)
	g.images = append(g.images, fakeImage{tex: g.bound, width: width, height: height, size: len(pixels)})
}

func (g *fakeGL) DeleteTexture(t Texture) {
	delete(g.textures, t)
	g.record("DeleteTexture %d", t)
}

func (g *fakeGL) MaxTextureSize() int { return g.maxTexture }

func (g *fakeGL) ClearColor(r, gg, b, a float32) { g.record("ClearColor %g %g %g %g", r, gg, b, a) }

func (g *fakeGL) Enable(c Capability) { g.record("Enable %d", c) }

func (g *fakeGL) Clear() { g.record("Clear") }

func (g *fakeGL) Viewport(x, y, width, height int) {
	g.record("Viewport %d %d %d %d", x, y, width, height)
}
