package main

import (
	"encoding/binary"
	"syscall/js"

	"github.com/seqsense/pcgol/mat"
	webgl "github.com/seqsense/webgl-go"

	"github.com/e2McNuts/three-sixty-media/render"
)

// webglContext implements render.GL on a WebGL2 context. JavaScript objects
// are kept in tables keyed by the integer handles render passes around.
type webglContext struct {
	gl *webgl.WebGL

	next     uint32
	programs map[render.Program]webgl.Program
	uniforms []webgl.Location
	buffers  map[render.Buffer]webgl.Buffer
	textures map[render.Texture]webgl.Texture

	elementArrayBuffer webgl.BufferType
	cullFace           webgl.Capacity
	textureMagFilter   webgl.TextureParameter
	repeat             int
	maxTextureSize     int
}

var _ render.GL = (*webglContext)(nil)

func newWebGLContext(gl *webgl.WebGL) *webglContext {
	j := gl.JS()
	return &webglContext{
		gl:       gl,
		programs: make(map[render.Program]webgl.Program),
		buffers:  make(map[render.Buffer]webgl.Buffer),
		textures: make(map[render.Texture]webgl.Texture),

		elementArrayBuffer: webgl.BufferType(j.Get("ELEMENT_ARRAY_BUFFER").Int()),
		cullFace:           webgl.Capacity(j.Get("CULL_FACE").Int()),
		textureMagFilter:   webgl.TextureParameter(j.Get("TEXTURE_MAG_FILTER").Int()),
		repeat:             j.Get("REPEAT").Int(),
		maxTextureSize:     gl.GetParameter(j.Get("MAX_TEXTURE_SIZE").Int()).Int(),
	}
}

func (c *webglContext) handle() uint32 {
	c.next++
	return c.next
}

func (c *webglContext) Dialect() render.Dialect {
	return render.GLSLES300
}

func (c *webglContext) NewProgram(vertex, fragment string) (render.Program, error) {
	vs, err := initVertexShader(c.gl, vertex)
	if err != nil {
		return 0, err
	}
	fs, err := initFragmentShader(c.gl, fragment)
	if err != nil {
		c.gl.JS().Call("deleteShader", js.Value(vs))
		return 0, err
	}
	p, err := linkShaders(c.gl, vs, fs)
	if err != nil {
		return 0, err
	}
	h := render.Program(c.handle())
	c.programs[h] = p
	return h, nil
}

func (c *webglContext) UseProgram(p render.Program) {
	c.gl.UseProgram(c.programs[p])
}

func (c *webglContext) AttribLocation(p render.Program, name string) int {
	return c.gl.GetAttribLocation(c.programs[p], name)
}

func (c *webglContext) UniformLocation(p render.Program, name string) render.Uniform {
	loc := c.gl.GetUniformLocation(c.programs[p], name)
	if js.Value(loc).IsNull() {
		return -1
	}
	c.uniforms = append(c.uniforms, loc)
	return render.Uniform(len(c.uniforms) - 1)
}

func (c *webglContext) uniform(u render.Uniform) (webgl.Location, bool) {
	if u < 0 || int(u) >= len(c.uniforms) {
		return webgl.Location(js.Null()), false
	}
	return c.uniforms[u], true
}

func (c *webglContext) UniformMatrix4(u render.Uniform, m mat.Mat4) {
	if loc, ok := c.uniform(u); ok {
		c.gl.UniformMatrix4fv(loc, false, m)
	}
}

func (c *webglContext) Uniform1i(u render.Uniform, v int) {
	if loc, ok := c.uniform(u); ok {
		c.gl.Uniform1i(loc, v)
	}
}

func (c *webglContext) bufferType(t render.BufferTarget) webgl.BufferType {
	if t == render.ElementArrayBuffer {
		return c.elementArrayBuffer
	}
	return c.gl.ARRAY_BUFFER
}

func (c *webglContext) CreateBuffer() render.Buffer {
	h := render.Buffer(c.handle())
	c.buffers[h] = c.gl.CreateBuffer()
	return h
}

func (c *webglContext) BindBuffer(t render.BufferTarget, b render.Buffer) {
	c.gl.BindBuffer(c.bufferType(t), c.buffers[b])
}

func (c *webglContext) BufferFloat32(t render.BufferTarget, data []float32) {
	c.gl.BufferData(c.bufferType(t), webgl.Float32ArrayBuffer(data), c.gl.STATIC_DRAW)
}

func (c *webglContext) BufferUint16(t render.BufferTarget, data []uint16) {
	b := make([]byte, 2*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint16(b[2*i:], v)
	}
	array := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(array, b)
	indices := js.Global().Get("Uint16Array").New(array.Get("buffer"))
	c.gl.JS().Call("bufferData", int(c.bufferType(t)), indices, int(c.gl.STATIC_DRAW))
}

func (c *webglContext) DeleteBuffer(b render.Buffer) {
	buf, ok := c.buffers[b]
	if !ok {
		return
	}
	c.gl.JS().Call("deleteBuffer", js.Value(buf))
	delete(c.buffers, b)
}

func (c *webglContext) VertexAttribPointer(index, size int) {
	c.gl.VertexAttribPointer(index, size, c.gl.FLOAT, false, 0, 0)
}

func (c *webglContext) EnableVertexAttribArray(index int) {
	c.gl.EnableVertexAttribArray(index)
}

func (c *webglContext) DisableVertexAttribArray(index int) {
	c.gl.JS().Call("disableVertexAttribArray", index)
}

func (c *webglContext) DrawTriangles(count int) {
	c.gl.JS().Call("drawElements", int(c.gl.TRIANGLES), count, int(c.gl.UNSIGNED_SHORT), 0)
}

func (c *webglContext) CreateTexture() render.Texture {
	h := render.Texture(c.handle())
	c.textures[h] = c.gl.CreateTexture()
	return h
}

func (c *webglContext) ActiveTexture(unit int) {
	c.gl.ActiveTexture(c.gl.TEXTURE0 + webgl.TextureNumber(unit))
}

func (c *webglContext) BindTexture(t render.Texture) {
	// Unknown handles, including zero, unbind.
	c.gl.BindTexture(c.gl.TEXTURE_2D, c.textures[t])
}

func (c *webglContext) TexParameter(param render.TextureParameter, value render.TextureValue) {
	var p webgl.TextureParameter
	switch param {
	case render.TextureMinFilter:
		p = c.gl.TEXTURE_MIN_FILTER
	case render.TextureMagFilter:
		p = c.textureMagFilter
	case render.TextureWrapS:
		p = c.gl.TEXTURE_WRAP_S
	case render.TextureWrapT:
		p = c.gl.TEXTURE_WRAP_T
	}
	var v int
	switch value {
	case render.Linear:
		v = c.gl.LINEAR
	case render.Nearest:
		v = c.gl.NEAREST
	case render.ClampToEdge:
		v = c.gl.CLAMP_TO_EDGE
	case render.Repeat:
		v = c.repeat
	}
	c.gl.TexParameteri(c.gl.TEXTURE_2D, p, v)
}

func (c *webglContext) TexImage2D(width, height int, pixels []byte) {
	array := js.Global().Get("Uint8Array").New(len(pixels))
	js.CopyBytesToJS(array, pixels)
	c.gl.JS().Call("texImage2D",
		int(c.gl.TEXTURE_2D), 0, int(c.gl.RGBA),
		width, height, 0,
		int(c.gl.RGBA), int(c.gl.UNSIGNED_BYTE), array,
	)
}

func (c *webglContext) DeleteTexture(t render.Texture) {
	tex, ok := c.textures[t]
	if !ok {
		return
	}
	c.gl.JS().Call("deleteTexture", js.Value(*tex))
	delete(c.textures, t)
}

func (c *webglContext) MaxTextureSize() int {
	return c.maxTextureSize
}

func (c *webglContext) ClearColor(r, g, b, a float32) {
	c.gl.ClearColor(r, g, b, a)
}

func (c *webglContext) Enable(capability render.Capability) {
	switch capability {
	case render.DepthTest:
		c.gl.Enable(c.gl.DEPTH_TEST)
	case render.CullFace:
		c.gl.Enable(c.cullFace)
	}
}

func (c *webglContext) Clear() {
	c.gl.Clear(c.gl.COLOR_BUFFER_BIT | c.gl.DEPTH_BUFFER_BIT)
}

func (c *webglContext) Viewport(x, y, width, height int) {
	c.gl.Viewport(x, y, width, height)
}
