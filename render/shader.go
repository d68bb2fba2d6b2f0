package render

import (
	"errors"
	"fmt"
)

var ErrShader = errors.New("shader program setup failed")

const vsSource = `
	layout (location = 0) in vec4 aPos;
	layout (location = 1) in vec2 aTex;
	uniform mat4 uMVP;
	out highp vec2 vTex;

	void main(void) {
		gl_Position = uMVP * aPos;
		vTex = aTex;
	}
`

const fsSource = `
	in highp vec2 vTex;
	uniform sampler2D uTexture;
	out lowp vec4 outColor;

	void main(void) {
		outColor = texture(uTexture, vTex);
	}
`

func shaderHeader(d Dialect) string {
	switch d {
	case GLSL410:
		// Precision qualifiers are accepted and ignored by desktop GLSL.
		return "#version 410 core\n"
	default:
		return "#version 300 es\nprecision mediump float;\n"
	}
}

// panoramaProgram is the linked program and its resolved locations.
type panoramaProgram struct {
	program  Program
	aPos     int
	aTex     int
	uMVP     Uniform
	uTexture Uniform
}

func newPanoramaProgram(gl GL) (*panoramaProgram, error) {
	header := shaderHeader(gl.Dialect())
	p, err := gl.NewProgram(header+vsSource, header+fsSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShader, err)
	}
	pp := &panoramaProgram{
		program:  p,
		aPos:     gl.AttribLocation(p, "aPos"),
		aTex:     gl.AttribLocation(p, "aTex"),
		uMVP:     gl.UniformLocation(p, "uMVP"),
		uTexture: gl.UniformLocation(p, "uTexture"),
	}
	if pp.aPos < 0 || pp.aTex < 0 {
		return nil, fmt.Errorf("%w: vertex attributes not found", ErrShader)
	}
	return pp, nil
}
