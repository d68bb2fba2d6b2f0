package main

import (
	"errors"
	"fmt"
	"syscall/js"

	webgl "github.com/seqsense/webgl-go"
)

var errContextLost = errors.New("WebGL context lost")

func compileShader(gl *webgl.WebGL, typ webgl.ShaderType, name, src string) (webgl.Shader, error) {
	s := gl.CreateShader(typ)
	gl.ShaderSource(s, src)
	gl.CompileShader(s)
	if !gl.GetShaderParameter(s, gl.COMPILE_STATUS).(bool) {
		if gl.IsContextLost() {
			return webgl.Shader(js.Null()), errContextLost
		}
		info := gl.JS().Call("getShaderInfoLog", js.Value(s)).String()
		gl.JS().Call("deleteShader", js.Value(s))
		return webgl.Shader(js.Null()), fmt.Errorf("compile failed (%s): %s", name, info)
	}
	return s, nil
}

func initVertexShader(gl *webgl.WebGL, src string) (webgl.Shader, error) {
	return compileShader(gl, gl.VERTEX_SHADER, "VERTEX_SHADER", src)
}

func initFragmentShader(gl *webgl.WebGL, src string) (webgl.Shader, error) {
	return compileShader(gl, gl.FRAGMENT_SHADER, "FRAGMENT_SHADER", src)
}

// linkShaders links a program. The shaders are flagged for deletion either
// way; the program keeps them alive.
func linkShaders(gl *webgl.WebGL, shaders ...webgl.Shader) (webgl.Program, error) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)
	for _, s := range shaders {
		gl.JS().Call("deleteShader", js.Value(s))
	}
	if !gl.GetProgramParameter(program, gl.LINK_STATUS).(bool) {
		if gl.IsContextLost() {
			return webgl.Program(js.Null()), errContextLost
		}
		return webgl.Program(js.Null()), errors.New("link failed: " + gl.GetProgramInfoLog(program))
	}
	return program, nil
}
