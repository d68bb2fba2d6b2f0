package main

import (
	"log/slog"

	webgl "github.com/seqsense/webgl-go"
)

func showDebugInfo(gl *webgl.WebGL, log *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("failed to get debug info", "panic", r)
		}
	}()

	ri, ok := gl.GetExtension("WEBGL_debug_renderer_info")
	if !ok {
		log.Info("GPU info hidden by the browser privacy setting")
		return
	}
	log.Info("GPU",
		"vendor", gl.GetParameter(ri.Get("UNMASKED_VENDOR_WEBGL").Int()).String(),
		"renderer", gl.GetParameter(ri.Get("UNMASKED_RENDERER_WEBGL").Int()).String(),
		"maxTextureSize", gl.GetParameter(gl.JS().Get("MAX_TEXTURE_SIZE").Int()).Int(),
	)
}
