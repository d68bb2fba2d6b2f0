package main

import (
	"context"
	"errors"
	"log/slog"
	"syscall/js"

	webgl "github.com/seqsense/webgl-go"

	"github.com/e2McNuts/three-sixty-media/camera"
	"github.com/e2McNuts/three-sixty-media/config"
	"github.com/e2McNuts/three-sixty-media/render"
	"github.com/e2McNuts/three-sixty-media/viewer"
)

const (
	canvasID      = "mapCanvas"
	logID         = "log"
	defaultConfig = "config.yaml"
)

func query(key string) string {
	params := js.Global().Get("URLSearchParams").New(js.Global().Get("location").Get("search"))
	v := params.Call("get", key)
	if v.IsNull() {
		return ""
	}
	return v.String()
}

// loadConfig fetches the YAML config. A missing file means defaults.
func loadConfig(path string) (*config.Config, error) {
	b, err := fetchGet(path)
	if errors.Is(err, errNotFound) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return config.Parse(b)
}

func main() {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", canvasID)

	log := newLogger(doc.Call("getElementById", logID), logLevel(query("log")))
	slog.SetDefault(log)

	notify := newJSNotifier(log)
	calls := newCallQueue()
	chDispose := make(chan struct{}, 1)
	registerHostAPI(calls, notify, func() {
		select {
		case chDispose <- struct{}{}:
		default:
		}
	})

	configPath := query("config")
	if configPath == "" {
		configPath = defaultConfig
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Error("failed to load config, using defaults", "path", configPath, "error", err)
		notify.Error(err.Error())
		cfg = config.Default()
	}
	if s := query("source"); s != "" {
		cfg.Source = s
	}

	gl, err := webgl.New(canvas)
	if err != nil {
		log.Error("failed to create WebGL context", "error", err)
		notify.Error(err.Error())
		return
	}
	showDebugInfo(gl, log)

	opts := cfg.RenderOptions()
	opts.Logger = log
	loop, err := render.NewLoop(newWebGLContext(gl), opts)
	if err != nil {
		log.Error("failed to set up renderer", "error", err)
		notify.Error(err.Error())
		return
	}

	v := viewer.New(loop, notify,
		viewer.WithFetcher(fetchGet),
		viewer.WithLogger(log),
		viewer.WithGesturesEnabled(cfg.Gestures.Enabled),
		viewer.WithFovLimits(cfg.Camera.Fov, cfg.Camera.MinFov, cfg.Camera.MaxFov),
	)
	if cfg.Remote != "" {
		notify.setRemote(dialRemote(cfg.Remote, calls, log))
	}

	chLost := make(chan struct{}, 1)
	gl.Canvas.OnWebGLContextLost(func(e webgl.WebGLContextEvent) {
		e.PreventDefault()
		select {
		case chLost <- struct{}{}:
		default:
		}
	})

	chPointer, chWheel := bindInput(gl.Canvas)
	chResize := make(chan camera.Viewport, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.HasSource() {
		v.LoadImage(cfg.Source)
	}
	go func() {
		err := v.Run(ctx, viewer.Input{
			Calls:   calls.ch,
			Pointer: chPointer,
			Wheel:   chWheel,
			Resize:  chResize,
		})
		log.Debug("control loop stopped", "error", err)
	}()

	chFrame := make(chan struct{}, 1)
	onFrame := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		select {
		case chFrame <- struct{}{}:
		default:
		}
		return nil
	})
	defer onFrame.Release()

	log.Info("viewer started", "source", cfg.Source)

	var width, height int
	for {
		js.Global().Call("requestAnimationFrame", onFrame)
		select {
		case <-chFrame:
		case <-chDispose:
			loop.Dispose()
		case <-chLost:
			log.Error("stopped drawing", "error", errContextLostEvent)
			notify.Error(errContextLostEvent.Error())
			return
		}

		newWidth := gl.Canvas.ClientWidth()
		newHeight := gl.Canvas.ClientHeight()
		if newWidth != width || newHeight != height {
			width, height = newWidth, newHeight
			gl.Canvas.SetWidth(width)
			gl.Canvas.SetHeight(height)
			select {
			case <-chResize:
			default:
			}
			chResize <- camera.NewViewport(width, height)
		}

		if err := loop.Frame(); err != nil {
			if errors.Is(err, render.ErrDisposed) {
				log.Info("viewer disposed")
			} else {
				log.Error("frame failed", "error", err)
			}
			return
		}
	}
}
