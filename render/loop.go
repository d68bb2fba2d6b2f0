// Package render draws the panorama sphere and owns every GPU resource.
//
// A Loop is driven by one render goroutine calling Frame. Any goroutine
// may queue work with the command methods; queued work runs at the start
// of the next frame in the order it was queued. Results flow back as
// Events.
package render

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/e2McNuts/three-sixty-media/camera"
	"github.com/e2McNuts/three-sixty-media/sphere"
)

var ErrDisposed = errors.New("render loop disposed")

// Task runs on the render goroutine.
type Task func(l *Loop)

type Options struct {
	Stacks, Slices int
	Radius         float32

	ClearColor [4]float32
	Camera     []camera.Option

	// MaxTextureSize overrides the GPU limit when positive.
	MaxTextureSize int

	Logger *slog.Logger
}

// DefaultOptions returns the standard sphere tessellation on black.
func DefaultOptions() Options {
	return Options{
		Stacks:     sphere.DefaultStacks,
		Slices:     sphere.DefaultSlices,
		Radius:     sphere.DefaultRadius,
		ClearColor: [4]float32{0, 0, 0, 1},
	}
}

type Loop struct {
	gl  GL
	log *slog.Logger

	tasks  *mailbox[Task]
	events *mailbox[Event]

	camera   *camera.Camera
	program  *panoramaProgram
	mesh     *SphereMesh
	textures *TextureStore

	disposed bool
}

// NewLoop sets up GL state for a freshly created surface. It must run on
// the render goroutine. A shader failure is fatal for the surface.
func NewLoop(gl GL, opts Options) (*Loop, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	m, err := sphere.Generate(opts.Stacks, opts.Slices, opts.Radius)
	if err != nil {
		return nil, err
	}
	program, err := newPanoramaProgram(gl)
	if err != nil {
		return nil, err
	}

	maxSize := opts.MaxTextureSize
	if maxSize <= 0 {
		maxSize = gl.MaxTextureSize()
	}

	c := opts.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Enable(DepthTest)

	log.Debug("render loop ready",
		"vertices", m.VertexCount(),
		"indices", m.IndexCount(),
		"maxTextureSize", maxSize,
	)

	return &Loop{
		gl:       gl,
		log:      log,
		tasks:    newMailbox[Task](),
		events:   newMailbox[Event](),
		camera:   camera.New(opts.Camera...),
		program:  program,
		mesh:     NewSphereMesh(gl, m),
		textures: NewTextureStore(gl, maxSize),
	}, nil
}

// Post queues a task for the next frame. It never blocks.
func (l *Loop) Post(t Task) {
	l.tasks.push(t)
}

// Events drains the events emitted so far.
func (l *Loop) Events() []Event {
	return l.events.drain()
}

// EventsReady is signalled after new events were emitted.
func (l *Loop) EventsReady() <-chan struct{} {
	return l.events.ready
}

// Camera returns the camera. Only tasks and the render goroutine may use it.
func (l *Loop) Camera() *camera.Camera {
	return l.camera
}

func (l *Loop) Textures() *TextureStore {
	return l.textures
}

func (l *Loop) emit(e Event) {
	l.events.push(e)
}

func (l *Loop) emitError(err error) {
	l.log.Warn("render task failed", "error", err)
	l.emit(Error{Err: err})
}

func (l *Loop) emitSync() {
	c := l.camera
	l.emit(CameraSynced{
		Yaw:    c.Yaw(),
		Pitch:  c.Pitch(),
		Fov:    c.Fov(),
		MinFov: c.MinFov(),
		MaxFov: c.MaxFov(),
	})
}

// RunTasks executes the tasks queued so far. Tasks queued while running
// wait for the next call.
func (l *Loop) RunTasks() {
	for _, t := range l.tasks.drain() {
		if l.disposed {
			l.log.Debug("dropping task queued after dispose")
			continue
		}
		t(l)
	}
}

// Frame runs queued tasks and draws one frame.
func (l *Loop) Frame() error {
	l.RunTasks()
	if l.disposed {
		return ErrDisposed
	}

	l.gl.Clear()
	l.gl.UseProgram(l.program.program)

	mvp := l.camera.ViewProjection()
	l.gl.UniformMatrix4(l.program.uMVP, mvp)

	l.textures.Bind(0)
	l.gl.Uniform1i(l.program.uTexture, 0)

	l.mesh.Draw(l.program.aPos, l.program.aTex)
	return nil
}

// Resize queues a viewport change after the surface was resized.
func (l *Loop) Resize(width, height int) {
	l.Post(func(l *Loop) {
		l.camera.SetViewport(width, height)
		vp := l.camera.Viewport()
		l.gl.Viewport(0, 0, vp.Width, vp.Height)
	})
}

// SetOrientation queues a yaw and pitch change in radians.
func (l *Loop) SetOrientation(yaw, pitch float64) {
	l.Post(func(l *Loop) {
		if err := l.camera.SetOrientation(yaw, pitch); err != nil {
			l.emitError(fmt.Errorf("set orientation: %w", err))
		}
		l.emitSync()
	})
}

// SetFov queues a field of view change. FovChanged is emitted even if the
// clamped value equals the current one.
func (l *Loop) SetFov(fov float64) {
	l.Post(func(l *Loop) {
		if f, err := l.camera.SetFov(fov); err != nil {
			l.emitError(fmt.Errorf("set fov: %w", err))
		} else {
			l.emit(FovChanged{Fov: f})
		}
		l.emitSync()
	})
}

// SetFovLimits queues a zoom range change.
func (l *Loop) SetFovLimits(min, max float64) {
	l.Post(func(l *Loop) {
		if f, err := l.camera.SetFovLimits(min, max); err != nil {
			l.emitError(fmt.Errorf("set fov limits [%g, %g]: %w", min, max, err))
		} else {
			l.emit(FovChanged{Fov: f})
		}
		l.emitSync()
	})
}

// ResetView queues a camera reset.
func (l *Loop) ResetView() {
	l.Post(func(l *Loop) {
		l.camera.Reset()
		l.emit(FovChanged{Fov: l.camera.Fov()})
		l.emitSync()
	})
}

// LoadImage queues decoding and upload of encoded image data. On failure
// an Error is emitted and the current texture stays in place.
func (l *Loop) LoadImage(data []byte) {
	l.Post(func(l *Loop) {
		img, format, err := Decode(data)
		if err != nil {
			l.emitError(fmt.Errorf("load image: %w", err))
			return
		}
		if err := l.textures.Upload(img); err != nil {
			l.emitError(fmt.Errorf("upload image: %w", err))
			return
		}
		w, h := l.textures.Size()
		l.log.Info("panorama loaded",
			"format", format,
			"width", img.Bounds().Dx(),
			"height", img.Bounds().Dy(),
			"textureWidth", w,
			"textureHeight", h,
		)
	})
}

// Dispose queues release of every GPU resource. Later frames return
// ErrDisposed.
func (l *Loop) Dispose() {
	l.Post(func(l *Loop) {
		l.textures.Release()
		l.mesh.Release()
		l.disposed = true
	})
}
