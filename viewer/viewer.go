// Package viewer runs the control side of a panorama viewer. It owns the
// gesture controller, turns host calls and input into render commands and
// hands render events back to the host.
package viewer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/e2McNuts/three-sixty-media/camera"
	"github.com/e2McNuts/three-sixty-media/gesture"
	"github.com/e2McNuts/three-sixty-media/hostapi"
	"github.com/e2McNuts/three-sixty-media/render"
)

// Renderer queues commands for the render goroutine. *render.Loop
// implements it.
type Renderer interface {
	Resize(width, height int)
	SetOrientation(yaw, pitch float64)
	SetFov(fov float64)
	SetFovLimits(min, max float64)
	ResetView()
	LoadImage(data []byte)
	Dispose()

	Events() []render.Event
	EventsReady() <-chan struct{}
}

// Notifier delivers notifications to the host.
type Notifier interface {
	FovChanged(fov float64)
	Error(message string)
}

// Fetcher reads an image from a path or URL. It may block.
type Fetcher func(source string) ([]byte, error)

type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

type PointerEvent struct {
	Kind PointerKind
	gesture.Pointer
}

// Input carries host input into Run. Nil channels are never ready.
type Input struct {
	Calls   <-chan hostapi.Call
	Pointer <-chan PointerEvent
	Wheel   <-chan float64
	Resize  <-chan camera.Viewport
}

type fetchResult struct {
	source string
	data   []byte
	err    error
}

// Viewer must be used from a single control goroutine.
type Viewer struct {
	r      Renderer
	notify Notifier
	fetch  Fetcher
	log    *slog.Logger

	ctl     *gesture.Controller
	tracker *gesture.Tracker
	wheel   gesture.WheelNormalizer

	// Camera commands posted and not yet acknowledged by CameraSynced.
	inflight int
	fetched  chan fetchResult
}

type Option func(*Viewer)

func WithFetcher(f Fetcher) Option {
	return func(v *Viewer) { v.fetch = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(v *Viewer) { v.log = l }
}

// WithGesturesEnabled sets the initial gesture state.
func WithGesturesEnabled(enabled bool) Option {
	return func(v *Viewer) { v.ctl.SetEnabled(enabled) }
}

// WithFovLimits mirrors the initial camera zoom range.
func WithFovLimits(fov, min, max float64) Option {
	return func(v *Viewer) {
		v.ctl.UpdateFovLimits(min, max)
		v.ctl.SetFov(fov)
	}
}

func New(r Renderer, n Notifier, opts ...Option) *Viewer {
	v := &Viewer{
		r:       r,
		notify:  n,
		log:     slog.Default(),
		ctl:     gesture.NewController(),
		fetched: make(chan fetchResult, 1),
	}
	v.tracker = gesture.NewTracker(v.ctl)
	v.ctl.OnOrientation = func(yaw, pitch float64) {
		v.inflight++
		v.r.SetOrientation(yaw, pitch)
	}
	v.ctl.OnFov = func(fov float64) {
		v.inflight++
		v.r.SetFov(fov)
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Gestures exposes the controller for inspection.
func (v *Viewer) Gestures() *gesture.Controller {
	return v.ctl
}

func (v *Viewer) LoadImageBytes(b []byte) {
	v.r.LoadImage(b)
}

// LoadImage fetches source in the background and loads it when Run picks
// up the result.
func (v *Viewer) LoadImage(source string) {
	if v.fetch == nil {
		v.notify.Error(fmt.Sprintf("load %s: no fetcher configured", source))
		return
	}
	go func() {
		b, err := v.fetch(source)
		v.fetched <- fetchResult{source: source, data: b, err: err}
	}()
}

func (v *Viewer) SetFovLimits(min, max float64) {
	v.inflight++
	v.r.SetFovLimits(min, max)
}

func (v *Viewer) ResetView() {
	v.inflight++
	v.r.ResetView()
}

func (v *Viewer) SetFov(fov float64) {
	v.inflight++
	v.r.SetFov(fov)
}

// SetYawPitch takes radians.
func (v *Viewer) SetYawPitch(yaw, pitch float64) {
	v.inflight++
	v.r.SetOrientation(yaw, pitch)
}

func (v *Viewer) SetGestureEnabled(enabled bool) {
	v.ctl.SetEnabled(enabled)
}

// Resize reports a new surface size.
func (v *Viewer) Resize(width, height int) {
	v.ctl.UpdateViewSize(width, height)
	v.r.Resize(width, height)
}

// Pointer feeds one raw pointer sample. It returns whether the sample was
// consumed.
func (v *Viewer) Pointer(e PointerEvent) bool {
	switch e.Kind {
	case PointerDown:
		return v.tracker.Down(e.Pointer)
	case PointerMove:
		return v.tracker.Move(e.Pointer)
	case PointerUp:
		return v.tracker.Up(e.Pointer)
	}
	return false
}

// Wheel feeds a vertical wheel delta as a zoom step.
func (v *Viewer) Wheel(deltaY float64) bool {
	return v.ctl.Pinch(v.wheel.Scale(deltaY))
}

func (v *Viewer) Dispose() {
	v.r.Dispose()
}

// Sync drains render events into host notifications and the gesture mirror.
func (v *Viewer) Sync() {
	for _, e := range v.r.Events() {
		switch e := e.(type) {
		case render.FovChanged:
			v.notify.FovChanged(e.Fov)
		case render.Error:
			v.notify.Error(e.Err.Error())
		case render.CameraSynced:
			if v.inflight > 0 {
				v.inflight--
			}
			if v.inflight > 0 {
				// A newer proposal is queued. Keep the local mirror.
				continue
			}
			v.ctl.UpdateFovLimits(e.MinFov, e.MaxFov)
			v.ctl.SetFov(e.Fov)
			v.ctl.SetOrientation(e.Yaw, e.Pitch)
		}
	}
}

// Call dispatches a host call and reports failures as error notifications.
func (v *Viewer) Call(c hostapi.Call) error {
	if err := hostapi.Dispatch(v, c); err != nil {
		v.log.Warn("host call failed", "method", c.Method, "error", err)
		v.notify.Error(err.Error())
		return err
	}
	return nil
}

// Run processes input until ctx is done.
func (v *Viewer) Run(ctx context.Context, in Input) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-in.Calls:
			v.Call(c)
		case e := <-in.Pointer:
			v.Pointer(e)
		case d := <-in.Wheel:
			v.Wheel(d)
		case s := <-in.Resize:
			v.Resize(s.Width, s.Height)
		case res := <-v.fetched:
			v.loadFetched(res)
		case <-v.r.EventsReady():
			v.Sync()
		}
	}
}

func (v *Viewer) loadFetched(res fetchResult) {
	if res.err != nil {
		v.log.Warn("fetch failed", "source", res.source, "error", res.err)
		v.notify.Error(fmt.Sprintf("load %s: %v", res.source, res.err))
		return
	}
	v.log.Debug("fetched", "source", res.source, "bytes", len(res.data))
	v.r.LoadImage(res.data)
}
