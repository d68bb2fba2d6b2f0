package main

import (
	"syscall/js"

	webgl "github.com/seqsense/webgl-go"

	"github.com/e2McNuts/three-sixty-media/gesture"
	"github.com/e2McNuts/three-sixty-media/viewer"
)

func toPointerEvent(kind viewer.PointerKind, e webgl.PointerEvent) viewer.PointerEvent {
	return viewer.PointerEvent{
		Kind: kind,
		Pointer: gesture.Pointer{
			ID: e.PointerId,
			X:  float64(e.OffsetX),
			Y:  float64(e.OffsetY),
		},
	}
}

// bindInput forwards canvas pointer and wheel events to the control loop.
func bindInput(canvas webgl.Canvas) (<-chan viewer.PointerEvent, <-chan float64) {
	chPointer := make(chan viewer.PointerEvent, 16)
	chWheel := make(chan float64, 16)

	cj := js.Value(canvas)
	// Keep the browser from scrolling or zooming the page on touch.
	cj.Get("style").Set("touchAction", "none")

	canvas.OnPointerDown(func(e webgl.PointerEvent) {
		e.PreventDefault()
		e.StopPropagation()
		cj.Call("setPointerCapture", e.PointerId)
		chPointer <- toPointerEvent(viewer.PointerDown, e)
	})
	canvas.OnPointerMove(func(e webgl.PointerEvent) {
		e.PreventDefault()
		e.StopPropagation()
		chPointer <- toPointerEvent(viewer.PointerMove, e)
	})
	up := func(e webgl.PointerEvent) {
		e.PreventDefault()
		e.StopPropagation()
		chPointer <- toPointerEvent(viewer.PointerUp, e)
	}
	canvas.OnPointerUp(up)
	canvas.OnPointerOut(up)

	canvas.OnWheel(func(e webgl.WheelEvent) {
		e.PreventDefault()
		e.StopPropagation()
		// Line and pixel modes differ only in scale, which the viewer
		// normalizes per device.
		chWheel <- e.DeltaY
	})
	return chPointer, chWheel
}
