package gesture

import (
	"math"
	"sort"
)

// Pointer is one sample of a touch point or mouse cursor in view pixels.
type Pointer struct {
	ID   int
	X, Y float64
}

// Target receives recognized gestures.
type Target interface {
	Drag(dx, dy float64) bool
	Pinch(s float64) bool
}

type trackMode int

const (
	trackNone trackMode = iota
	trackDrag
	trackPinch
)

// Tracker recognizes one-pointer drags and two-pointer pinches from raw
// pointer samples.
type Tracker struct {
	target Target
	guard  DragGuard

	pointers map[int]Pointer
	pointer0 Pointer

	mode  trackMode
	span0 float64
}

func NewTracker(target Target) *Tracker {
	return &Tracker{
		target:   target,
		pointers: make(map[int]Pointer),
	}
}

// Down starts tracking a pointer.
func (t *Tracker) Down(p Pointer) bool {
	t.pointers[p.ID] = p

	switch len(t.pointers) {
	case 1:
		t.pointer0 = p
		t.guard.Reset()
	default:
		t.span0 = t.span()
		t.mode = trackPinch
	}
	return true
}

// Move feeds a new position of a tracked pointer.
func (t *Tracker) Move(p Pointer) bool {
	if _, ok := t.pointers[p.ID]; !ok {
		return false
	}
	t.pointers[p.ID] = p

	if t.mode == trackNone {
		switch len(t.pointers) {
		case 1:
			t.mode = trackDrag
		case 2:
			t.mode = trackPinch
		}
	}

	consumed := true
	switch t.mode {
	case trackDrag:
		if p.ID != t.pointer0.ID {
			break
		}
		if !t.guard.Blocked() {
			consumed = t.target.Drag(p.X-t.pointer0.X, p.Y-t.pointer0.Y)
		}
		t.pointer0 = p
	case trackPinch:
		if len(t.pointers) != 2 {
			break
		}
		d := t.span()
		if t.span0 > 0 && d > 0 {
			consumed = t.target.Pinch(d / t.span0)
		}
		t.span0 = d
	}
	return consumed
}

// Up stops tracking a pointer. Cancel and leave events end the same way.
func (t *Tracker) Up(p Pointer) bool {
	if _, ok := t.pointers[p.ID]; !ok {
		return false
	}
	delete(t.pointers, p.ID)

	switch len(t.pointers) {
	case 0:
		t.mode = trackNone
	case 1:
		if t.mode == trackPinch {
			for _, rest := range t.pointers {
				t.pointer0 = rest
			}
			t.mode = trackDrag
			t.guard.PinchEnd()
		}
	default:
		// The pinch pair may have changed.
		t.span0 = t.span()
	}
	return true
}

// Active returns the number of tracked pointers.
func (t *Tracker) Active() int {
	return len(t.pointers)
}

// span returns the distance between the two pointers with the lowest IDs.
func (t *Tracker) span() float64 {
	pp := make([]Pointer, 0, len(t.pointers))
	for _, p := range t.pointers {
		pp = append(pp, p)
	}
	if len(pp) < 2 {
		return 0
	}
	sort.Slice(pp, func(i, j int) bool { return pp[i].ID < pp[j].ID })
	return math.Hypot(pp[0].X-pp[1].X, pp[0].Y-pp[1].Y)
}
