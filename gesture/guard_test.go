package gesture

import (
	"testing"
	"time"
)

func TestDragGuard(t *testing.T) {
	g := &DragGuard{}

	if g.Blocked() {
		t.Error("Drag without preceding pinch must not be blocked")
	}

	g.PinchEnd()
	if !g.Blocked() {
		t.Error("Drag right after pinch must be blocked")
	}

	time.Sleep(dragGuardDuration + time.Millisecond)
	if g.Blocked() {
		t.Error("Drag after guard duration must not be blocked")
	}

	g.PinchEnd()
	g.Reset()
	if g.Blocked() {
		t.Error("Drag after reset must not be blocked")
	}
}
