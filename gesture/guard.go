package gesture

import (
	"time"
)

const dragGuardDuration = 100 * time.Millisecond

// DragGuard suppresses drags right after a pinch ends, when the finger left
// on the screen would otherwise make the view jump.
type DragGuard struct {
	deadline time.Time
}

func (g *DragGuard) PinchEnd() {
	g.deadline = time.Now().Add(dragGuardDuration)
}

func (g *DragGuard) Reset() {
	g.deadline = time.Time{}
}

func (g *DragGuard) Blocked() bool {
	return !g.deadline.IsZero() && time.Now().Before(g.deadline)
}
