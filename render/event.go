package render

// Event is sent from the render goroutine to the control side.
type Event interface {
	event()
}

// FovChanged reports the field of view in degrees after a camera command.
type FovChanged struct {
	Fov float64
}

// Error reports a recoverable failure. Rendering continues.
type Error struct {
	Err error
}

// CameraSynced carries the camera state. Exactly one is emitted per camera
// command, after any FovChanged or Error it caused, so gesture mirrors can
// follow commands that did not originate from a gesture.
type CameraSynced struct {
	Yaw, Pitch     float64
	Fov            float64
	MinFov, MaxFov float64
}

func (FovChanged) event()   {}
func (Error) event()        {}
func (CameraSynced) event() {}
