package main

import (
	"log/slog"
	"sync"
	"syscall/js"

	"github.com/e2McNuts/three-sixty-media/hostapi"
)

// jsNotifier calls JavaScript listeners registered through
// panorama.addListener and mirrors notifications to the remote peer.
type jsNotifier struct {
	log *slog.Logger

	mu        sync.Mutex
	listeners map[string][]js.Value
	remote    *remote
}

func newJSNotifier(log *slog.Logger) *jsNotifier {
	return &jsNotifier{
		log:       log,
		listeners: make(map[string][]js.Value),
	}
}

func (n *jsNotifier) addListener(name string, fn js.Value) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners[name] = append(n.listeners[name], fn)
}

func (n *jsNotifier) setRemote(r *remote) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.remote = r
}

func (n *jsNotifier) FovChanged(fov float64) {
	n.notify(hostapi.NotifyFovChanged(fov), fov)
}

func (n *jsNotifier) Error(message string) {
	n.log.Warn("error notified", "message", message)
	n.notify(hostapi.NotifyError(message), message)
}

func (n *jsNotifier) notify(note hostapi.Notification, arg interface{}) {
	n.mu.Lock()
	fns := append([]js.Value(nil), n.listeners[note.Method]...)
	r := n.remote
	n.mu.Unlock()

	for _, fn := range fns {
		fn.Invoke(arg)
	}
	if r != nil {
		r.send(note)
	}
}
