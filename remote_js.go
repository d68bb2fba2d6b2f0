package main

import (
	"encoding/json"
	"log/slog"
	"syscall/js"

	"github.com/e2McNuts/three-sixty-media/hostapi"
)

// remote receives host calls from a websocket peer such as the relay in
// examples/serve and sends notifications back.
type remote struct {
	ws  js.Value
	log *slog.Logger
}

func dialRemote(url string, q *callQueue, log *slog.Logger) *remote {
	r := &remote{
		ws:  js.Global().Get("WebSocket").New(url),
		log: log.With("remote", url),
	}
	r.ws.Call("addEventListener", "open", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		r.log.Info("remote connected")
		return nil
	}))
	r.ws.Call("addEventListener", "close", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		r.log.Warn("remote closed", "code", args[0].Get("code").Int())
		return nil
	}))
	r.ws.Call("addEventListener", "message", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		data := args[0].Get("data")
		if data.Type() != js.TypeString {
			r.log.Warn("ignoring binary message")
			return nil
		}
		c, err := hostapi.Decode([]byte(data.String()))
		if err != nil {
			r.log.Warn("invalid call", "error", err)
			r.send(hostapi.NotifyError(err.Error()))
			return nil
		}
		if err := q.push(c); err != nil {
			r.send(hostapi.NotifyError(err.Error()))
		}
		return nil
	}))
	return r
}

func (r *remote) send(n hostapi.Notification) {
	if r.ws.Get("readyState").Int() != r.ws.Get("OPEN").Int() {
		return
	}
	b, err := json.Marshal(n)
	if err != nil {
		r.log.Warn("failed to encode notification", "error", err)
		return
	}
	r.ws.Call("send", string(b))
}
