package main

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/e2McNuts/three-sixty-media/blob"
	"github.com/e2McNuts/three-sixty-media/hostapi"
)

const callQueueSize = 256

var errBusy = errors.New("too many pending calls")

// callQueue carries host calls into the control loop. JavaScript callbacks
// must never block, so push fails instead of waiting.
type callQueue struct {
	ch chan hostapi.Call
}

func newCallQueue() *callQueue {
	return &callQueue{ch: make(chan hostapi.Call, callQueueSize)}
}

func (q *callQueue) push(c hostapi.Call) error {
	select {
	case q.ch <- c:
		return nil
	default:
		return fmt.Errorf("%s: %w", c.Method, errBusy)
	}
}

// fromJS converts one JavaScript argument. Blobs are returned as is and
// read later outside the callback.
func fromJS(v js.Value) (interface{}, error) {
	switch v.Type() {
	case js.TypeUndefined, js.TypeNull:
		return nil, nil
	case js.TypeNumber:
		return v.Float(), nil
	case js.TypeBoolean:
		return v.Bool(), nil
	case js.TypeString:
		return v.String(), nil
	case js.TypeObject:
		if blob.IsBlob(v) {
			return blob.Blob(v), nil
		}
		if blob.IsBinary(v) {
			return blob.Bytes(v)
		}
	}
	return nil, fmt.Errorf("%w: unsupported %s value", hostapi.ErrInvalidArgument, v.Type())
}

// hostFunc exposes one host method with positional arguments.
func hostFunc(name string, q *callQueue, n *jsNotifier) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		values := make([]interface{}, len(args))
		var blobs []int
		for i, a := range args {
			v, err := fromJS(a)
			if err != nil {
				return errorToJS(fmt.Errorf("%s: %w", name, err))
			}
			if _, ok := v.(blob.Blob); ok {
				blobs = append(blobs, i)
			}
			values[i] = v
		}
		c, err := hostapi.Positional(name, values...)
		if err != nil {
			return errorToJS(err)
		}
		if len(blobs) == 0 {
			if err := q.push(c); err != nil {
				return errorToJS(err)
			}
			return nil
		}

		// Reading a Blob waits for a promise. Finish in a goroutine; the
		// call may then run after calls made later.
		go func() {
			params, _ := hostapi.Params(name)
			for _, i := range blobs {
				b, err := values[i].(blob.Blob).Bytes()
				if err != nil {
					n.Error(fmt.Sprintf("%s: %v", name, err))
					return
				}
				c.Args[params[i]] = b
			}
			q.ch <- c
		}()
		return nil
	})
}

// registerHostAPI installs window.panorama.
func registerHostAPI(q *callQueue, n *jsNotifier, dispose func()) {
	api := js.Global().Get("Object").New()
	for _, name := range hostapi.Methods() {
		api.Set(name, hostFunc(name, q, n))
	}
	api.Set("addListener", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) != 2 || args[0].Type() != js.TypeString || args[1].Type() != js.TypeFunction {
			return errorToJS(fmt.Errorf("%w: addListener(name, function)", hostapi.ErrInvalidArgument))
		}
		n.addListener(args[0].String(), args[1])
		return nil
	}))
	api.Set("exec", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) != 1 || args[0].Type() != js.TypeString {
			return errorToJS(fmt.Errorf("%w: exec(line)", hostapi.ErrInvalidArgument))
		}
		c, ok, err := hostapi.ParseLine(args[0].String())
		if err != nil {
			return errorToJS(err)
		}
		if ok {
			if err := q.push(c); err != nil {
				return errorToJS(err)
			}
		}
		return nil
	}))
	api.Set("dispose", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		dispose()
		return nil
	}))
	js.Global().Set("panorama", api)
}
