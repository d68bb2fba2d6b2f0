package main

import (
	"errors"
	"fmt"
	"syscall/js"
)

var errNotFound = errors.New("not found")

// fetchGet downloads path with the fetch API. It blocks until the body
// arrived, so it must not run inside a JavaScript callback.
func fetchGet(path string) ([]byte, error) {
	var b []byte
	chErr := make(chan error, 1)

	onResponse := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		res := args[0]
		if !res.Get("ok").Bool() {
			if res.Get("status").Int() == 404 {
				chErr <- fmt.Errorf("fetch %s: %w", path, errNotFound)
			} else {
				chErr <- fmt.Errorf("fetch %s: %s", path, res.Get("statusText").String())
			}
			return nil
		}
		return res.Call("arrayBuffer")
	})
	defer onResponse.Release()
	onBody := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) == 0 || args[0].IsUndefined() || args[0].IsNull() {
			// The response was rejected above.
			return nil
		}
		array := js.Global().Get("Uint8Array").New(args[0])
		b = make([]byte, array.Get("byteLength").Int())
		js.CopyBytesToGo(b, array)
		chErr <- nil
		return nil
	})
	defer onBody.Release()
	onFailure := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		msg := "network error"
		if len(args) > 0 && args[0].Truthy() {
			msg = args[0].Call("toString").String()
		}
		select {
		case chErr <- fmt.Errorf("fetch %s: %s", path, msg):
		default:
		}
		return nil
	})
	defer onFailure.Release()

	js.Global().Call("fetch", path, map[string]interface{}{
		"credentials": "include",
	}).Call("then", onResponse).Call("then", onBody).Call("catch", onFailure)

	if err := <-chErr; err != nil {
		return nil, err
	}
	return b, nil
}
