// Package blob copies binary JavaScript values into Go byte slices.
package blob

import (
	"errors"
	"io"
	"syscall/js"
)

var (
	ErrNotBinary = errors.New("requires Blob, ArrayBuffer or typed array")
	ErrRead      = errors.New("failed to read blob")
)

var (
	blobJS        = js.Global().Get("Blob")
	arrayBufferJS = js.Global().Get("ArrayBuffer")
	uint8ArrayJS  = js.Global().Get("Uint8Array")
)

type Blob js.Value

// JS wraps a Blob object.
func JS(j interface{}) (Blob, error) {
	jv, ok := j.(js.Value)
	if !ok {
		return Blob{}, errors.New("requires JavaScript object")
	}
	if !IsBlob(jv) {
		return Blob{}, ErrNotBinary
	}
	return Blob(jv), nil
}

// IsBlob reports whether v must be read asynchronously with Blob.Bytes.
func IsBlob(v js.Value) bool {
	return v.Type() == js.TypeObject && v.InstanceOf(blobJS)
}

// IsBinary reports whether Bytes accepts v.
func IsBinary(v js.Value) bool {
	if v.Type() != js.TypeObject {
		return false
	}
	return v.InstanceOf(arrayBufferJS) || arrayBufferJS.Call("isView", v).Bool()
}

// Bytes copies an ArrayBuffer or any ArrayBuffer view. It does not block.
func Bytes(v js.Value) ([]byte, error) {
	if !IsBinary(v) {
		return nil, ErrNotBinary
	}
	var array js.Value
	if v.InstanceOf(arrayBufferJS) {
		array = uint8ArrayJS.New(v)
	} else {
		array = uint8ArrayJS.New(v.Get("buffer"), v.Get("byteOffset"), v.Get("byteLength"))
	}
	b := make([]byte, array.Get("byteLength").Int())
	js.CopyBytesToGo(b, array)
	return b, nil
}

func (blob Blob) JS() js.Value {
	return js.Value(blob)
}

// Bytes reads the whole blob. It waits for a promise, so it must not be
// called from a JavaScript callback.
func (blob Blob) Bytes() ([]byte, error) {
	r, err := blob.Reader()
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

func (blob Blob) Reader() (io.Reader, error) {
	var r *blobReader
	chErr := make(chan error)
	onLoad := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		array := uint8ArrayJS.New(args[0])
		r = &blobReader{
			jsArray: array,
			n:       array.Get("byteLength").Int(),
		}
		chErr <- nil
		return nil
	})
	defer onLoad.Release()
	onError := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		chErr <- ErrRead
		return nil
	})
	defer onError.Release()

	js.Value(blob).Call("arrayBuffer").Call("then", onLoad, onError)
	if err := <-chErr; err != nil {
		return nil, err
	}
	return r, nil
}

type blobReader struct {
	jsArray js.Value
	n       int
	pos     int
}

func (r *blobReader) Read(b []byte) (int, error) {
	if r.n == r.pos {
		return 0, io.EOF
	}
	end := r.pos + len(b)
	if end > r.n {
		end = r.n
	}
	n := end - r.pos
	sa := r.jsArray.Call("subarray", js.ValueOf(r.pos), js.ValueOf(end))
	js.CopyBytesToGo(b, sa)
	r.pos = end
	return n, nil
}
