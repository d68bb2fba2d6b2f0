// Package hostapi defines the calls a host makes into the viewer and the
// notifications it receives back.
package hostapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/e2McNuts/three-sixty-media/camera"
)

var (
	ErrUnknownMethod   = errors.New("unknown method")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Method names.
const (
	LoadImageBytes    = "loadImageBytes"
	LoadImage         = "loadImage"
	SetFovLimits      = "setFovLimits"
	ResetView         = "resetView"
	SetFov            = "setFov"
	SetYawPitch       = "setYawPitch"
	SetGestureEnabled = "setGestureEnabled"
)

// Notification names.
const (
	OnFovChanged = "onFovChanged"
	OnError      = "onError"
)

// Viewer is the command surface of a viewer.
type Viewer interface {
	LoadImageBytes(b []byte)
	LoadImage(source string)
	SetFovLimits(min, max float64)
	ResetView()
	SetFov(fov float64)
	SetYawPitch(yaw, pitch float64)
	SetGestureEnabled(enabled bool)
}

// Args holds named call arguments. Numbers are float64, byte payloads are
// []byte or base64 strings.
type Args map[string]interface{}

// Call is one host invocation.
type Call struct {
	Method string `json:"method"`
	Args   Args   `json:"args,omitempty"`
}

// Notification is one message to the host.
type Notification struct {
	Method string `json:"method"`
	Args   Args   `json:"args,omitempty"`
}

// NotifyFovChanged returns the onFovChanged notification.
func NotifyFovChanged(fov float64) Notification {
	return Notification{Method: OnFovChanged, Args: Args{"fov": fov}}
}

// NotifyError returns the onError notification.
func NotifyError(message string) Notification {
	return Notification{Method: OnError, Args: Args{"message": message}}
}

type method struct {
	params []string
	call   func(v Viewer, a Args) error
}

var methods = map[string]method{
	LoadImageBytes: {
		params: []string{"bytes"},
		call: func(v Viewer, a Args) error {
			b, err := a.Bytes("bytes")
			if err != nil {
				return err
			}
			v.LoadImageBytes(b)
			return nil
		},
	},
	LoadImage: {
		params: []string{"source"},
		call: func(v Viewer, a Args) error {
			s, err := a.String("source")
			if err != nil {
				return err
			}
			v.LoadImage(s)
			return nil
		},
	},
	SetFovLimits: {
		params: []string{"min", "max"},
		call: func(v Viewer, a Args) error {
			min, err := a.Float("min", camera.DefaultMinFov)
			if err != nil {
				return err
			}
			max, err := a.Float("max", camera.DefaultMaxFov)
			if err != nil {
				return err
			}
			v.SetFovLimits(min, max)
			return nil
		},
	},
	ResetView: {
		call: func(v Viewer, a Args) error {
			v.ResetView()
			return nil
		},
	},
	SetFov: {
		params: []string{"fov"},
		call: func(v Viewer, a Args) error {
			fov, err := a.Float("fov", camera.DefaultFov)
			if err != nil {
				return err
			}
			v.SetFov(fov)
			return nil
		},
	},
	SetYawPitch: {
		params: []string{"yaw", "pitch"},
		call: func(v Viewer, a Args) error {
			yaw, err := a.Float("yaw", 0)
			if err != nil {
				return err
			}
			pitch, err := a.Float("pitch", 0)
			if err != nil {
				return err
			}
			v.SetYawPitch(yaw, pitch)
			return nil
		},
	},
	SetGestureEnabled: {
		params: []string{"enabled"},
		call: func(v Viewer, a Args) error {
			enabled, err := a.Bool("enabled", true)
			if err != nil {
				return err
			}
			v.SetGestureEnabled(enabled)
			return nil
		},
	},
}

// Methods returns the method names in sorted order.
func Methods() []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Params returns the positional parameter names of a method.
func Params(name string) ([]string, bool) {
	m, ok := methods[name]
	if !ok {
		return nil, false
	}
	return m.params, true
}

// Positional builds a call from positional arguments.
func Positional(name string, values ...interface{}) (Call, error) {
	m, ok := methods[name]
	if !ok {
		return Call{}, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	if len(values) > len(m.params) {
		return Call{}, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrInvalidArgument, name, len(m.params), len(values))
	}
	args := make(Args, len(values))
	for i, v := range values {
		args[m.params[i]] = v
	}
	return Call{Method: name, Args: args}, nil
}

// Dispatch validates a call and invokes it on v.
func Dispatch(v Viewer, c Call) error {
	m, ok := methods[c.Method]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMethod, c.Method)
	}
	if err := m.call(v, c.Args); err != nil {
		return fmt.Errorf("%s: %w", c.Method, err)
	}
	return nil
}

// Decode parses the JSON form of a call.
func Decode(b []byte) (Call, error) {
	var c Call
	if err := json.Unmarshal(b, &c); err != nil {
		return Call{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if _, ok := methods[c.Method]; !ok {
		return Call{}, fmt.Errorf("%w: %q", ErrUnknownMethod, c.Method)
	}
	return c, nil
}

// Float returns a finite number argument or def when absent.
func (a Args) Float(name string, def float64) (float64, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return def, nil
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, name, err)
		}
	default:
		return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrInvalidArgument, name, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s must be finite", ErrInvalidArgument, name)
	}
	return f, nil
}

// Bool returns a boolean argument or def when absent.
func (a Args) Bool(name string, def bool) (bool, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a boolean, got %T", ErrInvalidArgument, name, v)
	}
	return b, nil
}

// String returns a required non-empty string argument.
func (a Args) String(name string) (string, error) {
	s, ok := a[name].(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidArgument, name)
	}
	return s, nil
}

// Bytes returns a required byte payload. Strings are read as base64.
func (a Args) Bytes(name string) ([]byte, error) {
	switch v := a[name].(type) {
	case []byte:
		return v, nil
	case string:
		b, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, name, err)
		}
		return b, nil
	case nil:
		return nil, fmt.Errorf("%w: %s is required", ErrInvalidArgument, name)
	default:
		return nil, fmt.Errorf("%w: %s must be bytes, got %T", ErrInvalidArgument, name, v)
	}
}
