package hostapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"
)

type recordingViewer struct {
	calls []string
	bytes []byte
}

func (r *recordingViewer) record(format string, args ...interface{}) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingViewer) LoadImageBytes(b []byte) {
	r.bytes = b
	r.record("LoadImageBytes %d", len(b))
}
func (r *recordingViewer) LoadImage(s string)             { r.record("LoadImage %s", s) }
func (r *recordingViewer) SetFovLimits(min, max float64)  { r.record("SetFovLimits %g %g", min, max) }
func (r *recordingViewer) ResetView()                     { r.record("ResetView") }
func (r *recordingViewer) SetFov(fov float64)             { r.record("SetFov %g", fov) }
func (r *recordingViewer) SetYawPitch(yaw, pitch float64) { r.record("SetYawPitch %g %g", yaw, pitch) }
func (r *recordingViewer) SetGestureEnabled(enabled bool) { r.record("SetGestureEnabled %v", enabled) }

func TestDispatch(t *testing.T) {
	testCases := map[string]struct {
		call     Call
		expected string
	}{
		"SetFov":              {call: Call{Method: SetFov, Args: Args{"fov": 60.0}}, expected: "SetFov 60"},
		"SetFovDefault":       {call: Call{Method: SetFov}, expected: "SetFov 75"},
		"SetFovLimits":        {call: Call{Method: SetFovLimits, Args: Args{"min": 10, "max": 120.0}}, expected: "SetFovLimits 10 120"},
		"SetFovLimitsDefault": {call: Call{Method: SetFovLimits}, expected: "SetFovLimits 30 100"},
		"SetYawPitch":         {call: Call{Method: SetYawPitch, Args: Args{"yaw": 1.5, "pitch": -0.25}}, expected: "SetYawPitch 1.5 -0.25"},
		"SetYawPitchDefault":  {call: Call{Method: SetYawPitch}, expected: "SetYawPitch 0 0"},
		"ResetView":           {call: Call{Method: ResetView}, expected: "ResetView"},
		"Gestures":            {call: Call{Method: SetGestureEnabled, Args: Args{"enabled": false}}, expected: "SetGestureEnabled false"},
		"GesturesDefault":     {call: Call{Method: SetGestureEnabled}, expected: "SetGestureEnabled true"},
		"LoadImage":           {call: Call{Method: LoadImage, Args: Args{"source": "assets/a.jpg"}}, expected: "LoadImage assets/a.jpg"},
		"LoadImageBytes":      {call: Call{Method: LoadImageBytes, Args: Args{"bytes": []byte{1, 2, 3}}}, expected: "LoadImageBytes 3"},
		"LoadImageBase64":     {call: Call{Method: LoadImageBytes, Args: Args{"bytes": "AQID"}}, expected: "LoadImageBytes 3"},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			v := &recordingViewer{}
			if err := Dispatch(v, tt.call); err != nil {
				t.Fatal(err)
			}
			if len(v.calls) != 1 || v.calls[0] != tt.expected {
				t.Errorf("Expected: %q, got: %q", tt.expected, v.calls)
			}
		})
	}
}

func TestDispatch_Errors(t *testing.T) {
	testCases := map[string]struct {
		call Call
		err  error
	}{
		"Unknown":     {call: Call{Method: "setZoom"}, err: ErrUnknownMethod},
		"NotNumber":   {call: Call{Method: SetFov, Args: Args{"fov": "wide"}}, err: ErrInvalidArgument},
		"NaN":         {call: Call{Method: SetYawPitch, Args: Args{"yaw": math.NaN()}}, err: ErrInvalidArgument},
		"NotBool":     {call: Call{Method: SetGestureEnabled, Args: Args{"enabled": 1.0}}, err: ErrInvalidArgument},
		"NoBytes":     {call: Call{Method: LoadImageBytes}, err: ErrInvalidArgument},
		"BadBase64":   {call: Call{Method: LoadImageBytes, Args: Args{"bytes": "%%%"}}, err: ErrInvalidArgument},
		"EmptySource": {call: Call{Method: LoadImage, Args: Args{"source": ""}}, err: ErrInvalidArgument},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			v := &recordingViewer{}
			if err := Dispatch(v, tt.call); !errors.Is(err, tt.err) {
				t.Errorf("Expected error: %v, got: %v", tt.err, err)
			}
			if len(v.calls) != 0 {
				t.Errorf("Invalid call must not reach the viewer, got: %v", v.calls)
			}
		})
	}
}

func TestPositional(t *testing.T) {
	c, err := Positional(SetYawPitch, 0.5, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	expected := Call{Method: SetYawPitch, Args: Args{"yaw": 0.5, "pitch": 0.25}}
	if !reflect.DeepEqual(c, expected) {
		t.Errorf("Expected: %+v, got: %+v", expected, c)
	}
	if _, err := Positional(SetFov, 1.0, 2.0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected error: %v, got: %v", ErrInvalidArgument, err)
	}
	if _, err := Positional("nope"); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("Expected error: %v, got: %v", ErrUnknownMethod, err)
	}
}

func TestDecode(t *testing.T) {
	c, err := Decode([]byte(`{"method":"loadImageBytes","args":{"bytes":"AQID"}}`))
	if err != nil {
		t.Fatal(err)
	}
	v := &recordingViewer{}
	if err := Dispatch(v, c); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v.bytes, []byte{1, 2, 3}) {
		t.Errorf("Expected: [1 2 3], got: %v", v.bytes)
	}

	if _, err := Decode([]byte(`{"method":"explode"}`)); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("Expected error: %v, got: %v", ErrUnknownMethod, err)
	}
	if _, err := Decode([]byte(`{`)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected error: %v, got: %v", ErrInvalidArgument, err)
	}
}

func TestNotification_JSON(t *testing.T) {
	b, err := json.Marshal(NotifyFovChanged(80))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"method":"onFovChanged","args":{"fov":80}}` {
		t.Errorf("Unexpected JSON: %s", b)
	}
}

func TestMethods(t *testing.T) {
	expected := []string{
		LoadImage, LoadImageBytes, ResetView, SetFov, SetFovLimits, SetGestureEnabled, SetYawPitch,
	}
	if m := Methods(); !reflect.DeepEqual(m, expected) {
		t.Errorf("Expected: %v, got: %v", expected, m)
	}
}
