package gesture

import (
	"math"
	"time"
)

const (
	// Identical magnitudes in a row before a wheel counts as notched.
	notchDetectCount = 4
	initialPeakRate  = 10

	// Zoom factor exponent per normalized wheel step.
	wheelZoomRate = 0.05
	// Largest normalized step applied by a single event.
	maxWheelStep = 1
)

type wheelKind int

const (
	wheelUnknown wheelKind = iota
	wheelNotched
	wheelSmooth
)

// WheelNormalizer maps raw wheel deltas from notched mice and smooth
// trackpads to a comparable scale. Notched wheels yield ±1 per event,
// smooth devices are scaled against their recent peak rate.
type WheelNormalizer struct {
	now func() time.Time

	warm   bool
	events int

	kind     wheelKind
	peakRate float64

	repeat    int
	lastMagn  float64
	lastEvent time.Time
	pending   float64
}

// Normalize returns the normalized delta and whether enough events were
// seen to classify the device.
func (n *WheelNormalizer) Normalize(d float64) (float64, bool) {
	if n.events > notchDetectCount {
		n.warm = true
	} else {
		n.events++
	}

	magn := math.Abs(d)
	if magn == 0 {
		return 0, n.warm
	}
	n.classify(magn)
	n.trackRate(d)

	if n.kind == wheelNotched {
		if d < 0 {
			return -1, n.warm
		}
		return 1, n.warm
	}
	return d * 250 / n.peakRate, n.warm
}

// Scale converts a vertical wheel delta into a pinch scale factor.
// Scrolling up (negative delta) zooms in. One event zooms by at most one
// notch, also while the device is not classified yet.
func (n *WheelNormalizer) Scale(deltaY float64) float64 {
	d, _ := n.Normalize(deltaY)
	d = math.Max(-maxWheelStep, math.Min(maxWheelStep, d))
	return math.Exp(-d * wheelZoomRate)
}

func (n *WheelNormalizer) classify(magn float64) {
	if n.lastMagn == magn {
		n.repeat++
	} else {
		n.repeat = 0
	}
	n.lastMagn = magn

	prev := n.kind
	if n.repeat > notchDetectCount {
		n.kind = wheelNotched
	} else {
		n.kind = wheelSmooth
	}
	if n.kind != prev {
		n.peakRate = initialPeakRate
	}
}

func (n *WheelNormalizer) trackRate(d float64) {
	now := n.clock()
	dt := now.Sub(n.lastEvent).Seconds()
	n.pending += d
	if dt > 0 {
		if dt > 0.1 {
			dt = 0.1
		}
		rate := math.Abs(n.pending / dt)
		n.pending = 0
		n.lastEvent = now

		if n.peakRate < rate {
			// Low-pass to suppress spikes.
			n.peakRate = n.peakRate*0.5 + rate*0.5
		}
		n.peakRate *= 0.95
	}
	if n.peakRate < 1 {
		n.peakRate = 1
	}
}

func (n *WheelNormalizer) clock() time.Time {
	if n.now != nil {
		return n.now()
	}
	return time.Now()
}
