package dsp

import "math/cmplx"

// AGC is a streaming automatic gain control. It tracks the input envelope
// with a single-pole IIR filter and produces a unit-average-level output on
// every call to Execute, one sample at a time.
type AGC struct {
	bandwidth float64 // filter pole; larger tracks faster
	level     float64 // tracked signal envelope
	gain      float64 // current multiplicative gain
	locked    bool
}

// NewAGC creates an AGC with the given loop bandwidth (0,1).
func NewAGC(bandwidth float64) *AGC {
	return &AGC{
		bandwidth: bandwidth,
		level:     1,
		gain:      1,
	}
}

// Reset restores the AGC to its initial unlocked state.
func (a *AGC) Reset() {
	a.level = 1
	a.gain = 1
	a.locked = false
}

// Execute scales x by the current gain and updates the tracked envelope.
func (a *AGC) Execute(x complex64) complex64 {
	if !a.locked {
		mag := cmplx.Abs(complex128(x))
		a.level = (1-a.bandwidth)*a.level + a.bandwidth*mag
		if a.level > 1e-12 {
			a.gain = 1.0 / a.level
		}
	}
	return complex64(complex128(x) * complex(a.gain, 0))
}

// Gain returns the current multiplicative gain.
func (a *AGC) Gain() float64 {
	return a.gain
}

// SetBandwidth adjusts the loop bandwidth at or after construction.
func (a *AGC) SetBandwidth(bandwidth float64) {
	a.bandwidth = bandwidth
}

// Lock freezes the gain at its current value; Execute no longer updates it
// until Reset or Unlock. The synchronizer uses this at the SEEK_SHORT to
// SEEK_LONG0 transition to sample the AGC's gain into the coarse gain g.
func (a *AGC) Lock() {
	a.locked = true
}

// Unlock resumes envelope tracking.
func (a *AGC) Unlock() {
	a.locked = false
}

// ClipToMagnitude clips x to the given magnitude while preserving its angle,
// a free function rather than a method since the synchronizer applies it to
// the AGC's output, not to the AGC's internal state.
func ClipToMagnitude(x complex64, maxMag float64) complex64 {
	mag := cmplx.Abs(complex128(x))
	if mag <= maxMag || mag == 0 {
		return x
	}
	scale := maxMag / mag
	return complex64(complex128(x) * complex(scale, 0))
}
