package dsp

import "math/cmplx"

// NCO is a numerically controlled oscillator: a rotating complex phasor used
// to mix a sample stream by a frequency correction. Phase advances by the
// current frequency on every MixUp call.
type NCO struct {
	freq  float64 // radians/sample
	phase float64 // radians
}

// NewNCO creates an NCO at zero frequency and phase.
func NewNCO() *NCO {
	return &NCO{}
}

// Reset zeros both frequency and phase.
func (n *NCO) Reset() {
	n.freq = 0
	n.phase = 0
}

// SetFrequency sets the oscillator frequency directly.
func (n *NCO) SetFrequency(f float64) {
	n.freq = f
}

// SetPhase sets the oscillator phase directly.
func (n *NCO) SetPhase(p float64) {
	n.phase = p
}

// AdjustFrequency adds df to the current frequency.
func (n *NCO) AdjustFrequency(df float64) {
	n.freq += df
}

// Frequency returns the current oscillator frequency.
func (n *NCO) Frequency() float64 {
	return n.freq
}

// Phase returns the current oscillator phase.
func (n *NCO) Phase() float64 {
	return n.phase
}

// MixUp multiplies x by exp(j*phase) and advances the phase by freq. The
// synchronizer's per-sample pipeline uses this to remove the accumulated
// coarse+fine CFO estimate: its estimators produce the negated offset
// (nu_hat0 = -arg(rxx)/16), so an NCO running at that frequency cancels a
// channel rotation of the opposite sign.
func (n *NCO) MixUp(x complex64) complex64 {
	rot := cmplx.Exp(complex(0, n.phase))
	y := complex128(x) * rot
	n.phase += n.freq
	return complex64(y)
}
