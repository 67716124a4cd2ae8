package dsp

// AutoCorrelator computes a delay-D correlation over a sliding window of
// length L: rxx = sum_{k=0}^{L-1} x[n-k] * conj(x[n-k-D]). It needs D+L
// samples of history, kept in an internal ring so Push is O(1); Execute
// recomputes the sum over the whole window on every call, O(L).
type AutoCorrelator struct {
	delay  int
	window int
	hist   []complex64 // ring buffer of delay+window most recent samples
	pos    int
	filled int
	sum    complex128 // only cleared by Reset; Execute does not use it
}

// NewAutoCorrelator creates an auto-correlator of the given delay and window.
func NewAutoCorrelator(delay, window int) *AutoCorrelator {
	return &AutoCorrelator{
		delay:  delay,
		window: window,
		hist:   make([]complex64, delay+window),
	}
}

// Reset clears all history.
func (a *AutoCorrelator) Reset() {
	for i := range a.hist {
		a.hist[i] = 0
	}
	a.pos = 0
	a.filled = 0
	a.sum = 0
}

// Push admits one new sample into the correlator's history.
func (a *AutoCorrelator) Push(x complex64) {
	a.hist[a.pos] = x
	a.pos = (a.pos + 1) % len(a.hist)
	if a.filled < len(a.hist) {
		a.filled++
	}
}

// Execute returns the current delay-D, window-L correlation over the most
// recently pushed samples. Samples not yet pushed are treated as zero, so
// Execute is safe to call before the history has filled.
func (a *AutoCorrelator) Execute() complex64 {
	var sum complex128
	n := len(a.hist)
	for k := 0; k < a.window; k++ {
		idxA := (a.pos - 1 - k + 10*n) % n
		idxB := (a.pos - 1 - k - a.delay + 10*n) % n
		xa := complex128(a.hist[idxA])
		xb := complex128(a.hist[idxB])
		sum += xa * complexConj(xb)
	}
	return complex64(sum)
}

// CrossCorrelator computes a dot product against a fixed reference sequence:
// rxy = sum_k v[k] * h[k]. The reference is supplied already conjugated (the
// synchronizer stores conj(Lt_ref) and passes it here unchanged) so the
// correlator itself does no conjugation.
type CrossCorrelator struct {
	ref []complex64
}

// NewCrossCorrelator creates a cross-correlator against the given reference.
// The reference slice is copied; callers may mutate their own copy freely.
func NewCrossCorrelator(ref []complex64) *CrossCorrelator {
	cp := make([]complex64, len(ref))
	copy(cp, ref)
	return &CrossCorrelator{ref: cp}
}

// Execute computes the dot product of v against the stored reference. len(v)
// must equal the reference length.
func (c *CrossCorrelator) Execute(v []complex64) complex64 {
	if len(v) != len(c.ref) {
		panic("dsp: CrossCorrelator.Execute length mismatch")
	}
	var sum complex128
	for k, h := range c.ref {
		sum += complex128(v[k]) * complex128(h)
	}
	return complex64(sum)
}

func complexConj(x complex128) complex128 {
	return complex(real(x), -imag(x))
}
