package ofdmsync

// Observer is an optional debug/telemetry collaborator. The synchronizer
// notifies it at fixed points but never depends on it for correctness — the
// zero value of the core is a NullObserver, so construction without an
// observer costs nothing (Design Notes: "global debug buffers and file
// emission" becomes this capability instead of compiled-in state).
type Observer interface {
	// OnSample is called with each post-gain, post-NCO sample, in every
	// state.
	OnSample(x complex64)
	// OnAutocorr is called with the auto-correlator's output whenever it is
	// evaluated during SEEK_SHORT.
	OnAutocorr(rxx complex64)
	// OnCrosscorr is called with the cross-correlator's output whenever it
	// is evaluated during SEEK_LONG0/SEEK_LONG1.
	OnCrosscorr(rxy complex64)
	// OnFrameSymbol is called with the 48 data subcarriers of a
	// successfully demodulated payload symbol, immediately before the
	// consumer callback runs.
	OnFrameSymbol(data [NumDataSubcarriers]complex64)
	// OnFinalize is called once, from Destroy.
	OnFinalize()
}

// NullObserver implements Observer with no-op methods. It is the default
// the synchronizer constructs with when the caller supplies none.
type NullObserver struct{}

func (NullObserver) OnSample(complex64)                          {}
func (NullObserver) OnAutocorr(complex64)                        {}
func (NullObserver) OnCrosscorr(complex64)                       {}
func (NullObserver) OnFrameSymbol([NumDataSubcarriers]complex64) {}
func (NullObserver) OnFinalize()                                 {}
