package ofdmsync

import (
	"math/cmplx"

	"github.com/jeongseonghan/ofdm64sync/internal/dsp"
)

// State is one of the four synchronizer states.
type State int

const (
	SeekShort State = iota
	SeekLong0
	SeekLong1
	RxPayload
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case SeekShort:
		return "SEEK_SHORT"
	case SeekLong0:
		return "SEEK_LONG0"
	case SeekLong1:
		return "SEEK_LONG1"
	case RxPayload:
		return "RX_PAYLOAD"
	default:
		return "UNKNOWN"
	}
}

// Detection thresholds, named from section 4.1.
const (
	autocorrThreshold   = 0.75 * AutocorrLen // 72
	crosscorrThreshold  = float64(N) * 0.75  // 48
	seekLong0Watchdog   = 320
)

// Synchronizer is the streaming frame synchronizer: it owns every estimator
// and buffer for the lifetime of a receiver session and drives them one
// sample at a time from Execute.
type Synchronizer struct {
	// estimators
	agc       *dsp.AGC
	nco       *dsp.NCO
	autocorr  *dsp.AutoCorrelator
	crosscorr *dsp.CrossCorrelator
	fft       dsp.FFT64
	pn        *dsp.PNSequence

	// sliding buffers
	rxyBuf *dsp.SlidingBuffer
	ltBuf  *dsp.SlidingBuffer

	// acquired sequences
	lt0, lt1 [N]complex64
	lf0, lf1 [N]complex64
	g0, g1, g [N]complex64

	// coarse gain and CFO estimates
	coarseGain float64
	nuHat0     float64
	nuHat1     float64

	// symbol staging
	symbol [SymbolLen]complex64
	data   [NumDataSubcarriers]complex64
	timer  int

	state State

	callback Callback
	userCtx  any
	observer Observer

	stopped bool
}

// Option configures a Synchronizer at construction time.
type Option func(*Synchronizer)

// WithObserver attaches a debug/telemetry observer. The default is
// NullObserver.
func WithObserver(o Observer) Option {
	return func(s *Synchronizer) { s.observer = o }
}

// WithFFT64 overrides the FFT backend. The default is dsp.NewRadixFFT64().
func WithFFT64(fft dsp.FFT64) Option {
	return func(s *Synchronizer) { s.fft = fft }
}

// New allocates and initializes a synchronizer in SEEK_SHORT.
func New(callback Callback, userCtx any, opts ...Option) *Synchronizer {
	ref := make([]complex64, N)
	for i := range ref {
		ref[i] = complex64(complexConj(complex128(LtRef[i])))
	}

	s := &Synchronizer{
		agc:       dsp.NewAGC(0.25),
		nco:       dsp.NewNCO(),
		autocorr:  dsp.NewAutoCorrelator(CPLen, AutocorrLen),
		crosscorr: dsp.NewCrossCorrelator(ref),
		fft:       dsp.NewRadixFFT64(),
		pn:        dsp.NewPNSequence(),
		rxyBuf:    dsp.NewSlidingBuffer(N),
		ltBuf:     dsp.NewSlidingBuffer(2*N + 32),
		callback:  callback,
		userCtx:   userCtx,
		observer:  NullObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset restores the initial SEEK_SHORT state without deallocating
// anything. Idempotent.
func (s *Synchronizer) Reset() {
	s.agc.Reset()
	s.nco.Reset()
	s.autocorr.Reset()
	s.pn.Reset()
	s.rxyBuf.Reset()
	s.ltBuf.Reset()

	s.lt0, s.lt1 = [N]complex64{}, [N]complex64{}
	s.lf0, s.lf1 = [N]complex64{}, [N]complex64{}
	s.g0, s.g1, s.g = [N]complex64{}, [N]complex64{}, [N]complex64{}

	s.coarseGain = 1
	s.nuHat0 = 0
	s.nuHat1 = 0

	s.symbol = [SymbolLen]complex64{}
	s.data = [NumDataSubcarriers]complex64{}
	s.timer = 0

	s.state = SeekShort
	s.stopped = false
}

// Destroy releases all resources. The Synchronizer must not be used
// afterward.
func (s *Synchronizer) Destroy() {
	s.observer.OnFinalize()
}

// State returns the synchronizer's current state, mainly for tests and
// diagnostics.
func (s *Synchronizer) State() State { return s.state }

// Timer returns the current in-state sample counter.
func (s *Synchronizer) Timer() int { return s.timer }

// NCOFrequency returns the synchronizer's accumulated CFO estimate
// (nu_hat0 + nu_hat1 once RX_PAYLOAD is reached).
func (s *Synchronizer) NCOFrequency() float64 { return s.nco.Frequency() }

// Execute pushes a batch of complex baseband samples through the
// synchronizer, processing each in order. It never blocks and never mutates
// samples. It does allocate: a scratch copy of the PLCP-long buffer when
// acquisition completes, and dsp.PolyFit's working slices for every payload
// symbol's pilot-phase fit. The consumer callback may run synchronously,
// possibly multiple times, from within this call. Execute returns true if
// the consumer requested Stop — the core does not call Destroy itself
// (Design Notes); the caller decides whether and when to do that.
func (s *Synchronizer) Execute(samples []complex64) bool {
	if s.stopped {
		return true
	}
	for _, raw := range samples {
		x := complex64(complex128(raw) * complex(s.coarseGain, 0))
		x = s.nco.MixUp(x)
		s.observer.OnSample(x)

		switch s.state {
		case SeekShort:
			s.stepSeekShort(x)
		case SeekLong0:
			s.stepSeekLong0(x)
		case SeekLong1:
			s.stepSeekLong1(x)
		case RxPayload:
			if stop := s.stepRxPayload(x); stop {
				s.stopped = true
				return true
			}
		}
	}
	return false
}

func (s *Synchronizer) stepSeekShort(x complex64) {
	y := s.agc.Execute(x)
	y = dsp.ClipToMagnitude(y, 2)
	s.autocorr.Push(y)
	rxx := s.autocorr.Execute()
	s.observer.OnAutocorr(rxx)

	if cmplx.Abs(complex128(rxx)) > autocorrThreshold {
		s.nuHat0 = -cmplx.Phase(complex128(rxx)) / float64(CPLen)
		s.nco.SetFrequency(s.nuHat0)
		s.coarseGain = s.agc.Gain()
		s.agc.Lock()
		s.timer = 0
		s.state = SeekLong0
	}
}

func (s *Synchronizer) stepSeekLong0(x complex64) {
	s.rxyBuf.Push(x)
	s.ltBuf.Push(x)

	rxy := s.crosscorr.Execute(s.rxyBuf.Read())
	s.observer.OnCrosscorr(rxy)
	s.timer++

	if cmplx.Abs(complex128(rxy)) > crosscorrThreshold {
		s.timer = 0
		s.state = SeekLong1
		return
	}
	if s.timer > seekLong0Watchdog {
		s.Reset()
	}
}

func (s *Synchronizer) stepSeekLong1(x complex64) {
	s.rxyBuf.Push(x)
	s.ltBuf.Push(x)
	s.timer++

	if s.timer < N {
		return
	}

	rxy := s.crosscorr.Execute(s.rxyBuf.Read())
	s.observer.OnCrosscorr(rxy)
	if cmplx.Abs(complex128(rxy)) <= crosscorrThreshold {
		s.Reset()
		return
	}

	s.acquirePlcpLong()
	s.timer = 0
	s.state = RxPayload
}

// acquirePlcpLong implements section 4.1's SEEK_LONG1-to-RX_PAYLOAD steps
// 3-11: fine CFO estimation, phase correction of the two captured halves,
// and gain estimation.
func (s *Synchronizer) acquirePlcpLong() {
	r := make([]complex64, s.ltBuf.Len())
	copy(r, s.ltBuf.Read())

	var rPrime complex128
	for j := 0; j < 96; j++ {
		rPrime += complex128(r[j]) * complexConj(complex128(r[j+N]))
	}
	s.nuHat1 = cmplx.Phase(rPrime) / float64(N)
	s.nco.AdjustFrequency(s.nuHat1)

	for k := range r {
		rot := cmplx.Exp(complex(0, float64(k)*s.nuHat1))
		r[k] = complex64(complex128(r[k]) * rot)
	}

	rxy0 := s.crosscorr.Execute(r[32:96])
	rxy1 := s.crosscorr.Execute(r[96:160])

	copy(s.lt0[:], r[32-Backoff:32-Backoff+N])
	copy(s.lt1[:], r[96-Backoff:96-Backoff+N])

	corr0 := cmplx.Exp(complex(0, cmplx.Phase(complex128(rxy0))))
	corr1 := cmplx.Exp(complex(0, cmplx.Phase(complex128(rxy1))))
	for i := 0; i < N; i++ {
		s.lt0[i] = complex64(complex128(s.lt0[i]) * corr0)
		s.lt1[i] = complex64(complex128(s.lt1[i]) * corr1)
	}

	s.fft.Execute(s.lf0[:], s.lt0[:])
	s.fft.Execute(s.lf1[:], s.lt1[:])
	s.g0, s.g1, s.g = estimateGain(s.lf0, s.lf1)
}

func (s *Synchronizer) stepRxPayload(x complex64) bool {
	s.symbol[s.timer] = x
	s.timer++
	if s.timer < SymbolLen {
		return false
	}
	s.timer = 0
	return s.demodulateAndDispatch()
}
