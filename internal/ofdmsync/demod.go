package ofdmsync

import (
	"math"
	"math/cmplx"

	"github.com/jeongseonghan/ofdm64sync/internal/dsp"
)

// demodulateAndDispatch implements section 4.3: FFT the payload symbol
// body, equalize, track the four pilots' phase slope, de-rotate every
// subcarrier, extract the 48 DATA subcarriers, and invoke the consumer
// callback. Returns true if the consumer requested Stop.
func (s *Synchronizer) demodulateAndDispatch() bool {
	var xIn [N]complex64
	copy(xIn[:], s.symbol[CPLen-Backoff:CPLen-Backoff+N])

	var X [N]complex64
	s.fft.Execute(X[:], xIn[:])

	phi := float64(Backoff) * 2 * math.Pi / float64(N)
	for i := 0; i < N; i++ {
		rot := cmplx.Exp(complex(0, float64(i)*phi))
		X[i] = complex64(complex128(X[i]) * complex128(s.g[i]) * rot)
	}

	var yPhase [4]float64
	for k, idx := range PilotIndices {
		yPhase[k] = cmplx.Phase(complex128(X[idx]))
	}
	for i := 1; i < 4; i++ {
		for yPhase[i]-yPhase[i-1] > math.Pi {
			yPhase[i] -= 2 * math.Pi
		}
		for yPhase[i]-yPhase[i-1] < -math.Pi {
			yPhase[i] += 2 * math.Pi
		}
	}

	if s.pn.Advance() == 0 {
		for i := range yPhase {
			yPhase[i] -= math.Pi
		}
	}

	xPhase := PilotFreqPositions[:]
	p := dsp.PolyFit(xPhase, yPhase[:], 1)
	a, b := p[0], p[1]

	for i := 0; i < N; i++ {
		theta := a + b*(float64(i)-32)
		rot := cmplx.Exp(complex(0, -theta))
		X[i] = complex64(complex128(X[i]) * rot)
	}

	count := 0
	for _, i := range dataIndicesCache {
		s.data[count] = X[i]
		count++
	}
	if count != NumDataSubcarriers {
		panic("ofdmsync: data subcarrier count invariant violated")
	}

	s.observer.OnFrameSymbol(s.data)

	result := s.callback(s.data[:], s.userCtx)
	switch result {
	case Reset:
		s.Reset()
		return false
	case Stop:
		return true
	default:
		return false
	}
}
