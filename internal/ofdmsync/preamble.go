package ofdmsync

import (
	"math"

	"github.com/jeongseonghan/ofdm64sync/internal/dsp"
)

// LfRef is the frequency-domain PLCP long training sequence: BPSK (+-1) on
// every non-NULL subcarrier, zero on NULL subcarriers. LtRef is its
// time-domain image. Both are fixed for the lifetime of the process and
// must be bit-identical to whatever generated the transmitted preamble —
// here, both sides of that contract live in the same package, generated
// once from a deterministic PN sequence so the pair is self-consistent by
// construction.
var (
	LfRef [N]complex64
	LtRef [N]complex64
)

func init() {
	pn := dsp.NewPNSequence()
	for i := 0; i < N; i++ {
		if Classify(i) == Null {
			continue
		}
		if pn.Advance() == 1 {
			LfRef[i] = complex(1, 0)
		} else {
			LfRef[i] = complex(-1, 0)
		}
	}
	LtRef = inverseDFT(LfRef)
}

// inverseDFT computes the direct (not FFT-accelerated) unnormalized-forward
// -compatible inverse transform used only to build the fixed preamble
// constants at init time; the per-sample hot path never calls this.
func inverseDFT(freq [N]complex64) [N]complex64 {
	var out [N]complex64
	for n := 0; n < N; n++ {
		var sum complex128
		for k := 0; k < N; k++ {
			angle := 2 * math.Pi * float64(k) * float64(n) / float64(N)
			rot := complex(math.Cos(angle), math.Sin(angle))
			sum += complex128(freq[k]) * rot
		}
		out[n] = complex64(sum / complex(float64(N), 0))
	}
	return out
}
