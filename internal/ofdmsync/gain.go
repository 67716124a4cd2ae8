package ofdmsync

import (
	"math"
	"math/cmplx"
)

// estimateGain implements section 4.2: given the two FFTs of the captured
// PLCP-long halves, produce the per-subcarrier equalizer gain G, along with
// the two per-half gains G0/G1 it was averaged from.
func estimateGain(lf0, lf1 [N]complex64) (g0, g1, g [N]complex64) {
	phi := float64(Backoff) * 2 * math.Pi / float64(N)

	for i := 0; i < N; i++ {
		if Classify(i) == Null {
			continue
		}

		rot := cmplx.Exp(complex(0, float64(i)*phi))
		ref := complexConj(complex128(LfRef[i]))

		raw0 := complex128(lf0[i]) * rot * ref
		raw1 := complex128(lf1[i]) * rot * ref
		g0c := 1 / raw0
		g1c := 1 / raw1

		mag0, ang0 := cmplx.Abs(g0c), liftAngle(cmplx.Phase(g0c))
		mag1, ang1 := cmplx.Abs(g1c), liftAngle(cmplx.Phase(g1c))

		g0[i] = complex64(g0c)
		g1[i] = complex64(g1c)
		mag := 0.5 * (mag0 + mag1)
		ang := 0.5 * (ang0 + ang1)
		g[i] = complex64(cmplx.Rect(mag, ang))
	}
	return g0, g1, g
}

// liftAngle maps an angle in (-pi, pi] into [0, 2*pi).
func liftAngle(a float64) float64 {
	if a < 0 {
		return a + 2*math.Pi
	}
	return a
}

func complexConj(x complex128) complex128 {
	return complex(real(x), -imag(x))
}

// EstimateGainFlat is the alternative, flat-gain contract documented but
// unused on the live path (section 9, open questions): rather than a
// per-subcarrier complex gain, it returns a single scalar magnitude/angle
// pair averaged across every non-NULL subcarrier of one captured PLCP-long
// half. Synchronizer never calls this; it is exported so a caller that
// wants the coarser, single-tap equalizer can build one directly.
func EstimateGainFlat(lf [N]complex64) complex64 {
	phi := float64(Backoff) * 2 * math.Pi / float64(N)
	var sum complex128
	count := 0
	for i := 0; i < N; i++ {
		if Classify(i) == Null {
			continue
		}
		rot := cmplx.Exp(complex(0, float64(i)*phi))
		ref := complexConj(complex128(LfRef[i]))
		sum += 1 / (complex128(lf[i]) * rot * ref)
		count++
	}
	if count == 0 {
		return 0
	}
	return complex64(sum / complex(float64(count), 0))
}
