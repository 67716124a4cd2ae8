// Package dsp implements the signal-conditioning primitives the frame
// synchronizer drives: AGC, NCO, correlators, sliding buffers, a fixed-size
// FFT, a maximal-length PN sequence, and polynomial fit/eval. Every type here
// is a collaborator the synchronizer treats opaquely through a small
// interface; none of them know anything about OFDM framing.
package dsp

import (
	"math"
	"math/cmplx"
)

// FFT64 is a length-64 forward transform. Conditional-compilation backend
// selection in the original becomes a construction-time capability here:
// callers plug in whatever FFT64 implementation they like.
type FFT64 interface {
	// Execute computes the unnormalized forward DFT of a 64-element input
	// into dst. src and dst must each have length 64 and may not alias.
	Execute(dst, src []complex64)
}

// RadixFFT64 is the default FFT64 implementation: an iterative radix-2
// Cooley-Tukey transform specialized to N=64.
type RadixFFT64 struct {
	scratch [64]complex128
}

// NewRadixFFT64 constructs the default length-64 FFT backend.
func NewRadixFFT64() *RadixFFT64 {
	return &RadixFFT64{}
}

// Execute implements FFT64.
func (f *RadixFFT64) Execute(dst, src []complex64) {
	if len(src) != 64 || len(dst) != 64 {
		panic("dsp: FFT64.Execute requires length-64 slices")
	}
	for i, v := range src {
		f.scratch[i] = complex(float64(real(v)), float64(imag(v)))
	}
	bitReverse(f.scratch[:])
	fftIterative(f.scratch[:], false)
	for i, v := range f.scratch {
		dst[i] = complex64(v)
	}
}

func fftIterative(x []complex128, inverse bool) {
	n := len(x)
	for size := 2; size <= n; size <<= 1 {
		halfSize := size >> 1
		sign := -1.0
		if inverse {
			sign = 1.0
		}
		wn := cmplx.Exp(complex(0, sign*2*math.Pi/float64(size)))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for j := 0; j < halfSize; j++ {
				u := x[start+j]
				v := w * x[start+j+halfSize]
				x[start+j] = u + v
				x[start+j+halfSize] = u - v
				w *= wn
			}
		}
	}
}

func bitReverse(x []complex128) {
	n := len(x)
	bits := 0
	for tmp := n; tmp > 1; tmp >>= 1 {
		bits++
	}
	for i := 0; i < n; i++ {
		j := reverseBits(i, bits)
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}
}

func reverseBits(x, bits int) int {
	result := 0
	for i := 0; i < bits; i++ {
		result = (result << 1) | (x & 1)
		x >>= 1
	}
	return result
}
