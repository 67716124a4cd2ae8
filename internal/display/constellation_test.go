package display

import (
	"math"
	"testing"
)

func TestModulation_String(t *testing.T) {
	cases := map[Modulation]string{
		ModBPSK:    "BPSK",
		ModQPSK:    "QPSK",
		Mod16QAM:   "16-QAM",
		Modulation(99): "unknown",
	}
	for mod, want := range cases {
		if got := mod.String(); got != want {
			t.Errorf("Modulation(%d).String() = %q, want %q", mod, got, want)
		}
	}
}

func TestModulation_BitsPerSymbol(t *testing.T) {
	if got := ModQPSK.BitsPerSymbol(); got != 2 {
		t.Errorf("QPSK.BitsPerSymbol() = %d, want 2", got)
	}
	if got := Mod16QAM.BitsPerSymbol(); got != 4 {
		t.Errorf("16QAM.BitsPerSymbol() = %d, want 4", got)
	}
}

func TestNewConstellation_UnitAveragePower(t *testing.T) {
	for _, mod := range []Modulation{ModBPSK, ModQPSK, Mod16QAM} {
		c := NewConstellation(mod)
		var avg float64
		for _, p := range c.Points() {
			avg += real(p)*real(p) + imag(p)*imag(p)
		}
		avg /= float64(len(c.Points()))
		if math.Abs(avg-1) > 1e-9 {
			t.Errorf("%v: average power = %v, want 1", mod, avg)
		}
	}
}

func TestNewConstellation_PointCounts(t *testing.T) {
	if n := len(NewConstellation(ModBPSK).Points()); n != 2 {
		t.Errorf("BPSK point count = %d, want 2", n)
	}
	if n := len(NewConstellation(ModQPSK).Points()); n != 4 {
		t.Errorf("QPSK point count = %d, want 4", n)
	}
	if n := len(NewConstellation(Mod16QAM).Points()); n != 16 {
		t.Errorf("16-QAM point count = %d, want 16", n)
	}
}

func TestConstellation_Nearest_ExactHit(t *testing.T) {
	c := NewConstellation(ModQPSK)
	for i, p := range c.Points() {
		idx, evm := c.Nearest(p)
		if idx != i {
			t.Errorf("Nearest(point %d) = %d, want %d", i, idx, i)
		}
		if evm > 1e-9 {
			t.Errorf("Nearest(point %d) evm = %v, want ~0", i, evm)
		}
	}
}

func TestConstellation_Nearest_BPSKSign(t *testing.T) {
	c := NewConstellation(ModBPSK)
	idxPos, _ := c.Nearest(complex(0.8, 0.1))
	idxNeg, _ := c.Nearest(complex(-0.9, -0.05))
	if idxPos == idxNeg {
		t.Fatalf("positive- and negative-leaning symbols classified to the same point")
	}
	if real(c.Points()[idxPos]) <= 0 {
		t.Errorf("point nearest a positive-real symbol has non-positive real part: %v", c.Points()[idxPos])
	}
	if real(c.Points()[idxNeg]) >= 0 {
		t.Errorf("point nearest a negative-real symbol has non-negative real part: %v", c.Points()[idxNeg])
	}
}

func TestMeanEVM_ZeroForExactPoints(t *testing.T) {
	c := NewConstellation(ModQPSK)
	symbols := make([]complex64, 0, len(c.Points()))
	for _, p := range c.Points() {
		symbols = append(symbols, complex64(p))
	}
	if evm := MeanEVM(c, symbols); evm > 1e-6 {
		t.Errorf("MeanEVM on exact reference points = %v, want ~0", evm)
	}
}

func TestMeanEVM_EmptyInput(t *testing.T) {
	c := NewConstellation(ModBPSK)
	if evm := MeanEVM(c, nil); evm != 0 {
		t.Errorf("MeanEVM(nil) = %v, want 0", evm)
	}
}

func TestMeanEVM_PositiveForOffsetSymbols(t *testing.T) {
	c := NewConstellation(ModBPSK)
	ref := c.Points()[0]
	offset := complex64(ref) + complex(0.2, 0)
	if evm := MeanEVM(c, []complex64{offset}); evm < 0.15 || evm > 0.25 {
		t.Errorf("MeanEVM for a 0.2-offset symbol = %v, want close to 0.2", evm)
	}
}
