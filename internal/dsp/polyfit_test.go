package dsp

import (
	"math"
	"testing"
)

func TestPolyFit_ExactLinearFit(t *testing.T) {
	x := []float64{-21, -7, 7, 21}
	y := make([]float64, len(x))
	wantA, wantB := 0.3, 0.02
	for i, xi := range x {
		y[i] = wantA + wantB*xi
	}

	p := PolyFit(x, y, 1)
	if math.Abs(p[0]-wantA) > 1e-9 || math.Abs(p[1]-wantB) > 1e-9 {
		t.Errorf("PolyFit = %v, want [%v %v]", p, wantA, wantB)
	}
}

func TestPolyFit_ConstantFit(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{5, 5, 5, 5}
	p := PolyFit(x, y, 0)
	if math.Abs(p[0]-5) > 1e-9 {
		t.Errorf("PolyFit constant = %v, want [5]", p)
	}
}

func TestPolyVal_FitResidualIsSmall(t *testing.T) {
	x := []float64{-21, -7, 7, 21}
	y := []float64{1.0, 1.5, 2.5, 3.0}
	p := PolyFit(x, y, 1)
	for i, xi := range x {
		got := PolyVal(p, xi)
		if math.Abs(got-y[i]) > 0.5 {
			t.Errorf("PolyVal(p, %v) = %v, want near %v", xi, got, y[i])
		}
	}
}

func TestPolyFit_PanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("PolyFit with mismatched lengths did not panic")
		}
	}()
	PolyFit([]float64{1, 2}, []float64{1}, 1)
}
