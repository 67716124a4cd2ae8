package dsp

import "testing"

func TestPNSequence_FullPeriod255(t *testing.T) {
	p := NewPNSequence()
	seen := make(map[uint8]bool)
	state := p.seed
	seen[state] = true
	for i := 0; i < 255; i++ {
		p.Advance()
	}
	if p.state != state {
		t.Errorf("after 255 Advance calls, state = %#x, want seed %#x (period 255)", p.state, state)
	}
}

func TestPNSequence_NeverRepeatsWithinOnePeriod(t *testing.T) {
	p := NewPNSequence()
	seen := make(map[uint8]bool)
	for i := 0; i < 255; i++ {
		if seen[p.state] {
			t.Fatalf("state %#x repeated before completing a full period, at step %d", p.state, i)
		}
		seen[p.state] = true
		p.Advance()
	}
}

func TestPNSequence_Reset(t *testing.T) {
	p := NewPNSequence()
	for i := 0; i < 37; i++ {
		p.Advance()
	}
	p.Reset()
	if p.state != p.seed {
		t.Errorf("state after Reset = %#x, want seed %#x", p.state, p.seed)
	}
}

func TestPNSequence_OutputIsBit(t *testing.T) {
	p := NewPNSequence()
	for i := 0; i < 300; i++ {
		if b := p.Advance(); b != 0 && b != 1 {
			t.Fatalf("Advance() = %d, want 0 or 1", b)
		}
	}
}
