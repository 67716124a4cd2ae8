package dsp

// PNSequence is a length-8 maximal-length sequence generator (period 255),
// implemented as a Galois LFSR with taps at bits 8,6,5,4 (the standard
// x^8+x^6+x^5+x^4+1 primitive polynomial). Advance returns one output bit
// per call; Reset restores the seed.
type PNSequence struct {
	seed  uint8
	state uint8
}

const pnDefaultSeed uint8 = 0x01

// NewPNSequence creates a PN sequence generator with the default seed.
func NewPNSequence() *PNSequence {
	p := &PNSequence{seed: pnDefaultSeed}
	p.Reset()
	return p
}

// Reset restores the generator to its seed state. The synchronizer calls
// this on every transition into SEEK_SHORT.
func (p *PNSequence) Reset() {
	p.state = p.seed
}

// State returns the generator's current internal state, mainly for tests
// and diagnostics.
func (p *PNSequence) State() uint8 { return p.state }

// Seed returns the generator's seed value.
func (p *PNSequence) Seed() uint8 { return p.seed }

// Advance clocks the LFSR by one bit and returns the output bit (the bit
// shifted out), in {0, 1}. When that bit is 1 the shifted state is XORed
// with the feedback mask 0xB8 (bits 7,5,4,3, 0-indexed), giving the
// primitive polynomial x^8+x^6+x^5+x^4+1 and a full period-255 cycle for any
// nonzero seed.
func (p *PNSequence) Advance() int {
	const taps = 0xB8 // bits 7,5,4,3
	out := p.state & 0x01
	p.state >>= 1
	if out == 1 {
		p.state ^= taps
	}
	return int(out)
}

func parity(x uint8) uint8 {
	var p uint8
	for x != 0 {
		p ^= x & 1
		x >>= 1
	}
	return p
}
