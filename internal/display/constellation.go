// Package display renders demodulated data subcarriers against a reference
// constellation, for the debug CLI and the browser-side plot the
// debugobserver package feeds. It has no opinion on framing or FEC — it
// only classifies points against a fixed grid.
package display

import "math"

// Modulation is a QAM constellation order, kept from the teacher's
// modem.Modulation so the CLI can show a BPSK/QPSK/16-QAM overlay under the
// raw data-subcarrier scatter without committing the synchronizer itself to
// any one payload modulation.
type Modulation int

const (
	ModBPSK  Modulation = 1
	ModQPSK  Modulation = 2
	Mod16QAM Modulation = 4
)

// BitsPerSymbol returns the number of bits per constellation point.
func (m Modulation) BitsPerSymbol() int { return int(m) }

// String names the modulation.
func (m Modulation) String() string {
	switch m {
	case ModBPSK:
		return "BPSK"
	case ModQPSK:
		return "QPSK"
	case Mod16QAM:
		return "16-QAM"
	default:
		return "unknown"
	}
}

// Constellation holds a unit-average-power reference grid for one
// modulation, used to classify demodulated subcarriers for display.
type Constellation struct {
	Mod    Modulation
	points []complex128
}

// NewConstellation builds the reference grid for mod.
func NewConstellation(mod Modulation) *Constellation {
	c := &Constellation{Mod: mod}
	switch mod {
	case ModBPSK:
		c.points = []complex128{complex(1, 0), complex(-1, 0)}
	case Mod16QAM:
		c.points = generateSquareQAM(4)
	default:
		c.points = []complex128{
			complex(1, 1),
			complex(-1, 1),
			complex(-1, -1),
			complex(1, -1),
		}
	}
	c.normalize()
	return c
}

func generateSquareQAM(order int) []complex128 {
	points := make([]complex128, order*order)
	for i := range points {
		row, col := i/order, i%order
		grayRow := row ^ (row >> 1)
		grayCol := col ^ (col >> 1)
		x := float64(2*grayCol - order + 1)
		y := float64(2*grayRow - order + 1)
		points[i] = complex(x, y)
	}
	return points
}

func (c *Constellation) normalize() {
	var avgPower float64
	for _, p := range c.points {
		avgPower += real(p)*real(p) + imag(p)*imag(p)
	}
	avgPower /= float64(len(c.points))
	scale := 1 / math.Sqrt(avgPower)
	for i := range c.points {
		c.points[i] = complex(real(c.points[i])*scale, imag(c.points[i])*scale)
	}
}

// Nearest returns the index of the reference point closest to symbol and
// the Euclidean error vector magnitude to it, for a scatter-plot overlay or
// an EVM readout.
func (c *Constellation) Nearest(symbol complex128) (idx int, evm float64) {
	minDist := math.MaxFloat64
	for i, p := range c.points {
		d := real(symbol-p)*real(symbol-p) + imag(symbol-p)*imag(symbol-p)
		if d < minDist {
			minDist = d
			idx = i
		}
	}
	return idx, math.Sqrt(minDist)
}

// Points returns the reference constellation, for plotting.
func (c *Constellation) Points() []complex128 {
	return c.points
}

// MeanEVM computes the RMS error-vector-magnitude of a batch of demodulated
// subcarriers against the reference grid, a standard link-quality figure
// for a live display.
func MeanEVM(c *Constellation, symbols []complex64) float64 {
	if len(symbols) == 0 {
		return 0
	}
	var sumSq float64
	for _, s := range symbols {
		_, evm := c.Nearest(complex128(s))
		sumSq += evm * evm
	}
	return math.Sqrt(sumSq / float64(len(symbols)))
}
