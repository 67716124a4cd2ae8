// Package ofdmsync implements the streaming OFDM frame synchronizer: signal
// detection, coarse and fine carrier-frequency-offset estimation, symbol
// timing acquisition, per-subcarrier channel-gain estimation, pilot-tracked
// residual phase correction, and subcarrier demultiplexing, modeled on the
// 802.11a PLCP preamble with 64 subcarriers and a 16-sample cyclic prefix.
package ofdmsync

// N is the fixed subcarrier count.
const N = 64

// CPLen is the cyclic prefix length in samples.
const CPLen = 16

// SymbolLen is one full OFDM symbol: cyclic prefix + body.
const SymbolLen = CPLen + N

// AutocorrLen is the auto-correlator window length used during PLCP-short
// detection.
const AutocorrLen = 96

// Backoff is the FFT-window sample retreat applied both when capturing the
// PLCP-long halves and when extracting each payload symbol's body, to avoid
// inter-symbol leakage from timing slip.
const Backoff = 2

// SubcarrierKind classifies a single subcarrier index.
type SubcarrierKind int

const (
	Null SubcarrierKind = iota
	Pilot
	Data
)

// PilotIndices are the four pilot subcarrier indices, in ascending order.
var PilotIndices = [4]int{11, 25, 39, 53}

// PilotFreqPositions are the pilots' nominal frequency-axis positions,
// matching PilotIndices element for element; used as the x-coordinates for
// the per-symbol phase-slope fit in demod.go.
var PilotFreqPositions = [4]float64{-21, -7, 7, 21}

// NumDataSubcarriers is the fixed count of DATA subcarriers per symbol.
const NumDataSubcarriers = 48

// Classify returns the SubcarrierKind of subcarrier index i in [0, N).
func Classify(i int) SubcarrierKind {
	if i == 0 || (i >= 27 && i <= 37) {
		return Null
	}
	for _, p := range PilotIndices {
		if i == p {
			return Pilot
		}
	}
	return Data
}

// DataIndices returns the NumDataSubcarriers indices classified Data, in
// ascending order.
func DataIndices() []int {
	indices := make([]int, 0, NumDataSubcarriers)
	for i := 0; i < N; i++ {
		if Classify(i) == Data {
			indices = append(indices, i)
		}
	}
	return indices
}

var dataIndicesCache = DataIndices()
