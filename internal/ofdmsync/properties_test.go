package ofdmsync

import (
	"testing"

	"pgregory.net/rapid"
)

func randComplexSlice(t *rapid.T, label string, maxLen int) []complex64 {
	n := rapid.IntRange(0, maxLen).Draw(t, label+"_len")
	out := make([]complex64, n)
	for i := range out {
		re := rapid.Float64Range(-3, 3).Draw(t, label+"_re")
		im := rapid.Float64Range(-3, 3).Draw(t, label+"_im")
		out[i] = complex64(complex(re, im))
	}
	return out
}

// Property 1: Execute never mutates its input slice.
func TestProperty_ExecuteDoesNotMutateInput(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		samples := randComplexSlice(t, "samples", 400)
		original := append([]complex64{}, samples...)

		s := New(func([]complex64, any) Result { return Continue }, nil)
		s.Execute(samples)

		if len(samples) != len(original) {
			t.Fatalf("length changed: %d -> %d", len(original), len(samples))
		}
		for i := range samples {
			if samples[i] != original[i] {
				t.Fatalf("Execute mutated samples[%d]: %v -> %v", i, original[i], samples[i])
			}
		}
	})
}

// Property 2: Reset restores every piece of state the spec names.
func TestProperty_ResetRestoresInitialState(t *testing.T) {
	s := New(func([]complex64, any) Result { return Continue }, nil)

	frame := idealFrame(preambleAmplitude, 2)
	s.Execute(frame)
	if s.State() == SeekShort && s.Timer() == 0 {
		t.Fatalf("setup did not advance the synchronizer out of its initial state")
	}

	s.Reset()

	if got := s.nco.Frequency(); got != 0 {
		t.Errorf("NCO frequency after Reset = %v, want 0", got)
	}
	if got := s.nco.Phase(); got != 0 {
		t.Errorf("NCO phase after Reset = %v, want 0", got)
	}
	if got := s.coarseGain; got != 1 {
		t.Errorf("coarse gain after Reset = %v, want 1", got)
	}
	if s.timer != 0 {
		t.Errorf("timer after Reset = %d, want 0", s.timer)
	}
	if s.state != SeekShort {
		t.Errorf("state after Reset = %v, want SEEK_SHORT", s.state)
	}
	if s.pn.State() != s.pn.Seed() {
		t.Errorf("PN state after Reset = %#x, want seed %#x", s.pn.State(), s.pn.Seed())
	}
}

// Property 3: the callback fires exactly once per 80-sample window consumed
// while in RX_PAYLOAD, for any number of trailing payload symbols.
func TestProperty_CallbackCountMatchesPayloadWindows(t *testing.T) {
	for _, numSymbols := range []int{0, 1, 2, 5} {
		numSymbols := numSymbols
		t.Run("", func(t *testing.T) {
			count := 0
			s := New(func([]complex64, any) Result { count++; return Continue }, nil)
			s.Execute(idealFrame(preambleAmplitude, numSymbols))
			if count != numSymbols {
				t.Errorf("numSymbols=%d: got %d callbacks, want %d", numSymbols, count, numSymbols)
			}
		})
	}
}

// Property 4: after PLCP-long acquisition, G is exactly zero on every NULL
// subcarrier (the gain estimator skips them entirely).
func TestProperty_GainIsZeroOnNullSubcarriers(t *testing.T) {
	s := New(func([]complex64, any) Result { return Continue }, nil)
	s.Execute(buildShortTraining())
	s.Execute(buildLongTraining(preambleAmplitude))

	if s.State() != RxPayload {
		t.Fatalf("setup did not reach RX_PAYLOAD; state = %v", s.State())
	}
	for i := 0; i < N; i++ {
		if Classify(i) != Null {
			continue
		}
		if s.g[i] != 0 {
			t.Errorf("g[%d] (NULL subcarrier) = %v, want 0", i, s.g[i])
		}
	}
}

// Property 5: splitting a batch at any boundary and calling Execute twice
// yields the same callback sequence as one call with the concatenation.
func TestProperty_SplitBatchExecuteIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		frame := idealFrame(preambleAmplitude, 3)

		var whole []complex64
		wholeCB := func(data []complex64, _ any) Result {
			whole = append(whole, append([]complex64{}, data...)...)
			return Continue
		}
		sWhole := New(wholeCB, nil)
		sWhole.Execute(frame)

		split := rapid.IntRange(0, len(frame)).Draw(t, "split")
		var parts []complex64
		partsCB := func(data []complex64, _ any) Result {
			parts = append(parts, append([]complex64{}, data...)...)
			return Continue
		}
		sSplit := New(partsCB, nil)
		sSplit.Execute(frame[:split])
		sSplit.Execute(frame[split:])

		if len(whole) != len(parts) {
			t.Fatalf("split at %d: callback output length %d, want %d", split, len(parts), len(whole))
		}
		for i := range whole {
			if whole[i] != parts[i] {
				t.Fatalf("split at %d: output[%d] = %v, want %v", split, i, parts[i], whole[i])
			}
		}
	})
}
