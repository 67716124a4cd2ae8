package ofdmsync

import "testing"

func TestClassify_NullSet(t *testing.T) {
	nullSet := map[int]bool{0: true}
	for i := 27; i <= 37; i++ {
		nullSet[i] = true
	}
	for i := 0; i < N; i++ {
		got := Classify(i) == Null
		want := nullSet[i]
		if got != want {
			t.Errorf("Classify(%d) Null = %v, want %v", i, got, want)
		}
	}
}

func TestClassify_PilotSet(t *testing.T) {
	pilotSet := map[int]bool{}
	for _, p := range PilotIndices {
		pilotSet[p] = true
	}
	for i := 0; i < N; i++ {
		got := Classify(i) == Pilot
		want := pilotSet[i]
		if got != want {
			t.Errorf("Classify(%d) Pilot = %v, want %v", i, got, want)
		}
	}
}

func TestDataIndices_CountAndDisjoint(t *testing.T) {
	data := DataIndices()
	if len(data) != NumDataSubcarriers {
		t.Fatalf("len(DataIndices()) = %d, want %d", len(data), NumDataSubcarriers)
	}
	for _, i := range data {
		if Classify(i) != Data {
			t.Errorf("DataIndices() contains %d, which classifies as %v", i, Classify(i))
		}
	}
}

func TestClassify_EveryIndexClassifiedExactlyOnce(t *testing.T) {
	counts := map[SubcarrierKind]int{}
	for i := 0; i < N; i++ {
		counts[Classify(i)]++
	}
	if counts[Null] != 12 {
		t.Errorf("NULL count = %d, want 12", counts[Null])
	}
	if counts[Pilot] != 4 {
		t.Errorf("PILOT count = %d, want 4", counts[Pilot])
	}
	if counts[Data] != NumDataSubcarriers {
		t.Errorf("DATA count = %d, want %d", counts[Data], NumDataSubcarriers)
	}
}
