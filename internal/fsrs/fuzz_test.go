package fsrs

import (
	"math/rand"
	"testing"
)

func fuzzEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	e, err := NewWithRand(Parameters{}, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewWithRand: %v", err)
	}
	return e
}

func TestFuzzShortIntervalsUntouched(t *testing.T) {
	e := fuzzEngine(t, 1)
	for _, ivl := range []int{1, 2} {
		for i := 0; i < 50; i++ {
			if got := e.fuzz(ivl); got != ivl {
				t.Fatalf("fuzz(%d) = %d, want unchanged", ivl, got)
			}
		}
	}
}

func TestFuzzDisabled(t *testing.T) {
	e := mustEngine(t, noFuzzParams())
	for _, ivl := range []int{3, 10, 100, 365} {
		if got := e.fuzz(ivl); got != ivl {
			t.Errorf("fuzz(%d) = %d, want unchanged with fuzz disabled", ivl, got)
		}
	}
}

func TestFuzzStaysWithinRange(t *testing.T) {
	e := fuzzEngine(t, 2)
	// For interval 100: min(round(5), max(1, round(2))) = 2.
	for i := 0; i < 500; i++ {
		got := e.fuzz(100)
		if got < 98 || got > 102 {
			t.Fatalf("fuzz(100) = %d outside [98, 102]", got)
		}
	}
	// For interval 3: min(round(0.15), max(1, round(0.06))) = 0, no spread.
	for i := 0; i < 50; i++ {
		if got := e.fuzz(3); got != 3 {
			t.Fatalf("fuzz(3) = %d, want 3", got)
		}
	}
}

func TestFuzzNeverBelowOneDay(t *testing.T) {
	e := fuzzEngine(t, 3)
	for i := 0; i < 500; i++ {
		if got := e.fuzz(3650); got < 1 {
			t.Fatalf("fuzz(3650) = %d, below one day", got)
		}
	}
}

func TestFuzzReproducibleWithSeed(t *testing.T) {
	a := fuzzEngine(t, 99)
	b := fuzzEngine(t, 99)
	for i := 0; i < 100; i++ {
		if ga, gb := a.fuzz(250), b.fuzz(250); ga != gb {
			t.Fatalf("draw %d: %d != %d with identical seeds", i, ga, gb)
		}
	}
}
