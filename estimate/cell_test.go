package estimate

import (
	"sync"
	"testing"
)

func TestEstimateFirstWrite(t *testing.T) {
	var e Estimate
	e.Update(3.25)

	if got := e.Value(); got != 3.25 {
		t.Errorf("expected first write to set 3.25, got %v", got)
	}
	if got := e.Updates(); got != 1 {
		t.Errorf("expected 1 update, got %d", got)
	}
}

func TestEstimateRunningAverage(t *testing.T) {
	tests := []struct {
		name   string
		values []float32
		want   float32
	}{
		{"two values", []float32{3.0, 3.5}, 3.25},
		{"three values weigh the last one more", []float32{2.0, 4.0, 3.0}, 3.0},
		{"order matters", []float32{3.0, 4.0, 2.0}, 2.75},
		{"rising values", []float32{3.0, 3.5, 4.0}, 3.625},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Estimate
			for _, v := range tt.values {
				e.Update(v)
			}
			if got := e.Value(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEstimateZeroLocalLooksUnset(t *testing.T) {
	t.Run("zero as first write keeps the sentinel", func(t *testing.T) {
		var e Estimate
		e.Update(0)
		e.Update(3.5)

		if got := e.Value(); got != 3.5 {
			t.Errorf("expected second write to overwrite, got %v", got)
		}
	})

	t.Run("zero after a value is averaged", func(t *testing.T) {
		var e Estimate
		e.Update(3.0)
		e.Update(0)

		if got := e.Value(); got != 1.5 {
			t.Errorf("expected 1.5, got %v", got)
		}
	})
}

func TestEstimateAbsError(t *testing.T) {
	var e Estimate
	if got := e.AbsError(); got != Pi {
		t.Errorf("sentinel cell should be Pi away from Pi, got %v", got)
	}

	e.Update(Pi)
	if got := e.AbsError(); got != 0 {
		t.Errorf("expected zero error, got %v", got)
	}

	e.Update(Pi + 1) // (Pi + Pi + 1) / 2
	if got := e.AbsError(); got < 0.49 || got > 0.51 {
		t.Errorf("expected error near 0.5, got %v", got)
	}
}

func TestEstimateConcurrentUpdates(t *testing.T) {
	const (
		workers = 64
		updates = 2_000
	)

	// Averaging equal values is a fixed point, so any serialization of the
	// updates ends at the same value. A lost or torn update would either
	// break the counter or leave a different value behind.
	const local = float32(3.0)

	var e Estimate
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range updates {
				e.Update(local)
				if v := e.Value(); v != local {
					t.Errorf("observed value %v outside any serialization", v)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := e.Updates(); got != workers*updates {
		t.Errorf("expected %d updates, got %d", workers*updates, got)
	}
	if got := e.Value(); got != local {
		t.Errorf("expected %v, got %v", local, got)
	}
}

func TestEstimateConcurrentUpdatesStayInHull(t *testing.T) {
	const workers = 32

	// Every average of values in [lo, hi] stays in [lo, hi].
	lo, hi := float32(2.5), float32(3.75)

	var e Estimate
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v := lo
			if i%2 == 1 {
				v = hi
			}
			for range 1_000 {
				e.Update(v)
			}
		}()
	}
	wg.Wait()

	if got := e.Value(); got < lo || got > hi {
		t.Errorf("value %v escaped [%v, %v]", got, lo, hi)
	}
	if got := e.Updates(); got != workers*1_000 {
		t.Errorf("expected %d updates, got %d", workers*1_000, got)
	}
}
