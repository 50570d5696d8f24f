package estimate

import (
	"math"
	"sync"
)

// Pi is π rounded to float32, the precision every estimate is compared at.
const Pi = float32(math.Pi)

// Estimate is the running π estimate shared by all workers of a simulation.
//
// The zero value is ready to use and holds the sentinel 0, meaning no batch
// has been folded in yet. All access goes through a single mutex.
type Estimate struct {
	mu      sync.Mutex
	value   float32
	updates uint64
}

// Update folds one batch estimate into the shared value.
//
// The first write replaces the sentinel; every later write stores the
// average of the current value and local. This is a running two-point
// average, not a cumulative mean: recent batches weigh more than early ones
// and the outcome depends on the order workers reach the lock.
//
// A local value of exactly 0 written while the cell still holds the sentinel
// leaves the cell looking unset, so the next update overwrites instead of
// averaging.
func (e *Estimate) Update(local float32) {
	e.update(local)
}

func (e *Estimate) update(local float32) float32 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.value == 0 {
		e.value = local
	} else {
		e.value += local
		e.value /= 2
	}
	e.updates++

	return e.value
}

// Value returns the current shared value.
func (e *Estimate) Value() float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}

// Updates returns how many batches have been folded in.
func (e *Estimate) Updates() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.updates
}

// AbsError returns |value - Pi| in float32.
func (e *Estimate) AbsError() float32 {
	return absError(e.Value())
}

func absError(v float32) float32 {
	return float32(math.Abs(float64(v - Pi)))
}
