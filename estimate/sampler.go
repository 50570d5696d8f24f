package estimate

import (
	"math"
	"math/rand/v2"
)

// Sampler draws uniform points in the unit square from its own random stream.
// A Sampler is not safe for concurrent use; every worker owns one.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a Sampler backed by a PCG source with the given seeds.
// Two samplers built from the same seeds produce the same batches.
func NewSampler(seed1, seed2 uint64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func newRandomSampler() *Sampler {
	return NewSampler(rand.Uint64(), rand.Uint64())
}

// Run draws n points and returns 4 × inside/n, where a point is inside
// when its distance from the origin is strictly below 1.
//
// The result lies in [0, 4] for any n >= 1. n == 0 is not guarded and
// yields NaN (0/0).
func (s *Sampler) Run(n uint32) float32 {
	var inside uint32
	for range n {
		x := s.rng.Float32()
		y := s.rng.Float32()

		if float32(math.Sqrt(float64(x*x+y*y))) < 1 {
			inside++
		}
	}

	return 4 * (float32(inside) / float32(n))
}

// RunSamples draws n points from a freshly seeded Sampler and returns the
// batch estimate of π. See Sampler.Run for the boundary behavior.
func RunSamples(n uint32) float32 {
	return newRandomSampler().Run(n)
}
