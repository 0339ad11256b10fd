// internal/tracker/failure.go
package tracker

import (
	"math/rand"
	"sync"
)

// FailurePolicy decides whether an archive transition fails with a transient
// write timeout. Injected so tests can force both outcomes.
type FailurePolicy interface {
	ShouldFail() bool
}

// RandomFailure fails with a fixed probability.
type RandomFailure struct {
	mu   sync.Mutex
	rate float64
	rng  *rand.Rand
}

func NewRandomFailure(rate float64, seed int64) *RandomFailure {
	return &RandomFailure{
		rate: rate,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (r *RandomFailure) ShouldFail() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64() < r.rate
}

// FixedFailure always returns the configured outcome.
type FixedFailure bool

func (f FixedFailure) ShouldFail() bool { return bool(f) }
