package metrics

import (
	"math/rand"
	"sync"

	"github.com/ternarybob/contendo/internal/interfaces"
)

// RandomEstimator returns placeholder volume/difficulty estimates from a
// seeded PRNG. The values are explicitly non-authoritative: no real keyword
// volume data source backs them, and they exist only so downstream consumers
// have plausible ranges to work with. Swap in a real estimator via the
// VolumeEstimator interface when one is available.
type RandomEstimator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomEstimator creates an estimator seeded with the given value.
// A fixed seed makes test output reproducible.
func NewRandomEstimator(seed int64) interfaces.VolumeEstimator {
	return &RandomEstimator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Estimate returns a pseudo-random volume in [100, 10100) and difficulty in
// [20, 91).
func (e *RandomEstimator) Estimate(keyword string) (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	volume := 100 + e.rng.Intn(10000)
	difficulty := 20 + e.rng.Intn(71)
	return volume, difficulty
}
