package simulator

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// entropy hands out seeds for unseeded runs. It is seeded once per process
// from the clock, so separate runs draw different streams.
var entropy = struct {
	mu  sync.Mutex
	rng *rand.Rand
}{rng: rand.New(rand.NewSource(uint64(time.Now().UnixNano())))}

// NewSeed returns a seed that differs between calls and between processes.
func NewSeed() uint64 {
	entropy.mu.Lock()
	defer entropy.mu.Unlock()
	return entropy.rng.Uint64()
}
