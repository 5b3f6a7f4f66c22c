package rng

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/redbayou/outpost/internal/rng Roller

// Roller provides the uniform random draws the risk actions are built on
type Roller interface {
	// IntN returns a uniform integer in [0, n)
	IntN(n int) int

	// Between returns a uniform integer in [min, max] inclusive
	Between(min, max int) int

	// OneIn reports true with probability 1/n
	OneIn(n int) bool
}

// Config for the random source
type Config struct {
	// Optional seed for testing
	Seed int64
}

// Source implements Roller over a seeded rand.Rand
type Source struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new random source. Without a seed it is seeded from the
// system clock.
func New(cfg *Config) *Source {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Source{
		random: rand.New(rand.NewSource(seed)),
	}
}

// IntN returns a uniform integer in [0, n)
func (s *Source) IntN(n int) int {
	if n < 1 {
		return 0
	}
	// rand.Rand is not goroutine-safe and command handlers run concurrently
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.random.Intn(n)
}

// Between returns a uniform integer in [min, max] inclusive
func (s *Source) Between(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + s.IntN(max-min+1)
}

// OneIn reports true with probability 1/n
func (s *Source) OneIn(n int) bool {
	if n < 1 {
		return false
	}
	return s.IntN(n) == 0
}
