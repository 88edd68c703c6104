package engine

import (
	"math/rand"
	"time"
)

// Rand is the randomness source used for enemy templates, question draws and
// loot rolls. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a seeded source. A zero seed picks one from the clock.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Clock returns the current time; tests swap it for a fake.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// sampleIndices returns k distinct indices from [0, n) using a partial
// Fisher-Yates shuffle.
func sampleIndices(rng Rand, n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if k > n {
		k = n
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
