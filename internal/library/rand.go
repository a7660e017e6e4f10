package library

import (
	"math/rand"
	"time"
)

// Rand is the minimal RNG surface weighted sampling needs. It is
// satisfied by *math/rand.Rand, letting production code use a
// time-seeded source while tests inject a fixed-seed one for
// deterministic, reproducible sampling sequences.
type Rand interface {
	Float64() float64
}

// NewRand returns a Rand seeded from the current time. Callers that
// need reproducible sequences (tests, --seed on the CLI) use
// NewSeededRand instead.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewSeededRand returns a Rand with a caller-supplied seed.
func NewSeededRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
