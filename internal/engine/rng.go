package engine

import "math/rand"

// NewRand returns a session-local random stream. Every match session owns
// exactly one stream injected at construction, so callers control
// determinism (fixed seed in tests, clock-derived seed in production).
// There is no package-global RNG anywhere in the engine.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
