// Package prng provides the two random-number services used for session
// tokens and load distribution: a fast, reseedable xorshift generator and
// a higher-quality PCG-backed source. Generators are explicitly owned
// objects rather than process-wide state; every call serializes against
// concurrent callers on an internal mutex.
package prng

import "sync"

// Xorshift is a xorshift128 generator. It is deterministic for a given
// seed, fast, and not suitable for cryptographic use.
type Xorshift struct {
	mu         sync.Mutex
	x, y, z, w uint32
}

// NewXorshift returns a generator in the fixed default state. Call Seed to
// start a fresh sequence.
func NewXorshift() *Xorshift {
	return &Xorshift{x: 123456789, y: 362436069, z: 987654321, w: 1}
}

// Seed starts a new sequence of xorshift integers derived from seed.
func (g *Xorshift) Seed(seed uint32) {
	g.mu.Lock()
	g.w = seed
	g.z = g.w ^ (g.w >> 8) ^ (g.w << 5)
	g.mu.Unlock()
}

// Uint32 returns the next number in the current sequence, uniformly
// distributed over the full 32-bit range.
func (g *Xorshift) Uint32() uint32 {
	g.mu.Lock()
	t := g.x ^ (g.x << 11)
	g.x, g.y, g.z = g.y, g.z, g.w
	g.w = g.w ^ (g.w >> 19) ^ (t ^ (t >> 8))
	v := g.w
	g.mu.Unlock()
	return v
}
