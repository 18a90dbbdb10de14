package prng

import (
	crand "crypto/rand"
	"encoding/binary"
	"sync"

	"golang.org/x/exp/rand"
)

// Source is the higher-quality generator. It wraps a PCG source behind a
// mutex and offers 32-bit, 64-bit and bounded-range draws.
type Source struct {
	mu  sync.Mutex
	src rand.Source
}

// NewSource returns a Source seeded with seed.
func NewSource(seed uint64) *Source {
	return &Source{src: rand.NewSource(seed)}
}

// NewSourceFromEntropy returns a Source seeded from the operating system
// entropy pool.
func NewSourceFromEntropy() (*Source, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, err
	}
	return NewSource(binary.LittleEndian.Uint64(b[:])), nil
}

// Seed restarts the sequence from seed.
func (s *Source) Seed(seed uint64) {
	s.mu.Lock()
	s.src.Seed(seed)
	s.mu.Unlock()
}

// Uint64 returns the next 64-bit draw.
func (s *Source) Uint64() uint64 {
	s.mu.Lock()
	v := s.src.Uint64()
	s.mu.Unlock()
	return v
}

// Uint32 returns the high half of the next 64-bit draw.
func (s *Source) Uint32() uint32 {
	return uint32(s.Uint64() >> 32)
}

// Range returns a uniform draw from [min, max] inclusive. Arguments in
// either order are accepted. Rejection sampling keeps the distribution
// free of modulo bias.
func (s *Source) Range(min, max uint64) uint64 {
	if min > max {
		min, max = max, min
	}
	span := max - min + 1
	if span == 0 {
		// The full 64-bit range wrapped to zero.
		return s.Uint64()
	}
	if span&(span-1) == 0 {
		return min + s.Uint64()&(span-1)
	}
	// thresh is 2^64 mod span; draws below it would bias the low residues.
	thresh := -span % span
	for {
		v := s.Uint64()
		if v >= thresh {
			return min + v%span
		}
	}
}
