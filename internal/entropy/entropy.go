// Package entropy derives simulation seeds and builds the seeded random
// streams the simulation threads through every call. Falls back to
// crypto/rand when no seed is given.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	mrand "math/rand"
)

// Stream offsets keep the independent random streams of one run apart.
const (
	StreamSimulation int64 = 0
	StreamPopulation int64 = 200
)

// Seed returns seed unchanged, or a fresh seed from crypto/rand when seed is
// zero. The chosen seed is logged so a run can be replayed.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	seed = cryptoSeed()
	slog.Info("generated seed", "seed", seed)
	return seed
}

// New returns a deterministic stream for seed plus a stream offset.
func New(seed, stream int64) *mrand.Rand {
	return mrand.New(mrand.NewSource(seed + stream))
}

// cryptoSeed reads a positive int64 from crypto/rand.
func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen; fall back to a fixed non-zero seed.
		return 1
	}
	n := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if n == 0 {
		n = 1
	}
	return n
}
