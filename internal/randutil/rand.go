package randutil

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// A zero seed means "not configured" and draws a fresh seed instead, so
// production callers can pass the configured value straight through.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = RandomSeed()
	}
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// RandomSeed returns a non-zero seed from the system entropy source.
func RandomSeed() int64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return int64(rand.Uint64() | 1)
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) | 1)
}

// Derive returns the seed for the n-th independent instance sharing a base
// seed, so that concurrently running players never share a sequence.
func Derive(seed int64, n int) int64 {
	if seed == 0 {
		return 0
	}
	return int64(mix(uint64(seed) + uint64(n)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
