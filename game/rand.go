package game

import (
	"hash/maphash"
	"math/rand/v2"
)

// Rand is the source used to place mines and order director moves.
// *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a PCG-backed source. A zero seed is replaced by a
// runtime-random one.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}
