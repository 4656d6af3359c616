package injectee

import (
	"math/rand/v2"
	"time"
)

// pcgSeedLo is the fixed low half of the PCG seed. The caller's seed is the
// high half.
const pcgSeedLo = 0xda3e39cb94b95bdb

// Generator is a seedable pseudo-random generator. The zero value seeds
// itself from the clock on the first draw.
//
// A Generator is not safe for concurrent use. Callers that invoke the
// exported functions from several threads at once must serialize them.
type Generator struct {
	src  *rand.PCG
	rng  *rand.Rand
	seed uint32
}

// NewGenerator returns a Generator seeded with seed.
func NewGenerator(seed uint32) *Generator {
	g := &Generator{}
	g.Seed(seed)
	return g
}

// Seed resets the generator so that it produces the sequence for s.
func (g *Generator) Seed(s uint32) {
	if g.src == nil {
		g.src = rand.NewPCG(uint64(s), pcgSeedLo)
		g.rng = rand.New(g.src)
	} else {
		g.src.Seed(uint64(s), pcgSeedLo)
	}
	g.seed = s
}

// SeedRandom seeds the generator from the current time and returns the seed
// so the sequence can be reproduced with Seed.
func (g *Generator) SeedRandom() uint32 {
	s := clockSeed()
	g.Seed(s)
	return s
}

// LastSeed returns the most recent seed.
func (g *Generator) LastSeed() uint32 {
	return g.seed
}

// Random returns a value in [0, max). Random(0) returns 0.
func (g *Generator) Random(max uint32) uint32 {
	if g.rng == nil {
		g.SeedRandom()
	}
	if max == 0 {
		return 0
	}
	return g.rng.Uint32N(max)
}

func clockSeed() uint32 {
	return uint32(time.Now().Unix())
}

// shared is the process-wide generator behind Seed, SeedRandom and Random.
var shared Generator

// Seed reseeds the shared generator.
func Seed(s uint32) {
	shared.Seed(s)
}

// SeedRandom reseeds the shared generator from the clock and returns the
// seed.
func SeedRandom() uint32 {
	return shared.SeedRandom()
}

// Random draws from the shared generator.
func Random(max uint32) uint32 {
	return shared.Random(max)
}
