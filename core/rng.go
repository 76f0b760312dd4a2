// SPDX-License-Identifier: MIT
// Package core - RNG utilities shared by completion, deferred acceptance and
// the Monte-Carlo controller.
//
// Goals:
//   - Determinism: same seed ⇒ identical completions, proposal orders and
//     best matches across platforms.
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//   - Independence: StreamRand gives every trial its own stream, so trials
//     can run on any worker in any order.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Never share one across goroutines;
//     derive a stream per worker or per trial instead.
package core

import "math/rand"

// DefaultSeed is the fixed seed used when callers pass seed==0.
const DefaultSeed int64 = 1

// NewRand returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream identifier into a new seed
// with a SplitMix64 finalizer; neighbouring streams end up uncorrelated.
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// StreamRand returns the deterministic stream number `stream` of seed.
// It consumes no parent state, so stream i is the same whichever
// goroutine asks for it and whenever.
//
// Complexity: O(1).
func StreamRand(seed int64, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(deriveSeed(seed, stream)))
}

// ShuffleIDs performs an in-place Fisher–Yates shuffle of ids using rng.
// If rng==nil, the default deterministic stream is used.
//
// Complexity: O(n) time, O(1) extra space.
func ShuffleIDs(ids []AgentID, rng *rand.Rand) {
	n := len(ids)
	if n <= 1 {
		return
	}
	r := rng
	if r == nil {
		r = NewRand(0)
	}

	var i, j int
	for i = n - 1; i > 0; i-- {
		j = r.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}
