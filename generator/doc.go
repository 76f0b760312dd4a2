// SPDX-License-Identifier: MIT
// Package generator builds random matching instances for tests, benchmarks
// and the `lvmatch generate` command.
//
// Build(n, opts...) returns a core.Instance with n proposers and n receivers.
// Every list is a uniformly random permutation of the opposite side,
// optionally truncated to a prefix (WithCompleteness) so the Monte-Carlo
// path has something to complete. WithBlacklistDensity adds random
// forbidden pairs.
//
// Determinism: the same options and seed give the same instance. Without
// WithSeed/WithRand the default deterministic stream of core.NewRand is used.
//
//	in, err := generator.Build(8, generator.WithSeed(42), generator.WithCompleteness(0.5))
package generator
