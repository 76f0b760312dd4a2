// SPDX-License-Identifier: MIT

package generator

import (
	"math/rand"

	"github.com/katalvlaran/lvmatch/core"
)

// Option customizes Build. Option constructors panic on meaningless
// inputs; Build itself never panics.
type Option func(*config)

type config struct {
	rng *rand.Rand

	proposerPrefix string
	receiverPrefix string

	// Fraction of each list kept, in [0,1]; 1 keeps complete lists.
	completeness float64
	// Probability that any single (proposer, receiver) pair is forbidden.
	blacklistDensity float64
}

const (
	defaultProposerPrefix = "P"
	defaultReceiverPrefix = "R"
)

func newConfig(opts ...Option) config {
	cfg := config{
		proposerPrefix: defaultProposerPrefix,
		receiverPrefix: defaultReceiverPrefix,
		completeness:   1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.proposerPrefix == "" {
		cfg.proposerPrefix = defaultProposerPrefix
	}
	if cfg.receiverPrefix == "" {
		cfg.receiverPrefix = defaultReceiverPrefix
	}
	if cfg.rng == nil {
		cfg.rng = core.NewRand(0)
	}

	return cfg
}

// WithSeed seeds a fresh deterministic stream.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = core.NewRand(seed)
	}
}

// WithRand uses r for every random draw. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("generator: WithRand(nil)")
	}

	return func(c *config) {
		c.rng = r
	}
}

// WithPrefixes sets the id prefixes of both sides. Empty values keep the
// defaults "P" and "R".
func WithPrefixes(proposers, receivers string) Option {
	return func(c *config) {
		c.proposerPrefix, c.receiverPrefix = proposers, receivers
	}
}

// WithCompleteness keeps the first ⌈f·n⌉ entries of every list.
// Panics unless 0 ≤ f ≤ 1.
func WithCompleteness(f float64) Option {
	if !(f >= 0 && f <= 1) {
		panic("generator: WithCompleteness(f) needs 0 <= f <= 1")
	}

	return func(c *config) {
		c.completeness = f
	}
}

// WithBlacklistDensity forbids each pair independently with probability d.
// Panics unless 0 ≤ d < 1.
func WithBlacklistDensity(d float64) Option {
	if !(d >= 0 && d < 1) {
		panic("generator: WithBlacklistDensity(d) needs 0 <= d < 1")
	}

	return func(c *config) {
		c.blacklistDensity = d
	}
}
