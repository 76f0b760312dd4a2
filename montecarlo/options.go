// SPDX-License-Identifier: MIT

package montecarlo

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvmatch/core"
	"github.com/katalvlaran/lvmatch/score"
)

// Options tunes Run.
type Options struct {
	// Trials is the number of completions tried; must be ≥ 1.
	Trials int

	// Weight of the proposer side in the overall score, in [0, 1].
	Weight float64

	// Score is the composite scorer applied to both sides.
	Score score.Params

	// Seed selects the random streams; 0 means core.DefaultSeed.
	Seed int64

	// Workers > 1 runs trials concurrently.
	Workers int

	// KeepHistory retains every admissible trial in Result.History.
	KeepHistory bool

	// Logger receives run and discard events; nil disables logging.
	Logger *slog.Logger

	// OnTrial, if set, is called once per finished trial from a single
	// goroutine. Order follows completion, not trial index, when Workers > 1.
	OnTrial func(TrialEvent)
}

// DefaultOptions returns 1000 sequential trials with equal side weights,
// the Binary/Identity scorer without boost, and history retained.
func DefaultOptions() Options {
	return Options{
		Trials:      1000,
		Weight:      0.5,
		Score:       score.DefaultParams(),
		Seed:        core.DefaultSeed,
		Workers:     1,
		KeepHistory: true,
	}
}

// Validate checks every field of o.
func (o Options) Validate() error {
	if o.Trials < 1 {
		return fmt.Errorf("%w: trials=%d (must be >= 1)", ErrBadOptions, o.Trials)
	}
	if o.Workers < 1 {
		return fmt.Errorf("%w: workers=%d (must be >= 1)", ErrBadOptions, o.Workers)
	}
	if err := score.ValidateWeight(o.Weight); err != nil {
		return fmt.Errorf("%w: %w", ErrBadOptions, err)
	}
	if err := o.Score.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrBadOptions, err)
	}

	return nil
}

// TrialEvent summarizes one finished trial for progress and metrics hooks.
type TrialEvent struct {
	Index     int
	Discarded bool
	// Blocked is the blacklisted pair that caused the discard.
	Blocked core.Pair
	// Overall is 0 for discarded trials.
	Overall float64
}
