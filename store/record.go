// SPDX-License-Identifier: MIT

package store

import (
	"time"

	"github.com/katalvlaran/lvmatch/assign"
	"github.com/katalvlaran/lvmatch/core"
	"github.com/katalvlaran/lvmatch/montecarlo"
	"github.com/katalvlaran/lvmatch/score"
)

// Method names stored with a record.
const (
	MethodDeferredAcceptance = "deferred_acceptance"
	MethodWeightedAssignment = "weighted_assignment"
)

// Settings captures the parameters a run was made with.
type Settings struct {
	Scorer  string  `json:"scorer"`
	Warper  string  `json:"warper"`
	Boost   float64 `json:"boost"`
	Weight  float64 `json:"weight"`
	Trials  int     `json:"trials,omitempty"`
	Seed    int64   `json:"seed,omitempty"`
	Workers int     `json:"workers,omitempty"`
}

// Record is one persisted run: inputs, settings and outcome.
type Record struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Method    string    `json:"method"`
	Settings  Settings  `json:"settings"`

	Instance core.Instance `json:"instance"`

	Best      core.Match `json:"best"`
	BestScore float64    `json:"best_score"`
	Discarded int        `json:"discarded"`

	Stats   *montecarlo.Stats  `json:"stats,omitempty"`
	History []montecarlo.Trial `json:"history,omitempty"`
}

// Summary is the listing view of a Record.
type Summary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Method    string    `json:"method"`
	Agents    int       `json:"agents"`
	BestScore float64   `json:"best_score"`
}

// FromMonteCarlo builds the record of a deferred acceptance run.
func FromMonteCarlo(in core.Instance, opts montecarlo.Options, res *montecarlo.Result) *Record {
	stats := res.Stats

	return &Record{
		Method: MethodDeferredAcceptance,
		Settings: Settings{
			Scorer:  opts.Score.Base.String(),
			Warper:  opts.Score.Warp.String(),
			Boost:   opts.Score.Boost,
			Weight:  opts.Weight,
			Trials:  opts.Trials,
			Seed:    opts.Seed,
			Workers: opts.Workers,
		},
		Instance:  in,
		Best:      res.Best.Match,
		BestScore: res.BestScore,
		Discarded: res.Discarded,
		Stats:     &stats,
		History:   res.History,
	}
}

// FromAssignment builds the record of a weighted assignment run. The
// scorer is the fixed assignment model.
func FromAssignment(in core.Instance, weight float64, res assign.Result) *Record {
	p := score.AssignmentParams()

	return &Record{
		Method: MethodWeightedAssignment,
		Settings: Settings{
			Scorer: p.Base.String(),
			Warper: p.Warp.String(),
			Boost:  p.Boost,
			Weight: weight,
		},
		Instance:  in,
		Best:      res.Match,
		BestScore: res.Total,
	}
}
