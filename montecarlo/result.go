// SPDX-License-Identifier: MIT

package montecarlo

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lvmatch/core"
)

// Trial is one admissible trial.
type Trial struct {
	Index int `json:"index"`

	// Completed profiles the solver ran on.
	Proposers core.Prefs `json:"proposers"`
	Receivers core.Prefs `json:"receivers"`

	Match core.Match `json:"match"`

	ProposerScores map[core.AgentID]float64 `json:"proposer_scores"`
	ReceiverScores map[core.AgentID]float64 `json:"receiver_scores"`
	ProposerTotal  float64                  `json:"proposer_total"`
	ReceiverTotal  float64                  `json:"receiver_total"`
	Overall        float64                  `json:"overall"`
}

// Stats summarizes the overall scores of the admissible trials.
type Stats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Result is the outcome of Run.
type Result struct {
	Best      Trial   `json:"best"`
	BestScore float64 `json:"best_score"`
	Trials    int     `json:"trials"`
	Discarded int     `json:"discarded"`
	// History lists admissible trials in index order; nil unless
	// Options.KeepHistory.
	History []Trial `json:"history,omitempty"`
	Stats   Stats   `json:"stats"`
}

// Admitted returns the number of trials that survived the blacklist.
func (r *Result) Admitted() int { return r.Trials - r.Discarded }

func summarize(xs []float64) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	s := Stats{Min: floats.Min(xs), Max: floats.Max(xs)}
	if len(xs) == 1 {
		s.Mean = xs[0]

		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(xs, nil)

	return s
}
