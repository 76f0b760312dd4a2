package score

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvmatch/core"
)

// Params fixes the composite scorer of a run.
type Params struct {
	Base  Base
	Warp  Warp
	Boost float64
}

// DefaultParams returns the configurable path's defaults: Binary, Identity,
// no boost.
func DefaultParams() Params {
	return Params{Base: Binary, Warp: Identity, Boost: 0}
}

// AssignmentParams returns the fixed model of the weighted-assignment path:
// Graded, Exponential, boost 1.
func AssignmentParams() Params {
	return Params{Base: Graded, Warp: Exponential, Boost: 1}
}

// Validate checks the enums and the boost.
func (p Params) Validate() error {
	if p.Base != Binary && p.Base != Graded {
		return fmt.Errorf("%v: %w", p.Base, ErrUnknownBase)
	}
	if p.Warp != Identity && p.Warp != Exponential {
		return fmt.Errorf("%v: %w", p.Warp, ErrUnknownWarp)
	}
	if math.IsNaN(p.Boost) || math.IsInf(p.Boost, 0) || p.Boost < 0 {
		return fmt.Errorf("%v: %w", p.Boost, ErrBadBoost)
	}

	return nil
}

// Pair returns boost(warp(base(match, prefs))).
//
// Complexity: O(len(prefs)).
func (p Params) Pair(match core.AgentID, prefs core.PrefList) float64 {
	rank, ok := prefs.Rank(match)
	if !ok {
		return 0
	}

	return p.FromRank(rank, len(prefs))
}

// FromRank returns the composite score of an agent listed at rank in a list
// of length n. Callers that already know the rank skip the list scan.
func (p Params) FromRank(rank, n int) float64 {
	var x float64
	switch p.Base {
	case Graded:
		x = graded(rank, n)
	default:
		x = 1
	}
	if p.Warp == Exponential {
		x = ExponentialWarp(x)
	}

	return Boost(x, p.Boost)
}

// Assignment scores every pair of matches (agent -> partner) against the
// agent's own list in prefs and returns the per-agent scores and their sum.
// An agent absent from prefs scores 0. The function is pure: identical
// inputs give identical outputs, including the floating-point total.
//
// Complexity: O(Σ list lengths + n log n).
func Assignment(matches map[core.AgentID]core.AgentID, prefs core.Prefs, p Params) (map[core.AgentID]float64, float64) {
	scores := make(map[core.AgentID]float64, len(matches))
	for agent, partner := range matches {
		scores[agent] = p.Pair(partner, prefs[agent])
	}

	return scores, Total(scores)
}

// Total sums per-agent scores in ascending agent order so the result does
// not depend on map iteration.
func Total(scores map[core.AgentID]float64) float64 {
	ids := make([]core.AgentID, 0, len(scores))
	for a := range scores {
		ids = append(ids, a)
	}
	slices.Sort(ids)
	values := make([]float64, len(ids))
	for i, a := range ids {
		values[i] = scores[a]
	}

	return floats.Sum(values)
}
