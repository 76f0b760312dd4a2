// SPDX-License-Identifier: MIT

package core

import (
	"cmp"
	"encoding/json"
	"slices"
)

// Pair is one proposer-receiver couple of a Match.
type Pair struct {
	Proposer AgentID `json:"proposer"`
	Receiver AgentID `json:"receiver"`
}

// Match is a bijection between proposers and receivers, kept in both
// directions. The two maps are always mutual inverses: build a Match with
// NewMatchFromReceivers or NewMatchFromProposers rather than by hand.
type Match struct {
	ByProposer map[AgentID]AgentID
	ByReceiver map[AgentID]AgentID
}

// NewMatchFromReceivers builds a Match from a receiver -> proposer table.
// The input map is copied.
//
// Complexity: O(n).
func NewMatchFromReceivers(byReceiver map[AgentID]AgentID) Match {
	m := Match{
		ByProposer: make(map[AgentID]AgentID, len(byReceiver)),
		ByReceiver: make(map[AgentID]AgentID, len(byReceiver)),
	}
	for r, p := range byReceiver {
		m.ByReceiver[r] = p
		m.ByProposer[p] = r
	}

	return m
}

// NewMatchFromProposers builds a Match from a proposer -> receiver table.
// The input map is copied.
//
// Complexity: O(n).
func NewMatchFromProposers(byProposer map[AgentID]AgentID) Match {
	m := Match{
		ByProposer: make(map[AgentID]AgentID, len(byProposer)),
		ByReceiver: make(map[AgentID]AgentID, len(byProposer)),
	}
	for p, r := range byProposer {
		m.ByProposer[p] = r
		m.ByReceiver[r] = p
	}

	return m
}

// Len returns the number of pairs.
func (m Match) Len() int { return len(m.ByProposer) }

// Pairs returns all couples ordered by proposer.
func (m Match) Pairs() []Pair {
	pairs := make([]Pair, 0, len(m.ByProposer))
	for p, r := range m.ByProposer {
		pairs = append(pairs, Pair{Proposer: p, Receiver: r})
	}
	slices.SortFunc(pairs, comparePairs)

	return pairs
}

func comparePairs(a, b Pair) int {
	if c := cmp.Compare(a.Proposer, b.Proposer); c != 0 {
		return c
	}

	return cmp.Compare(a.Receiver, b.Receiver)
}

// Equal reports whether both matches pair the same agents.
func (m Match) Equal(o Match) bool {
	if len(m.ByProposer) != len(o.ByProposer) {
		return false
	}
	for p, r := range m.ByProposer {
		if got, ok := o.ByProposer[p]; !ok || got != r {
			return false
		}
	}

	return true
}

// Validate checks that m pairs every proposer and every receiver exactly
// once and that both views agree.
//
// Complexity: O(n).
func (m Match) Validate(proposers, receivers []AgentID) error {
	if len(m.ByProposer) != len(proposers) || len(m.ByReceiver) != len(receivers) {
		return ErrNotBijection
	}
	for _, p := range proposers {
		r, ok := m.ByProposer[p]
		if !ok {
			return ErrNotBijection
		}
		if back, ok := m.ByReceiver[r]; !ok || back != p {
			return ErrNotBijection
		}
	}
	for _, r := range receivers {
		if _, ok := m.ByReceiver[r]; !ok {
			return ErrNotBijection
		}
	}

	return nil
}

// MarshalJSON encodes the proposer view only; the receiver view is derived.
func (m Match) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ByProposer)
}

// UnmarshalJSON decodes a proposer -> receiver object and rebuilds both views.
func (m *Match) UnmarshalJSON(data []byte) error {
	var byProposer map[AgentID]AgentID
	if err := json.Unmarshal(data, &byProposer); err != nil {
		return err
	}
	*m = NewMatchFromProposers(byProposer)

	return nil
}
