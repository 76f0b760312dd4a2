// SPDX-License-Identifier: MIT

package core

import (
	"encoding/json"
	"slices"
)

// Blacklist maps a proposer to the receivers it must never be matched with.
// A nil or empty Blacklist forbids nothing.
type Blacklist map[AgentID]map[AgentID]struct{}

// Add forbids the pair (p, r). The receiver b must be non-nil.
func (b Blacklist) Add(p, r AgentID) {
	set, ok := b[p]
	if !ok {
		set = make(map[AgentID]struct{})
		b[p] = set
	}
	set[r] = struct{}{}
}

// Forbids reports whether (p, r) is blacklisted.
func (b Blacklist) Forbids(p, r AgentID) bool {
	_, ok := b[p][r]

	return ok
}

// Len returns the number of forbidden pairs.
func (b Blacklist) Len() int {
	n := 0
	for _, set := range b {
		n += len(set)
	}

	return n
}

// Violates returns the first forbidden pair of m, scanning proposers in
// ascending order, and whether one was found.
//
// Complexity: O(n log n) for the ordered scan.
func (b Blacklist) Violates(m Match) (Pair, bool) {
	if len(b) == 0 {
		return Pair{}, false
	}
	proposers := make([]AgentID, 0, len(b))
	for p := range b {
		proposers = append(proposers, p)
	}
	slices.Sort(proposers)
	for _, p := range proposers {
		r, ok := m.ByProposer[p]
		if ok && b.Forbids(p, r) {
			return Pair{Proposer: p, Receiver: r}, true
		}
	}

	return Pair{}, false
}

// Pairs returns every forbidden pair sorted by proposer, then receiver.
func (b Blacklist) Pairs() []Pair {
	out := make([]Pair, 0, b.Len())
	for p, set := range b {
		for r := range set {
			out = append(out, Pair{Proposer: p, Receiver: r})
		}
	}
	slices.SortFunc(out, comparePairs)

	return out
}

// MarshalJSON encodes the blacklist as proposer -> sorted receiver list.
func (b Blacklist) MarshalJSON() ([]byte, error) {
	out := make(map[AgentID][]AgentID, len(b))
	for p, set := range b {
		rs := make([]AgentID, 0, len(set))
		for r := range set {
			rs = append(rs, r)
		}
		slices.Sort(rs)
		out[p] = rs
	}

	return json.Marshal(out)
}

// UnmarshalJSON decodes the proposer -> receiver list form.
func (b *Blacklist) UnmarshalJSON(data []byte) error {
	var raw map[AgentID][]AgentID
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Blacklist, len(raw))
	for p, rs := range raw {
		for _, r := range rs {
			out.Add(p, r)
		}
	}
	*b = out

	return nil
}
