// SPDX-License-Identifier: MIT

package core

import (
	"slices"
)

// AgentID is an opaque label, unique within its side.
type AgentID string

// Side names one of the two groups of a matching problem.
type Side int

const (
	// Proposers initiate offers in deferred acceptance.
	Proposers Side = iota
	// Receivers hold offers and trade up.
	Receivers
)

// String returns "proposers" or "receivers".
func (s Side) String() string {
	if s == Receivers {
		return "receivers"
	}

	return "proposers"
}

// PrefList is a ranked list of opposite-side agents, most preferred first.
// The rank of an agent is its zero-based position.
type PrefList []AgentID

// Rank returns the position of id, or (len(l), false) when absent.
// An absent agent therefore sorts after every ranked one.
//
// Complexity: O(len(l)).
func (l PrefList) Rank(id AgentID) (int, bool) {
	for i, v := range l {
		if v == id {
			return i, true
		}
	}

	return len(l), false
}

// Contains reports whether id appears in the list.
func (l PrefList) Contains(id AgentID) bool {
	return slices.Contains(l, id)
}

// Clone returns an independent copy; nil stays nil.
func (l PrefList) Clone() PrefList {
	if l == nil {
		return nil
	}

	return slices.Clone(l)
}

// Ranks returns the id -> rank table of the list.
//
// Complexity: O(len(l)) time and space.
func (l PrefList) Ranks() map[AgentID]int {
	ranks := make(map[AgentID]int, len(l))
	for i, v := range l {
		ranks[v] = i
	}

	return ranks
}

// Prefs maps every agent of one side to its preference list.
type Prefs map[AgentID]PrefList

// IDs returns the agents of the profile in ascending order.
// Every solver iterates in this order so seeded runs are reproducible.
//
// Complexity: O(n log n).
func (p Prefs) IDs() []AgentID {
	ids := make([]AgentID, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}

// Clone deep-copies the profile; solvers never alias caller lists.
func (p Prefs) Clone() Prefs {
	if p == nil {
		return nil
	}
	out := make(Prefs, len(p))
	for id, list := range p {
		out[id] = list.Clone()
	}

	return out
}

// IsComplete reports whether every list ranks exactly the given choices.
func (p Prefs) IsComplete(choices []AgentID) bool {
	set := idSet(choices)
	for _, list := range p {
		if checkList(list, set) != nil {
			return false
		}
	}

	return true
}

// Instance bundles the raw inputs of one run: both profiles, possibly
// incomplete, and the optional blacklist.
type Instance struct {
	Proposers Prefs     `json:"proposers"`
	Receivers Prefs     `json:"receivers"`
	Blacklist Blacklist `json:"blacklist,omitempty"`
}

// Size returns the number of proposers.
func (in Instance) Size() int { return len(in.Proposers) }

func idSet(ids []AgentID) map[AgentID]struct{} {
	set := make(map[AgentID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set
}
