package stable

import (
	"github.com/katalvlaran/lvmatch/core"
)

// BlockingPair is a proposer and receiver who both prefer each other over
// their assigned partners.
type BlockingPair struct {
	Proposer core.AgentID
	Receiver core.AgentID
}

// FindBlockingPair returns the first blocking pair of m under the given
// profiles, scanning proposers in ascending order, and whether one exists.
// Agents missing from a list rank after every listed agent, so incomplete
// profiles are accepted.
//
// Complexity: O(n²).
func FindBlockingPair(m core.Match, proposers, receivers core.Prefs) (BlockingPair, bool) {
	for _, p := range proposers.IDs() {
		list := proposers[p]
		partner, matched := m.ByProposer[p]
		limit := len(list)
		if matched {
			limit, _ = list.Rank(partner)
		}
		// Every receiver p ranks above its partner is a candidate.
		for _, r := range list[:limit] {
			rList := receivers[r]
			current, held := m.ByReceiver[r]
			if !held {
				return BlockingPair{Proposer: p, Receiver: r}, true
			}
			pRank, _ := rList.Rank(p)
			curRank, _ := rList.Rank(current)
			if pRank < curRank {
				return BlockingPair{Proposer: p, Receiver: r}, true
			}
		}
	}

	return BlockingPair{}, false
}

// IsStable reports whether m has no blocking pair.
func IsStable(m core.Match, proposers, receivers core.Prefs) bool {
	_, found := FindBlockingPair(m, proposers, receivers)

	return !found
}
