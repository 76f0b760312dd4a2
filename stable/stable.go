package stable

import (
	"math/rand"

	"github.com/katalvlaran/lvmatch/core"
)

// Solve runs deferred acceptance with proposers proposing and returns the
// resulting match. Both profiles must be complete; otherwise a
// *core.ValidationError is returned and no work is done. rng drives the
// initial queue order (nil ⇒ the default deterministic stream).
func Solve(proposers, receivers core.Prefs, rng *rand.Rand) (core.Match, error) {
	if err := core.ValidatePair(proposers, receivers); err != nil {
		return core.Match{}, err
	}

	n := len(proposers)

	// Private cursors: remaining[p] shrinks as p proposes.
	remaining := make(map[core.AgentID]core.PrefList, n)
	for p, list := range proposers {
		remaining[p] = list.Clone()
	}

	// rank[r][p] is p's position in r's list; O(1) comparisons.
	rank := make(map[core.AgentID]map[core.AgentID]int, n)
	for r, list := range receivers {
		rank[r] = list.Ranks()
	}

	free := proposers.IDs()
	core.ShuffleIDs(free, rng)
	done := make(map[core.AgentID]struct{}, n)
	held := make(map[core.AgentID]core.AgentID, n) // receiver -> proposer

	var (
		p, r, cur core.AgentID
		ok        bool
	)
	for len(free) > 0 && len(done) < n {
		p, free = free[0], free[1:]

		r = remaining[p][0]
		remaining[p] = remaining[p][1:]
		if len(remaining[p]) == 0 {
			done[p] = struct{}{}
		}

		cur, ok = held[r]
		switch {
		case !ok:
			held[r] = p
		case rank[r][p] < rank[r][cur]:
			held[r] = p
			free = requeue(free, cur, done)
		default:
			free = requeue(free, p, done)
		}
	}

	return core.NewMatchFromReceivers(held), nil
}

func requeue(free []core.AgentID, p core.AgentID, done map[core.AgentID]struct{}) []core.AgentID {
	if _, exhausted := done[p]; exhausted {
		return free
	}

	return append(free, p)
}
