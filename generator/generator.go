// SPDX-License-Identifier: MIT

package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"github.com/katalvlaran/lvmatch/core"
)

// ErrTooFewAgents is returned when n < 1.
var ErrTooFewAgents = errors.New("generator: need at least one agent per side")

// Build returns a random instance with n agents per side.
//
// Draw order is fixed (proposer lists, receiver lists, then the blacklist,
// each in ascending id order), so a seed pins the whole instance.
//
// Complexity: O(n²) time and space.
func Build(n int, opts ...Option) (core.Instance, error) {
	if n < 1 {
		return core.Instance{}, fmt.Errorf("Build: n=%d: %w", n, ErrTooFewAgents)
	}
	cfg := newConfig(opts...)

	proposers := ids(cfg.proposerPrefix, n)
	receivers := ids(cfg.receiverPrefix, n)
	keep := int(math.Ceil(cfg.completeness * float64(n)))

	in := core.Instance{
		Proposers: randomProfile(proposers, receivers, keep, cfg.rng),
		Receivers: randomProfile(receivers, proposers, keep, cfg.rng),
	}
	if cfg.blacklistDensity > 0 {
		in.Blacklist = make(core.Blacklist)
		for _, p := range proposers {
			for _, r := range receivers {
				if cfg.rng.Float64() < cfg.blacklistDensity {
					in.Blacklist.Add(p, r)
				}
			}
		}
	}

	return in, nil
}

// ids renders prefix0..prefix(n-1), zero-padded so lexical order is
// numeric order.
func ids(prefix string, n int) []core.AgentID {
	width := len(strconv.Itoa(n - 1))
	out := make([]core.AgentID, n)
	for i := range out {
		out[i] = core.AgentID(fmt.Sprintf("%s%0*d", prefix, width, i))
	}

	return out
}

func randomProfile(owners, choices []core.AgentID, keep int, rng *rand.Rand) core.Prefs {
	prefs := make(core.Prefs, len(owners))
	for _, id := range owners {
		list := make(core.PrefList, len(choices))
		copy(list, choices)
		core.ShuffleIDs(list, rng)
		prefs[id] = list[:keep:keep]
	}

	return prefs
}
