// SPDX-License-Identifier: MIT
// Package completion fills partial preference lists.
//
// Every list keeps its supplied prefix verbatim and gets the missing agents
// of the opposite side appended in a uniformly random order. The injected
// *rand.Rand is the only source of randomness: with the same stream the
// result is identical, because agents and missing entries are visited in a
// fixed (sorted) order.
//
// Entries that are not agents of the opposite side are kept as-is; the
// solvers reject them during validation.
package completion

import (
	"math/rand"
	"slices"

	"github.com/katalvlaran/lvmatch/core"
)

// List returns prefix followed by a random permutation of the elements of
// choices that prefix does not contain. prefix is never modified.
// If rng==nil the default deterministic stream is used.
//
// Complexity: O(len(prefix) + len(choices)) time and space.
func List(prefix core.PrefList, choices []core.AgentID, rng *rand.Rand) core.PrefList {
	present := make(map[core.AgentID]struct{}, len(prefix))
	for _, id := range prefix {
		present[id] = struct{}{}
	}

	missing := make([]core.AgentID, 0, len(choices))
	for _, id := range choices {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	core.ShuffleIDs(missing, rng)

	out := make(core.PrefList, 0, len(prefix)+len(missing))
	out = append(out, prefix...)

	return append(out, missing...)
}

// Complete returns a new profile in which every list of prefs is completed
// against choices. choices is sorted on a private copy so the caller's
// ordering does not affect the outcome for a given stream.
//
// Complexity: O(n·m) for n agents and m choices.
func Complete(prefs core.Prefs, choices []core.AgentID, rng *rand.Rand) core.Prefs {
	sorted := slices.Clone(choices)
	slices.Sort(sorted)

	out := make(core.Prefs, len(prefs))
	for _, id := range prefs.IDs() {
		out[id] = List(prefs[id], sorted, rng)
	}

	return out
}

// Pair completes both sides against each other's agent set, proposers
// first, from the same stream.
func Pair(proposers, receivers core.Prefs, rng *rand.Rand) (core.Prefs, core.Prefs) {
	pc := Complete(proposers, receivers.IDs(), rng)
	rc := Complete(receivers, proposers.IDs(), rng)

	return pc, rc
}
