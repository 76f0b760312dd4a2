// SPDX-License-Identifier: MIT
// Package core - validation shared by the deferred-acceptance and
// weighted-assignment solvers.
//
// Design principles:
//   - Runs before any solver state is allocated; nothing is partially computed.
//   - Deterministic: agents are scanned in sorted order, so the reported
//     defect for a given input is always the same one.
//   - No logging, no panics; only *ValidationError values.

package core

// ValidatePair verifies that both profiles describe a well-formed problem:
//   - neither side is empty,
//   - both sides have the same number of agents,
//   - every list on both sides ranks exactly the opposite side's agents.
//
// Complexity: O(n²) time, O(n) extra space.
func ValidatePair(proposers, receivers Prefs) error {
	// Stage 1: profile-level shape.
	if len(proposers) == 0 {
		return invalid(Proposers, "", "", ErrEmptyProfile)
	}
	if len(receivers) == 0 {
		return invalid(Receivers, "", "", ErrEmptyProfile)
	}
	if len(proposers) != len(receivers) {
		return invalid(Receivers, "", "", ErrSizeMismatch)
	}

	// Stage 2: per-list completeness on each side.
	if err := validateSide(Proposers, proposers, receivers); err != nil {
		return err
	}

	return validateSide(Receivers, receivers, proposers)
}

// ValidateIDs rejects empty identifiers on either side.
func ValidateIDs(proposers, receivers Prefs) error {
	for _, id := range proposers.IDs() {
		if id == "" {
			return invalid(Proposers, "", "", ErrEmptyAgentID)
		}
	}
	for _, id := range receivers.IDs() {
		if id == "" {
			return invalid(Receivers, "", "", ErrEmptyAgentID)
		}
	}

	return nil
}

func validateSide(side Side, prefs, opposite Prefs) error {
	choices := make(map[AgentID]struct{}, len(opposite))
	for id := range opposite {
		choices[id] = struct{}{}
	}
	for _, agent := range prefs.IDs() {
		if err := checkList(prefs[agent], choices); err != nil {
			verr := err.(*ValidationError)
			verr.Side = side
			verr.Agent = agent

			return verr
		}
	}

	return nil
}

// checkList returns a *ValidationError (side/agent unset) when list is not
// a permutation of choices.
func checkList(list PrefList, choices map[AgentID]struct{}) error {
	seen := make(map[AgentID]struct{}, len(list))
	for _, id := range list {
		if _, ok := choices[id]; !ok {
			return &ValidationError{Entry: id, Err: ErrUnknownAgent}
		}
		if _, dup := seen[id]; dup {
			return &ValidationError{Entry: id, Err: ErrDuplicatePref}
		}
		seen[id] = struct{}{}
	}
	if len(seen) != len(choices) {
		return &ValidationError{Err: ErrIncompletePrefs}
	}

	return nil
}
