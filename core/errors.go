// SPDX-License-Identifier: MIT
// Package core - sentinel errors and the typed validation error.
//
// Error policy:
//   - Sentinels are package-level and prefixed with "core: ".
//   - Callers branch with errors.Is / errors.As, never on strings.
//   - ValidationError carries the offending side/agent and unwraps to both
//     ErrValidation and the specific sentinel.

package core

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the umbrella sentinel matched by every input defect.
	ErrValidation = errors.New("core: invalid matching input")

	// ErrEmptyProfile indicates a side without any agents.
	ErrEmptyProfile = errors.New("core: empty preference profile")

	// ErrSizeMismatch indicates that proposers and receivers differ in count.
	ErrSizeMismatch = errors.New("core: group sizes differ")

	// ErrIncompletePrefs indicates a preference list that omits an agent of
	// the opposite side.
	ErrIncompletePrefs = errors.New("core: incomplete preference list")

	// ErrDuplicatePref indicates an agent ranked twice in one list.
	ErrDuplicatePref = errors.New("core: duplicate entry in preference list")

	// ErrUnknownAgent indicates a list entry that is not an agent of the
	// opposite side.
	ErrUnknownAgent = errors.New("core: unknown agent in preference list")

	// ErrEmptyAgentID indicates an empty identifier.
	ErrEmptyAgentID = errors.New("core: agent id is empty")

	// ErrNotBijection indicates a match that does not pair every agent
	// exactly once.
	ErrNotBijection = errors.New("core: match is not a bijection")
)

// ValidationError reports a single input defect found before any matching
// state was built.
type ValidationError struct {
	// Side is the group whose profile holds the defect.
	Side Side
	// Agent owns the defective list; empty for profile-level defects.
	Agent AgentID
	// Entry is the offending list entry, if any.
	Entry AgentID
	// Err is the specific sentinel (ErrIncompletePrefs, ...).
	Err error
}

// Error implements error.
func (e *ValidationError) Error() string {
	switch {
	case e.Agent == "":
		return fmt.Sprintf("%s: %v", e.Side, e.Err)
	case e.Entry == "":
		return fmt.Sprintf("%s %q: %v", e.Side, e.Agent, e.Err)
	default:
		return fmt.Sprintf("%s %q: %v (%q)", e.Side, e.Agent, e.Err, e.Entry)
	}
}

// Unwrap exposes both the umbrella and the specific sentinel.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

func invalid(side Side, agent, entry AgentID, err error) error {
	return &ValidationError{Side: side, Agent: agent, Entry: entry, Err: err}
}
