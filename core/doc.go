// SPDX-License-Identifier: MIT
// Package core defines the data model shared by every lvmatch solver:
// agent identifiers, ranked preference lists, preference profiles,
// blacklists and two-sided matches.
//
// Two groups of equal size take part in a matching:
//
//	proposers  ── ranked lists over receivers
//	receivers  ── ranked lists over proposers
//
// A preference list is complete when it ranks every agent of the opposite
// side exactly once. Solvers require complete lists; see completion for
// the randomized filler used by the Monte-Carlo path.
//
// A Match is a bijection stored in both directions (ByProposer and
// ByReceiver). Constructors derive one view from the other so the two can
// never drift apart.
//
// Validation:
//
//	ValidatePair(proposers, receivers) fails fast with a *ValidationError
//	naming the side, agent and defect. Every validation failure matches
//	errors.Is(err, ErrValidation) plus its specific sentinel
//	(ErrSizeMismatch, ErrIncompletePrefs, ErrDuplicatePref, ErrUnknownAgent,
//	ErrEmptyProfile).
//
// Randomness:
//
//	rng.go centralizes seeded *rand.Rand construction. StreamRand derives an
//	independent stream per (seed, stream) pair so parallel trials stay
//	reproducible regardless of scheduling.
package core
