// Package score maps a match against a preference list to a number.
//
// A per-pair score is built in three steps, fixed per run:
//
//	base : Binary: 1 if listed, else 0
//	       Graded: (n − rank) / n if listed, else 0
//	warp : Identity:    x
//	       Exponential: (eˣ − 1) / (e − 1)
//	boost: x + b if x > 0, else 0
//
// Base and Warp are closed enumerations resolved once from configuration;
// there is no per-call dispatch through function values.
//
// Two defaults exist on purpose: DefaultParams (Binary, Identity, 0) for the
// Monte-Carlo path, and AssignmentParams (Graded, Exponential, 1) which the
// weighted-assignment solver always uses.
package score

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lvmatch/core"
)

var (
	// ErrUnknownBase indicates an unrecognized base scorer name.
	ErrUnknownBase = errors.New("score: unknown base scorer")

	// ErrUnknownWarp indicates an unrecognized warper name.
	ErrUnknownWarp = errors.New("score: unknown warper")

	// ErrBadBoost indicates a negative or non-finite boost.
	ErrBadBoost = errors.New("score: boost must be a finite value ≥ 0")

	// ErrBadWeight indicates a weight outside [0, 1].
	ErrBadWeight = errors.New("score: weight must be within [0, 1]")
)

// Base selects the base scorer.
type Base int

const (
	// Binary scores 1 for any listed match.
	Binary Base = iota
	// Graded rewards higher-ranked matches more.
	Graded
)

// String returns the configuration name of b.
func (b Base) String() string {
	switch b {
	case Binary:
		return "binary"
	case Graded:
		return "graded"
	}

	return fmt.Sprintf("Base(%d)", int(b))
}

// ParseBase accepts "binary" and "graded" and the legacy aliases
// "one_zero" and "frac".
func ParseBase(s string) (Base, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "binary", "one_zero":
		return Binary, nil
	case "graded", "frac":
		return Graded, nil
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownBase)
}

// Warp selects the warper.
type Warp int

const (
	// Identity leaves the base score unchanged.
	Identity Warp = iota
	// Exponential emphasises high base scores.
	Exponential
)

// String returns the configuration name of w.
func (w Warp) String() string {
	switch w {
	case Identity:
		return "identity"
	case Exponential:
		return "exponential"
	}

	return fmt.Sprintf("Warp(%d)", int(w))
}

// ParseWarp accepts "identity" and "exponential".
func ParseWarp(s string) (Warp, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "identity":
		return Identity, nil
	case "exponential":
		return Exponential, nil
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownWarp)
}

// BinaryScore is 1 if match is listed in prefs, else 0.
func BinaryScore(match core.AgentID, prefs core.PrefList) float64 {
	if prefs.Contains(match) {
		return 1
	}

	return 0
}

// GradedScore is (n − rank) / n if match is listed in prefs, else 0.
func GradedScore(match core.AgentID, prefs core.PrefList) float64 {
	rank, ok := prefs.Rank(match)
	if !ok {
		return 0
	}

	return graded(rank, len(prefs))
}

func graded(rank, n int) float64 {
	return float64(n-rank) / float64(n)
}

// ExponentialWarp maps [0,1] onto [0,1] convexly: (eˣ − 1) / (e − 1).
func ExponentialWarp(x float64) float64 {
	return math.Expm1(x) / (math.E - 1)
}

// Boost adds b to positive scores and leaves the rest at zero.
func Boost(x, b float64) float64 {
	if x > 0 {
		return x + b
	}

	return 0
}

// ValidateWeight rejects weights outside [0, 1] (and NaN).
func ValidateWeight(w float64) error {
	if !(w >= 0 && w <= 1) {
		return fmt.Errorf("%v: %w", w, ErrBadWeight)
	}

	return nil
}
