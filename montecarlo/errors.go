// SPDX-License-Identifier: MIT

package montecarlo

import (
	"errors"
	"fmt"
)

var (
	// ErrExhausted is matched by *ExhaustionError.
	ErrExhausted = errors.New("montecarlo: every trial was blacklisted")

	// ErrBadOptions is returned for out-of-range Options.
	ErrBadOptions = errors.New("montecarlo: invalid options")
)

// ExhaustionError reports a run in which no trial survived the blacklist.
type ExhaustionError struct {
	Trials    int
	Discarded int
}

func (e *ExhaustionError) Error() string {
	return fmt.Sprintf("montecarlo: discarded %d / %d solutions; remove pairs from the blacklist and try again",
		e.Discarded, e.Trials)
}

// Unwrap lets errors.Is(err, ErrExhausted) succeed.
func (e *ExhaustionError) Unwrap() error { return ErrExhausted }
