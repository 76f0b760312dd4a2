package assign

import (
	"github.com/katalvlaran/lvmatch/core"
)

// Result is the outcome of Solve.
type Result struct {
	// Match pairs every proposer with exactly one receiver.
	Match core.Match
	// Total is the sum of combined scores over the chosen pairs.
	Total float64
}

// Solve returns the assignment maximising the total combined score
// w·proposer_score + (1−w)·receiver_score. Both profiles must be complete
// and of equal size; weight must lie in [0, 1].
//
// Errors: *core.ValidationError for malformed profiles, score.ErrBadWeight
// for a weight out of range. Solve never discards: it has no blacklist.
func Solve(proposers, receivers core.Prefs, weight float64) (Result, error) {
	ms, err := Build(proposers, receivers, weight)
	if err != nil {
		return Result{}, err
	}

	rowToCol, err := Hungarian(ms.Cost())
	if err != nil {
		return Result{}, err
	}

	byProposer := make(map[core.AgentID]core.AgentID, len(rowToCol))
	var total float64
	for i, j := range rowToCol {
		byProposer[ms.Rows.ID(i)] = ms.Cols.ID(j)
		total += ms.Combined.At(i, j)
	}

	return Result{Match: core.NewMatchFromProposers(byProposer), Total: total}, nil
}
