package assign

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvmatch/core"
	"github.com/katalvlaran/lvmatch/score"
)

// Matrices holds the aligned score matrices of one instance.
// Row i is proposer Rows.ID(i); column j is receiver Cols.ID(j) in all three.
type Matrices struct {
	Rows Index
	Cols Index

	// Proposer[i][j] scores receiver j in proposer i's list.
	Proposer *mat.Dense
	// Receiver[i][j] scores proposer i in receiver j's list.
	Receiver *mat.Dense
	// Combined = w·Proposer + (1−w)·Receiver.
	Combined *mat.Dense
}

// Build validates both profiles and the weight, then builds the aligned
// score matrices with score.AssignmentParams.
//
// Complexity: O(n²) time and space.
func Build(proposers, receivers core.Prefs, weight float64) (*Matrices, error) {
	if err := core.ValidatePair(proposers, receivers); err != nil {
		return nil, err
	}
	if err := score.ValidateWeight(weight); err != nil {
		return nil, err
	}

	params := score.AssignmentParams()
	rows := NewIndex(proposers.IDs())
	cols := NewIndex(receivers.IDs())

	pm := scoreMatrix(rows, cols, proposers, params)

	// Built receivers×proposers, then transposed onto the proposer layout.
	rm := scoreMatrix(cols, rows, receivers, params)
	var rt mat.Dense
	rt.CloneFrom(rm.T())

	var wp, wr, combined mat.Dense
	wp.Scale(weight, pm)
	wr.Scale(1-weight, &rt)
	combined.Add(&wp, &wr)

	return &Matrices{
		Rows:     rows,
		Cols:     cols,
		Proposer: pm,
		Receiver: &rt,
		Combined: &combined,
	}, nil
}

// Cost converts Combined into a minimization matrix: max(Combined) − Combined.
// The constant shift keeps the arg-max assignment as the arg-min one and all
// entries non-negative.
func (m *Matrices) Cost() *mat.Dense {
	top := mat.Max(m.Combined)
	var cost mat.Dense
	cost.Apply(func(_, _ int, v float64) float64 { return top - v }, m.Combined)

	return &cost
}

// scoreMatrix fills rows×cols with params scores, walking each row agent's
// list once and placing entries through the column index; unlisted cells
// stay 0, which is what the composite scorer yields for absent agents.
func scoreMatrix(rows, cols Index, prefs core.Prefs, params score.Params) *mat.Dense {
	m := mat.NewDense(rows.Len(), cols.Len(), nil)
	for i := 0; i < rows.Len(); i++ {
		list := prefs[rows.ID(i)]
		for rank, id := range list {
			j, ok := cols.Pos(id)
			if !ok {
				continue
			}
			m.Set(i, j, params.FromRank(rank, len(list)))
		}
	}

	return m
}
