package assign_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvmatch/assign"
	"github.com/katalvlaran/lvmatch/core"
	"github.com/katalvlaran/lvmatch/generator"
	"github.com/katalvlaran/lvmatch/score"
)

const eps = 1e-9

func crossed() (core.Prefs, core.Prefs) {
	return core.Prefs{"A": {"X", "Y"}, "B": {"Y", "X"}},
		core.Prefs{"X": {"B", "A"}, "Y": {"A", "B"}}
}

// TestSolve_WeightSelectsSide checks that weight 1 follows proposers only
// and weight 0 follows receivers only.
func TestSolve_WeightSelectsSide(t *testing.T) {
	p, r := crossed()

	res, err := assign.Solve(p, r, 1)
	require.NoError(t, err)
	assert.Equal(t, core.AgentID("X"), res.Match.ByProposer["A"])
	assert.Equal(t, core.AgentID("Y"), res.Match.ByProposer["B"])
	assert.InDelta(t, 4.0, res.Total, eps, "both proposers get their top pick: 2+2")

	res, err = assign.Solve(p, r, 0)
	require.NoError(t, err)
	assert.Equal(t, core.AgentID("Y"), res.Match.ByProposer["A"])
	assert.Equal(t, core.AgentID("X"), res.Match.ByProposer["B"])
	assert.InDelta(t, 4.0, res.Total, eps)
}

// TestSolve_TotalRoundTrip recomputes the reported total independently
// from the returned pairing with the composite scorer.
func TestSolve_TotalRoundTrip(t *testing.T) {
	params := score.AssignmentParams()
	for seed := int64(1); seed <= 10; seed++ {
		in, err := generator.Build(9, generator.WithSeed(seed))
		require.NoError(t, err)
		w := float64(seed%5) / 4

		res, err := assign.Solve(in.Proposers, in.Receivers, w)
		require.NoError(t, err)
		require.NoError(t, res.Match.Validate(in.Proposers.IDs(), in.Receivers.IDs()))

		var want float64
		for _, pr := range res.Match.Pairs() {
			want += w*params.Pair(pr.Receiver, in.Proposers[pr.Proposer]) +
				(1-w)*params.Pair(pr.Proposer, in.Receivers[pr.Receiver])
		}
		assert.InDelta(t, want, res.Total, eps, "seed %d", seed)
	}
}

// TestBuild_TransposeAlignment verifies Receiver[i][j] scores proposer i in
// receiver j's own list.
func TestBuild_TransposeAlignment(t *testing.T) {
	p := core.Prefs{"A": {"X", "Y", "Z"}, "B": {"X", "Y", "Z"}, "C": {"X", "Y", "Z"}}
	r := core.Prefs{"X": {"C", "B", "A"}, "Y": {"A", "B", "C"}, "Z": {"B", "C", "A"}}
	ms, err := assign.Build(p, r, 0.5)
	require.NoError(t, err)

	params := score.AssignmentParams()
	for i := 0; i < ms.Rows.Len(); i++ {
		for j := 0; j < ms.Cols.Len(); j++ {
			prop, recv := ms.Rows.ID(i), ms.Cols.ID(j)
			assert.InDelta(t, params.Pair(recv, p[prop]), ms.Proposer.At(i, j), eps)
			assert.InDelta(t, params.Pair(prop, r[recv]), ms.Receiver.At(i, j), eps)
			assert.InDelta(t, 0.5*ms.Proposer.At(i, j)+0.5*ms.Receiver.At(i, j), ms.Combined.At(i, j), eps)
		}
	}

	cost := ms.Cost()
	assert.InDelta(t, 0.0, mat.Min(cost), eps, "the best cell costs zero")
}

func TestSolve_Validation(t *testing.T) {
	p, r := crossed()

	_, err := assign.Solve(p, core.Prefs{"X": {"A", "B"}}, 0.5)
	assert.ErrorIs(t, err, core.ErrSizeMismatch)

	p["A"] = core.PrefList{"X"}
	_, err = assign.Solve(p, r, 0.5)
	assert.ErrorIs(t, err, core.ErrIncompletePrefs)

	p, r = crossed()
	_, err = assign.Solve(p, r, 1.5)
	assert.ErrorIs(t, err, score.ErrBadWeight)
}

// TestHungarian_MatchesBruteForce compares against exhaustive search on
// small random matrices.
func TestHungarian_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 1; n <= 6; n++ {
		for trial := 0; trial < 20; trial++ {
			data := make([]float64, n*n)
			for k := range data {
				data[k] = math.Round(rng.Float64()*100) / 10
			}
			cost := mat.NewDense(n, n, data)

			rowToCol, err := assign.Hungarian(cost)
			require.NoError(t, err)
			assert.ElementsMatch(t, identityPerm(n), rowToCol, "must be a permutation")

			got := 0.0
			for i, j := range rowToCol {
				got += cost.At(i, j)
			}
			assert.InDelta(t, bruteForceMin(cost, n), got, eps, "n=%d trial=%d", n, trial)
		}
	}
}

func TestHungarian_Errors(t *testing.T) {
	_, err := assign.Hungarian(mat.NewDense(2, 3, nil))
	assert.ErrorIs(t, err, assign.ErrNotSquare)

	_, err = assign.Hungarian(mat.NewDense(2, 2, []float64{0, math.NaN(), 1, 2}))
	assert.ErrorIs(t, err, assign.ErrNonFinite)
}

func TestIndex(t *testing.T) {
	ix := assign.NewIndex([]core.AgentID{"b", "a", "c"})
	assert.Equal(t, 3, ix.Len())
	assert.Equal(t, core.AgentID("a"), ix.ID(1))
	pos, ok := ix.Pos("c")
	assert.True(t, ok)
	assert.Equal(t, 2, pos)
	_, ok = ix.Pos("z")
	assert.False(t, ok)
}

func identityPerm(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}

func bruteForceMin(cost mat.Matrix, n int) float64 {
	perm := identityPerm(n)
	best := math.Inf(1)
	var rec func(k int)
	rec = func(k int) {
		if k == n {
			s := 0.0
			for i, j := range perm {
				s += cost.At(i, j)
			}
			best = math.Min(best, s)

			return
		}
		for i := k; i < n; i++ {
			perm[k], perm[i] = perm[i], perm[k]
			rec(k + 1)
			perm[k], perm[i] = perm[i], perm[k]
		}
	}
	rec(0)

	return best
}

func BenchmarkSolve_64(b *testing.B) {
	in, err := generator.Build(64, generator.WithSeed(3))
	if err != nil {
		b.Fatalf("generator.Build: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = assign.Solve(in.Proposers, in.Receivers, 0.5); err != nil {
			b.Fatalf("Solve: %v", err)
		}
	}
}
