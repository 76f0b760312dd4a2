package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmatch/assign"
	"github.com/katalvlaran/lvmatch/core"
	"github.com/katalvlaran/lvmatch/generator"
	"github.com/katalvlaran/lvmatch/montecarlo"
	"github.com/katalvlaran/lvmatch/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "nested", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func monteCarloRecord(t *testing.T) *store.Record {
	t.Helper()
	in, err := generator.Build(5, generator.WithSeed(6), generator.WithCompleteness(0.6),
		generator.WithBlacklistDensity(0.1))
	require.NoError(t, err)
	opts := montecarlo.DefaultOptions()
	opts.Trials = 15
	res, err := montecarlo.Run(context.Background(), in, opts)
	require.NoError(t, err)

	return store.FromMonteCarlo(in, opts, res)
}

func TestSaveGet_MonteCarlo(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	rec := monteCarloRecord(t)

	id, err := s.Save(ctx, rec)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, id, rec.ID)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, store.MethodDeferredAcceptance, got.Method)
	assert.True(t, got.Best.Equal(rec.Best))
	assert.Equal(t, rec.Instance.Proposers, got.Instance.Proposers)
	assert.Equal(t, rec.Instance.Blacklist.Pairs(), got.Instance.Blacklist.Pairs())
	assert.Equal(t, rec.BestScore, got.BestScore)
	assert.Len(t, got.History, len(rec.History))
	require.NotNil(t, got.Stats)
	assert.Equal(t, *rec.Stats, *got.Stats)
	assert.Equal(t, 15, got.Settings.Trials)
	assert.Equal(t, "binary", got.Settings.Scorer)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))

	again, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, got.BestScore, again.BestScore)
}

func TestSaveGet_Assignment(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	in := core.Instance{
		Proposers: core.Prefs{"A": {"X", "Y"}, "B": {"Y", "X"}},
		Receivers: core.Prefs{"X": {"B", "A"}, "Y": {"A", "B"}},
	}
	res, err := assign.Solve(in.Proposers, in.Receivers, 1)
	require.NoError(t, err)

	id, err := s.Save(ctx, store.FromAssignment(in, 1, res))
	require.NoError(t, err)
	got, err := s.Get(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, store.MethodWeightedAssignment, got.Method)
	assert.Equal(t, "graded", got.Settings.Scorer)
	assert.Equal(t, "exponential", got.Settings.Warper)
	assert.Equal(t, core.AgentID("X"), got.Best.ByProposer["A"])
	assert.Equal(t, core.AgentID("A"), got.Best.ByReceiver["X"])
	assert.Nil(t, got.Stats)
}

// TestGet_ReturnsIndependentCopies edits the first result and checks the
// cached second read is untouched.
func TestGet_ReturnsIndependentCopies(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	rec := monteCarloRecord(t)
	id, err := s.Save(ctx, rec)
	require.NoError(t, err)

	first, err := s.Get(ctx, id)
	require.NoError(t, err)
	first.BestScore = 99
	first.Instance.Proposers[first.Instance.Proposers.IDs()[0]][0] = "HACK"
	first.History = nil

	second, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, rec.BestScore, second.BestScore)
	assert.Equal(t, rec.Instance.Proposers, second.Instance.Proposers)
	assert.Len(t, second.History, len(rec.History))
}

func TestGet_NotFound(t *testing.T) {
	s := openStore(t)
	_, err := s.Get(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 4; i++ {
		rec := monteCarloRecord(t)
		rec.CreatedAt = base.Add(time.Duration(i) * 90 * time.Millisecond)
		id, err := s.Save(ctx, rec)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	sums, err := s.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, sums, 3)
	assert.Equal(t, []string{ids[3], ids[2], ids[1]}, []string{sums[0].ID, sums[1].ID, sums[2].ID})
	assert.Equal(t, 5, sums[0].Agents)
	assert.Equal(t, store.MethodDeferredAcceptance, sums[0].Method)

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestReopen_KeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := store.Open(path)
	require.NoError(t, err)
	id, err := s.Save(context.Background(), monteCarloRecord(t))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.Open(path)
	require.NoError(t, err)
	defer s.Close()
	_, err = s.Get(context.Background(), id)
	assert.NoError(t, err)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := store.Open("")
	assert.Error(t, err)
}
