package montecarlo_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmatch/core"
	"github.com/katalvlaran/lvmatch/generator"
	"github.com/katalvlaran/lvmatch/montecarlo"
	"github.com/katalvlaran/lvmatch/score"
)

func opts(trials int) montecarlo.Options {
	o := montecarlo.DefaultOptions()
	o.Trials = trials

	return o
}

func partialInstance(t *testing.T, seed int64) core.Instance {
	t.Helper()
	in, err := generator.Build(10,
		generator.WithSeed(seed),
		generator.WithCompleteness(0.4),
		generator.WithBlacklistDensity(0.05))
	require.NoError(t, err)

	return in
}

func TestRun_CompleteInstance(t *testing.T) {
	in := core.Instance{
		Proposers: core.Prefs{"A": {"X", "Y"}, "B": {"Y", "X"}},
		Receivers: core.Prefs{"X": {"B", "A"}, "Y": {"A", "B"}},
	}
	res, err := montecarlo.Run(context.Background(), in, opts(20))
	require.NoError(t, err)

	assert.Equal(t, core.AgentID("X"), res.Best.Match.ByProposer["A"])
	assert.Equal(t, core.AgentID("Y"), res.Best.Match.ByProposer["B"])
	assert.InDelta(t, 1.0, res.BestScore, 1e-12, "binary scoring: every agent listed its partner")
	assert.Equal(t, 0, res.Best.Index)
	assert.Len(t, res.History, 20)
	assert.Zero(t, res.Stats.StdDev)
}

func TestRun_Exhaustion(t *testing.T) {
	bl := core.Blacklist{}
	bl.Add("A", "X")
	in := core.Instance{
		Proposers: core.Prefs{"A": {"X"}},
		Receivers: core.Prefs{"X": {"A"}},
		Blacklist: bl,
	}

	var events int
	o := opts(50)
	o.OnTrial = func(ev montecarlo.TrialEvent) {
		events++
		assert.True(t, ev.Discarded)
		assert.Equal(t, core.Pair{Proposer: "A", Receiver: "X"}, ev.Blocked)
	}
	res, err := montecarlo.Run(context.Background(), in, o)
	assert.Nil(t, res)
	require.ErrorIs(t, err, montecarlo.ErrExhausted)

	var ex *montecarlo.ExhaustionError
	require.True(t, errors.As(err, &ex))
	assert.Equal(t, 50, ex.Trials)
	assert.Equal(t, 50, ex.Discarded)
	assert.Equal(t, 50, events, "all trials run before exhaustion is reported")
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	in := partialInstance(t, 17)

	seq := opts(60)
	seq.Seed = 99
	want, err := montecarlo.Run(context.Background(), in, seq)
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 7} {
		par := seq
		par.Workers = workers
		got, err := montecarlo.Run(context.Background(), in, par)
		require.NoError(t, err)
		assert.Equal(t, want, got, "workers=%d", workers)
	}
}

func TestRun_BestDominatesHistory(t *testing.T) {
	in := partialInstance(t, 4)
	o := opts(80)
	o.Score = score.Params{Base: score.Graded, Warp: score.Exponential, Boost: 0.5}
	o.Weight = 0.3

	res, err := montecarlo.Run(context.Background(), in, o)
	require.NoError(t, err)
	require.Len(t, res.History, res.Admitted())

	prev := -1
	for _, tr := range res.History {
		assert.Greater(t, tr.Index, prev, "history is in trial order")
		prev = tr.Index
		assert.LessOrEqual(t, tr.Overall, res.BestScore)
		if tr.Overall == res.BestScore {
			assert.GreaterOrEqual(t, tr.Index, res.Best.Index, "ties go to the lowest index")
		}
		require.NoError(t, tr.Match.Validate(in.Proposers.IDs(), in.Receivers.IDs()))
		_, blocked := in.Blacklist.Violates(tr.Match)
		assert.False(t, blocked)
	}
	assert.InDelta(t, res.BestScore, res.Stats.Max, 1e-12)
	assert.LessOrEqual(t, res.Stats.Min, res.Stats.Mean)
}

// TestRun_ScoresRawPreferences checks that completed entries earn nothing:
// with empty raw lists every binary score is zero.
func TestRun_ScoresRawPreferences(t *testing.T) {
	in, err := generator.Build(5, generator.WithSeed(1), generator.WithCompleteness(0))
	require.NoError(t, err)

	res, err := montecarlo.Run(context.Background(), in, opts(10))
	require.NoError(t, err)
	assert.Zero(t, res.BestScore)
	assert.Equal(t, 0, res.Best.Index)
	assert.Len(t, res.Best.Proposers["P0"], 5, "trial keeps the completed lists")
}

func TestRun_ValidationPropagates(t *testing.T) {
	in := core.Instance{
		Proposers: core.Prefs{"A": {"X"}, "B": {}},
		Receivers: core.Prefs{"X": {"A"}},
	}
	_, err := montecarlo.Run(context.Background(), in, opts(5))
	assert.ErrorIs(t, err, core.ErrSizeMismatch)

	in = core.Instance{
		Proposers: core.Prefs{"A": {"Z"}},
		Receivers: core.Prefs{"X": {}},
	}
	o := opts(5)
	o.Workers = 3
	_, err = montecarlo.Run(context.Background(), in, o)
	assert.ErrorIs(t, err, core.ErrUnknownAgent)
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestRun_BadOptions(t *testing.T) {
	in := partialInstance(t, 1)
	for name, mutate := range map[string]func(*montecarlo.Options){
		"trials":  func(o *montecarlo.Options) { o.Trials = 0 },
		"workers": func(o *montecarlo.Options) { o.Workers = 0 },
		"weight":  func(o *montecarlo.Options) { o.Weight = -0.1 },
		"boost":   func(o *montecarlo.Options) { o.Score.Boost = -1 },
	} {
		o := opts(3)
		mutate(&o)
		_, err := montecarlo.Run(context.Background(), in, o)
		assert.ErrorIs(t, err, montecarlo.ErrBadOptions, name)
	}
}

func TestRun_Cancelled(t *testing.T) {
	in := partialInstance(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		o := opts(100)
		o.Workers = workers
		_, err := montecarlo.Run(ctx, in, o)
		assert.ErrorIs(t, err, context.Canceled, "workers=%d", workers)
	}
}

// TestRun_CancelAfterLastTrialKeepsResult cancels from the hook once every
// outcome has been collected; the finished run must still be returned.
func TestRun_CancelAfterLastTrialKeepsResult(t *testing.T) {
	in, err := generator.Build(6, generator.WithSeed(4))
	require.NoError(t, err)

	for _, workers := range []int{1, 3} {
		ctx, cancel := context.WithCancel(context.Background())
		o := opts(40)
		o.Workers = workers
		seen := 0
		o.OnTrial = func(montecarlo.TrialEvent) {
			seen++
			if seen == o.Trials {
				cancel()
			}
		}

		res, err := montecarlo.Run(ctx, in, o)
		require.NoError(t, err, "workers=%d", workers)
		assert.Equal(t, 40, res.Trials)
		assert.Len(t, res.History, 40)
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
		cancel()
	}
}

func TestRun_NoHistory(t *testing.T) {
	in := partialInstance(t, 3)
	o := opts(30)
	o.KeepHistory = false

	res, err := montecarlo.Run(context.Background(), in, o)
	require.NoError(t, err)
	assert.Nil(t, res.History)
	assert.NotEmpty(t, res.Best.Match.ByProposer)
}

func TestRun_LogsDiscards(t *testing.T) {
	bl := core.Blacklist{}
	bl.Add("A", "X")
	in := core.Instance{
		Proposers: core.Prefs{"A": {}, "B": {}},
		Receivers: core.Prefs{"X": {}, "Y": {}},
		Blacklist: bl,
	}
	var buf bytes.Buffer
	o := opts(40)
	o.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	res, err := montecarlo.Run(context.Background(), in, o)
	require.NoError(t, err)
	assert.Positive(t, res.Discarded)
	assert.Equal(t, core.AgentID("Y"), res.Best.Match.ByProposer["A"])
	assert.Contains(t, buf.String(), "trial discarded")
	assert.Contains(t, buf.String(), "monte carlo run finished")
}

func BenchmarkRun_Parallel(b *testing.B) {
	in, err := generator.Build(20, generator.WithSeed(1), generator.WithCompleteness(0.3))
	if err != nil {
		b.Fatal(err)
	}
	o := montecarlo.DefaultOptions()
	o.Trials = 200
	o.Workers = 4
	o.KeepHistory = false
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = montecarlo.Run(context.Background(), in, o); err != nil {
			b.Fatal(err)
		}
	}
}
