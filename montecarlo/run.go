// SPDX-License-Identifier: MIT

package montecarlo

import (
	"context"
	"log/slog"
	"sync"

	"github.com/katalvlaran/lvmatch/completion"
	"github.com/katalvlaran/lvmatch/core"
	"github.com/katalvlaran/lvmatch/score"
	"github.com/katalvlaran/lvmatch/stable"
)

// Run performs opts.Trials randomized trials on in and returns the best
// admissible one.
//
// Errors:
//   - ErrBadOptions for invalid opts;
//   - *core.ValidationError from the solver (the first one aborts the run);
//   - *ExhaustionError when every trial was discarded;
//   - ctx.Err() when ctx is cancelled before all trials finished.
//
// Complexity: O(Trials · n²) time; O(Trials · n²) space with history,
// O(Trials + n²) without.
func Run(ctx context.Context, in core.Instance, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log.Info("monte carlo run started",
		"agents", in.Size(), "trials", opts.Trials, "workers", opts.Workers,
		"blacklisted", in.Blacklist.Len(), "seed", opts.Seed)

	agg := newAggregator(opts, log)
	var err error
	if opts.Workers == 1 {
		err = runSequential(ctx, in, opts, agg)
	} else {
		err = runParallel(ctx, in, opts, agg)
	}
	if err != nil {
		return nil, err
	}

	res, err := agg.result()
	if err != nil {
		log.Warn("monte carlo run exhausted", "discarded", agg.discarded, "trials", opts.Trials)

		return nil, err
	}
	log.Info("monte carlo run finished",
		"best_score", res.BestScore, "best_trial", res.Best.Index, "discarded", res.Discarded)

	return res, nil
}

type outcome struct {
	trial     Trial
	discarded bool
	blocked   core.Pair
	err       error
}

// runTrial executes trial i on its own stream.
func runTrial(i int, in core.Instance, opts Options) outcome {
	rng := core.StreamRand(opts.Seed, uint64(i))
	pc, rc := completion.Pair(in.Proposers, in.Receivers, rng)

	m, err := stable.Solve(pc, rc, rng)
	if err != nil {
		return outcome{err: err}
	}
	if pair, bad := in.Blacklist.Violates(m); bad {
		return outcome{trial: Trial{Index: i}, discarded: true, blocked: pair}
	}

	pScores, pTotal := score.Assignment(m.ByProposer, in.Proposers, opts.Score)
	rScores, rTotal := score.Assignment(m.ByReceiver, in.Receivers, opts.Score)
	w := opts.Weight

	return outcome{trial: Trial{
		Index:          i,
		Proposers:      pc,
		Receivers:      rc,
		Match:          m,
		ProposerScores: pScores,
		ReceiverScores: rScores,
		ProposerTotal:  pTotal,
		ReceiverTotal:  rTotal,
		Overall:        (w*pTotal + (1-w)*rTotal) / float64(m.Len()),
	}}
}

func runSequential(ctx context.Context, in core.Instance, opts Options, agg *aggregator) error {
	for i := 0; i < opts.Trials; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		out := runTrial(i, in, opts)
		if out.err != nil {
			return out.err
		}
		agg.add(out)
	}

	return nil
}

// runParallel fans trial indices out to opts.Workers goroutines; the
// calling goroutine is the single collector.
func runParallel(parent context.Context, in core.Instance, opts Options, agg *aggregator) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	jobs := make(chan int)
	results := make(chan outcome, opts.Workers)

	go func() {
		defer close(jobs)
		for i := 0; i < opts.Trials; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case results <- runTrial(i, in, opts):
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	for out := range results {
		if firstErr != nil {
			continue
		}
		if out.err != nil {
			firstErr = out.err
			cancel()

			continue
		}
		agg.add(out)
	}
	if firstErr != nil {
		return firstErr
	}
	if agg.collected < opts.Trials {
		return parent.Err()
	}

	return nil
}

// aggregator folds outcomes; it is owned by one goroutine.
type aggregator struct {
	opts Options
	log  *slog.Logger

	best      Trial
	hasBest   bool
	discarded int
	collected int

	admitted []bool
	overall  []float64
	history  []Trial
}

func newAggregator(opts Options, log *slog.Logger) *aggregator {
	agg := &aggregator{
		opts:     opts,
		log:      log,
		admitted: make([]bool, opts.Trials),
		overall:  make([]float64, opts.Trials),
	}
	if opts.KeepHistory {
		agg.history = make([]Trial, opts.Trials)
	}

	return agg
}

func (a *aggregator) add(out outcome) {
	t := out.trial
	a.collected++
	if a.opts.OnTrial != nil {
		a.opts.OnTrial(TrialEvent{
			Index:     t.Index,
			Discarded: out.discarded,
			Blocked:   out.blocked,
			Overall:   t.Overall,
		})
	}
	if out.discarded {
		a.discarded++
		a.log.Debug("trial discarded", "trial", t.Index,
			"proposer", out.blocked.Proposer, "receiver", out.blocked.Receiver)

		return
	}

	a.admitted[t.Index] = true
	a.overall[t.Index] = t.Overall
	if a.history != nil {
		a.history[t.Index] = t
	}
	if !a.hasBest || t.Overall > a.best.Overall ||
		(t.Overall == a.best.Overall && t.Index < a.best.Index) {
		a.best, a.hasBest = t, true
	}
}

func (a *aggregator) result() (*Result, error) {
	if !a.hasBest {
		return nil, &ExhaustionError{Trials: a.opts.Trials, Discarded: a.discarded}
	}

	scores := make([]float64, 0, len(a.overall)-a.discarded)
	var history []Trial
	if a.history != nil {
		history = make([]Trial, 0, cap(scores))
	}
	for i, ok := range a.admitted {
		if !ok {
			continue
		}
		scores = append(scores, a.overall[i])
		if a.history != nil {
			history = append(history, a.history[i])
		}
	}

	return &Result{
		Best:      a.best,
		BestScore: a.best.Overall,
		Trials:    a.opts.Trials,
		Discarded: a.discarded,
		History:   history,
		Stats:     summarize(scores),
	}, nil
}
