// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmatch/assign"
	"github.com/katalvlaran/lvmatch/config"
	"github.com/katalvlaran/lvmatch/core"
	"github.com/katalvlaran/lvmatch/ingest"
	"github.com/katalvlaran/lvmatch/metrics"
	"github.com/katalvlaran/lvmatch/montecarlo"
	"github.com/katalvlaran/lvmatch/store"
)

type solveFlags struct {
	method      string
	blacklist   string
	trials      int
	weight      float64
	scorer      string
	warper      string
	boost       float64
	seed        int64
	workers     int
	jsonOut     bool
	progress    bool
	metricsFile string
}

func newSolveCmd(rf *rootFlags) *cobra.Command {
	sf := &solveFlags{}
	cmd := &cobra.Command{
		Use:   "solve PROPOSERS RECEIVERS",
		Short: "Match the agents of two preference files",
		Long: `Match the agents of two preference files.

Each file holds one agent per line: "name: first,second,third".
Lists may be partial; deferred_acceptance completes them at random in
every trial and scores matches against the lists as given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, rf, sf, args[0], args[1])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&sf.method, "method", "m", "", "deferred_acceptance or weighted_assignment")
	f.StringVarP(&sf.blacklist, "blacklist", "b", "", "Blacklist file of 'proposer,receiver' lines")
	f.IntVarP(&sf.trials, "trials", "n", 0, "Number of Monte-Carlo trials")
	f.Float64Var(&sf.weight, "weight", 0, "Weight of the proposers' score, in [0,1]")
	f.StringVar(&sf.scorer, "scorer", "", "binary (one_zero) or graded (frac)")
	f.StringVar(&sf.warper, "warper", "", "identity or exponential")
	f.Float64Var(&sf.boost, "boost", 0, "Bonus added to every non-zero score")
	f.Int64Var(&sf.seed, "seed", 0, "Random seed")
	f.IntVar(&sf.workers, "workers", 0, "Concurrent trial workers")
	f.BoolVar(&sf.jsonOut, "json", false, "Print the run record as JSON")
	f.BoolVar(&sf.progress, "progress", false, "Show a progress bar on stderr")
	f.StringVar(&sf.metricsFile, "metrics-file", "", "Write Prometheus text metrics to this file")

	return cmd
}

// apply overrides cfg with the flags set on the command line.
func (sf *solveFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("method") {
		cfg.Method = sf.method
	}
	if changed("trials") {
		cfg.Trials = sf.trials
	}
	if changed("weight") {
		cfg.Weight = sf.weight
	}
	if changed("scorer") {
		cfg.Scorer = sf.scorer
	}
	if changed("warper") {
		cfg.Warper = sf.warper
	}
	if changed("boost") {
		cfg.Boost = sf.boost
	}
	if changed("seed") {
		cfg.Seed = sf.seed
	}
	if changed("workers") {
		cfg.Workers = sf.workers
	}
}

func runSolve(cmd *cobra.Command, rf *rootFlags, sf *solveFlags, proposersPath, receiversPath string) error {
	cfg, err := rf.load()
	if err != nil {
		return err
	}
	sf.apply(cmd, cfg)
	if err = cfg.Validate(); err != nil {
		return err
	}
	log, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	in, err := loadInstance(proposersPath, receiversPath, sf.blacklist)
	if err != nil {
		return err
	}

	var collector *metrics.Collector
	if sf.metricsFile != "" {
		collector = metrics.New()
	}

	out := cmd.OutOrStdout()
	method := cfg.ParsedMethod()
	if !sf.jsonOut {
		fmt.Fprintf(out, "Solving using %s...\n", method)
	}

	var rec *store.Record
	switch method {
	case config.DeferredAcceptance:
		rec, err = solveDeferred(cmd.Context(), cmd.ErrOrStderr(), out, cfg, sf, in, log, collector)
	case config.WeightedAssignment:
		rec, err = solveAssignment(out, cfg, sf, in, log)
	}
	if err != nil {
		return err
	}

	if collector != nil {
		collector.RunFinished(string(method), rec.BestScore)
		if err = collector.WriteFile(sf.metricsFile); err != nil {
			return err
		}
	}
	if cfg.Store.Path != "" {
		if err = saveRecord(cmd.Context(), cfg.Store.Path, rec); err != nil {
			return err
		}
		log.Info("run saved", "id", rec.ID, "db", cfg.Store.Path)
	}
	if sf.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(rec)
	}
	if rec.ID != "" {
		fmt.Fprintf(out, "\nSaved run %s\n", rec.ID)
	}

	return nil
}

func loadInstance(proposersPath, receiversPath, blacklistPath string) (core.Instance, error) {
	proposers, err := ingest.LoadPrefsFile(proposersPath)
	if err != nil {
		return core.Instance{}, err
	}
	receivers, err := ingest.LoadPrefsFile(receiversPath)
	if err != nil {
		return core.Instance{}, err
	}
	if err = core.ValidateIDs(proposers, receivers); err != nil {
		return core.Instance{}, err
	}
	bl, err := ingest.LoadBlacklistFile(blacklistPath)
	if err != nil {
		return core.Instance{}, err
	}

	return core.Instance{Proposers: proposers, Receivers: receivers, Blacklist: bl}, nil
}

func solveDeferred(
	ctx context.Context,
	errOut, out io.Writer,
	cfg *config.Config,
	sf *solveFlags,
	in core.Instance,
	log *slog.Logger,
	collector *metrics.Collector,
) (*store.Record, error) {
	opts, err := cfg.MonteCarloOptions()
	if err != nil {
		return nil, err
	}
	opts.Logger = log

	var onTrial func(montecarlo.TrialEvent)
	if sf.progress {
		bar := progressbar.NewOptions(opts.Trials, progressbar.OptionSetWriter(errOut))
		onTrial = func(montecarlo.TrialEvent) { _ = bar.Add(1) }
	}
	if collector != nil {
		onTrial = collector.Hook(onTrial)
	}
	opts.OnTrial = onTrial

	res, err := montecarlo.Run(ctx, in, opts)
	var exhausted *montecarlo.ExhaustionError
	if errors.As(err, &exhausted) && !sf.jsonOut {
		fmt.Fprintf(out, "Discarded %d / %d solutions\n", exhausted.Discarded, exhausted.Trials)
	}
	if err != nil {
		return nil, err
	}

	if !sf.jsonOut {
		fmt.Fprintf(out, "Discarded %d / %d solutions\n", res.Discarded, res.Trials)
		fmt.Fprintf(out, "Top Score: %.2f%%\n", res.BestScore*100)
		printMatches(out, res.Best.Match)
	}

	return store.FromMonteCarlo(in, opts, res), nil
}

func solveAssignment(out io.Writer, cfg *config.Config, sf *solveFlags, in core.Instance, log *slog.Logger) (*store.Record, error) {
	if in.Blacklist.Len() > 0 {
		log.Warn("blacklist is ignored by weighted_assignment", "pairs", in.Blacklist.Len())
	}
	res, err := assign.Solve(in.Proposers, in.Receivers, cfg.Weight)
	if err != nil {
		return nil, err
	}

	if !sf.jsonOut {
		fmt.Fprintf(out, "Total Score: %.4f\n", res.Total)
		printMatches(out, res.Match)
	}

	return store.FromAssignment(in, cfg.Weight, res), nil
}

func printMatches(out io.Writer, m core.Match) {
	fmt.Fprintln(out, "Best Matches:")
	for _, p := range m.Pairs() {
		fmt.Fprintf(out, "    %s - %s\n", p.Proposer, p.Receiver)
	}
}

func saveRecord(ctx context.Context, path string, rec *store.Record) error {
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.Save(ctx, rec)

	return err
}
