// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmatch/config"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
	dbPath     string
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}
	root := &cobra.Command{
		Use:   "lvmatch",
		Short: "lvmatch - two-sided matching from ranked preferences",
		Long: `lvmatch pairs every proposer with exactly one receiver.

Methods:
  deferred_acceptance  randomized multi-trial deferred acceptance (alias: smp)
  weighted_assignment  optimal weighted assignment (alias: hungarian)`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&rf.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&rf.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&rf.dbPath, "db", "", "SQLite run database (overrides store.path)")

	root.AddCommand(newSolveCmd(rf), newGenerateCmd(), newRunsCmd(rf))

	return root
}

// load resolves the configuration: file and environment first, then the
// persistent flags. Commands validate after their own flags are applied.
func (rf *rootFlags) load() (*config.Config, error) {
	cfg, err := config.Read(rf.configPath)
	if err != nil {
		return nil, err
	}
	if rf.logLevel != "" {
		cfg.Log.Level = rf.logLevel
	}
	if rf.dbPath != "" {
		cfg.Store.Path = rf.dbPath
	}

	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	lvl, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
