// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmatch/store"
)

var errNoDatabase = errors.New("no run database: pass --db or set store.path")

func newRunsCmd(rf *rootFlags) *cobra.Command {
	var limit int
	runs := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved runs",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openRunStore(rf)
			if err != nil {
				return err
			}
			defer s.Close()

			sums, err := s.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tMETHOD\tAGENTS\tBEST")
			for _, sum := range sums {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.4f\n",
					sum.ID, sum.CreatedAt.Format(time.RFC3339), sum.Method, sum.Agents, sum.BestScore)
			}

			return tw.Flush()
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs")

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Print a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRunStore(rf)
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(rec)
		},
	}

	runs.AddCommand(list, show)

	return runs
}

func openRunStore(rf *rootFlags) (*store.Store, error) {
	cfg, err := rf.load()
	if err != nil {
		return nil, err
	}
	if cfg.Store.Path == "" {
		return nil, errNoDatabase
	}

	return store.Open(cfg.Store.Path)
}
