// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmatch/generator"
	"github.com/katalvlaran/lvmatch/ingest"
)

const (
	proposersFile = "proposers.txt"
	receiversFile = "receivers.txt"
	blacklistFile = "blacklist.txt"
)

type generateFlags struct {
	agents       int
	seed         int64
	completeness float64
	density      float64
	outDir       string
}

func newGenerateCmd() *cobra.Command {
	gf := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random instance as preference files",
		Long: `Write a random instance to --out as proposers.txt, receivers.txt and,
with --blacklist-density > 0, blacklist.txt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, gf)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&gf.agents, "agents", "a", 10, "Agents per side")
	f.Int64Var(&gf.seed, "seed", 1, "Random seed")
	f.Float64Var(&gf.completeness, "completeness", 1, "Fraction of each list to keep, in [0,1]")
	f.Float64Var(&gf.density, "blacklist-density", 0, "Probability a pair is blacklisted, in [0,1)")
	f.StringVarP(&gf.outDir, "out", "o", ".", "Output directory")

	return cmd
}

func runGenerate(cmd *cobra.Command, gf *generateFlags) error {
	if gf.completeness < 0 || gf.completeness > 1 {
		return fmt.Errorf("--completeness %v: must be in [0,1]", gf.completeness)
	}
	if gf.density < 0 || gf.density >= 1 {
		return fmt.Errorf("--blacklist-density %v: must be in [0,1)", gf.density)
	}
	in, err := generator.Build(gf.agents,
		generator.WithSeed(gf.seed),
		generator.WithCompleteness(gf.completeness),
		generator.WithBlacklistDensity(gf.density))
	if err != nil {
		return err
	}
	if err = os.MkdirAll(gf.outDir, 0o750); err != nil {
		return err
	}

	if err = writeFile(filepath.Join(gf.outDir, proposersFile), func(f *os.File) error {
		return ingest.WritePrefs(f, in.Proposers)
	}); err != nil {
		return err
	}
	if err = writeFile(filepath.Join(gf.outDir, receiversFile), func(f *os.File) error {
		return ingest.WritePrefs(f, in.Receivers)
	}); err != nil {
		return err
	}
	if in.Blacklist.Len() > 0 {
		if err = writeFile(filepath.Join(gf.outDir, blacklistFile), func(f *os.File) error {
			return ingest.WriteBlacklist(f, in.Blacklist)
		}); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d agents per side to %s\n", gf.agents, gf.outDir)

	return nil
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = fn(f); err != nil {
		_ = f.Close()

		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}
