// Command lockfsctl runs a command script against an in-memory lockfs
// namespace and reports one status line per command. It is the
// collaborator the tree and syncwrap packages leave unspecified: script
// parsing, worker-pool fan-out, logging and metrics all live here
// rather than in the namespace library itself.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lockfs/lockfs/cmd/lockfsctl/config"
	"github.com/lockfs/lockfs/cmd/lockfsctl/metrics"
	"github.com/lockfs/lockfs/syncwrap"
	"github.com/lockfs/lockfs/tree"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "lockfsctl",
		Short: "Run a command script against an in-memory concurrent namespace",
		Long: `lockfsctl parses a line-oriented script of create/delete/move/lookup/print
commands, executes it against a lockfs tree across a pool of goroutines,
and writes one status line per command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadFile(v, cfgFile); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config-file", "", "path to a yaml config file (flags and env still take precedence)")
	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		panic(err) // only fails on a programming error in the flag definitions
	}
	v.SetEnvPrefix("LOCKFSCTL")
	v.AutomaticEnv()

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger := newLogger(cfg.LogFile)

	strat, ok := syncwrap.ParseStrategy(cfg.SyncStrategy)
	if !ok {
		return fmt.Errorf("unknown sync strategy %q", cfg.SyncStrategy)
	}

	treeCfg := tree.DefaultConfig()
	treeCfg.InodeTableSize = cfg.InodeTableSize
	treeCfg.MaxDirEntries = cfg.MaxDirEntries
	treeCfg.MaxFileName = cfg.MaxFileName

	t := syncwrap.Wrap(tree.New(treeCfg), strat)
	rec := metrics.NewRecorder()

	in, closeIn, err := openInput(cfg.InputFile)
	if err != nil {
		return err
	}
	defer closeIn()

	cmds, err := parseScript(in)
	if err != nil {
		return err
	}

	results, err := dispatch(ctx, t, cmds, cfg.Workers, rec, logger)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer closeOut()

	return writeResults(out, results)
}

func openInput(path string) (*os.File, func(), error) {
	if path == "-" || path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening input file")
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "-" || path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "creating output file")
	}
	return f, func() { f.Close() }, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
