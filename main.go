// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/cybrota/bantree/banindex"
)

var version = "v0.3.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal().Err(err).Msg("bantree failed")
	}
}

func newRootCommand() *cobra.Command {
	asciiLogo := fmt.Sprintf(`
bantree [Version: %s%s%s]
Ban history lookups over AVL and scapegoat trees
`, Green, version, Reset)

	var (
		configPath string
		logLevel   string
		config     *Config
	)

	var rootCmd = &cobra.Command{
		Use:           "bantree",
		Version:       version,
		Long:          asciiLogo,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			config, err = LoadConfig(configPath)
			if cmd.Flags().Changed("log-level") {
				if verr := validateLogLevel(logLevel); verr != nil {
					return verr
				}
				config.Log.Level = logLevel
			}
			setupLogging(config.Log.Level, cmd.ErrOrStderr())
			if err != nil {
				log.Warn().Err(err).Msg("failed to load configuration, using default settings")
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.bantree.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	cfg := func() *Config { return config }
	rootCmd.AddCommand(
		newModeCommand(banindex.StrategyAVL, asciiLogo, cfg),
		newModeCommand(banindex.StrategyScapegoat, asciiLogo, cfg),
		&cobra.Command{
			Use:   "usage",
			Short: "Print bantree usage guide",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), getHelpMessage())
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print bantree version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
		&cobra.Command{
			Use:   "settings",
			Short: "Show the effective configuration, creating a default config file if needed",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return displaySettings(cmd.OutOrStdout(), configPath)
			},
		},
	)
	return rootCmd
}

// newModeCommand builds the avl / scapegoat subcommand. Both share every
// flag except --alpha, which only the scapegoat tree reads.
func newModeCommand(strategy banindex.Strategy, logo string, config func() *Config) *cobra.Command {
	var (
		alpha     float64
		lookup    string
		strict    bool
		progress  bool
		showStats bool
	)

	cmd := &cobra.Command{
		Use:   string(strategy) + " BANFILE [QUERYFILE]",
		Short: fmt.Sprintf("Build a %s index from BANFILE and answer queries", strategy),
		Long:  fmt.Sprintf("%s\n%s", logo, "Reads bans from BANFILE and one user name per line from QUERYFILE (or stdin)"),
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *config()
			flags := cmd.Flags()
			if flags.Changed("alpha") {
				cfg.Index.Alpha = alpha
			}
			if flags.Changed("lookup") {
				cfg.Index.Lookup = lookup
			}
			if flags.Changed("strict") {
				cfg.Ingest.Strict = strict
			}
			if flags.Changed("progress") {
				cfg.Ingest.ShowProgress = progress
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			opts := runOptions{
				Strategy:  strategy,
				BanPath:   args[0],
				Config:    &cfg,
				ShowStats: showStats,
				Stdin:     cmd.InOrStdin(),
				Stdout:    cmd.OutOrStdout(),
				Stderr:    cmd.ErrOrStderr(),
				Clock:     clock.New(),
			}
			if len(args) == 2 {
				opts.QueryPath = args[1]
			}

			_, err := runBanQueries(opts)
			return err
		},
	}

	flags := cmd.Flags()
	if strategy == banindex.StrategyScapegoat {
		flags.Float64Var(&alpha, "alpha", defaultConfig.Index.Alpha, "scapegoat looseness, in (0.5, 1)")
	}
	flags.StringVar(&lookup, "lookup", defaultConfig.Index.Lookup, "answer from the aggregated summary or by walking the tree (summary|tree)")
	flags.BoolVar(&strict, "strict", false, "stop on the first malformed ban line")
	flags.BoolVar(&progress, "progress", false, "show a progress bar while loading bans")
	flags.BoolVar(&showStats, "stats", false, "print timing, tree shape and balancing stats to stderr")
	return cmd
}
