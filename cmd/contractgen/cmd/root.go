// Package cmd implements the contractgen command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teranos/contractgen/config"
	"github.com/teranos/contractgen/errors"
	"github.com/teranos/contractgen/logger"
	"github.com/teranos/contractgen/version"
)

var (
	configPath string
	verbosity  int
	jsonOutput bool
)

// RootCmd is the contractgen entry point
var RootCmd = &cobra.Command{
	Use:   "contractgen",
	Short: "Generate clients and docs from .api service contracts",
	Long: `contractgen reads go-zero style .api contract files and generates:

  typescript  - interfaces, a grouped API client and React Query hooks
  dart        - value classes, an HTTP client and pubspec.yaml
  openapi     - an OpenAPI 3.0.3 document
  markdown    - a browsable API reference

Settings come from contractgen.toml (searched for upward from the working
directory), CONTRACTGEN_* environment variables and built-in defaults.

Examples:
  contractgen init            # Write a default contractgen.toml
  contractgen all             # Generate every target
  contractgen ts              # TypeScript only
  contractgen check           # Exit 1 if generated files are stale
  contractgen watch dart      # Regenerate Dart output on every contract edit`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		logger.Debugw("Logger initialized",
			logger.FieldVerbosity, logger.LevelName(verbosity),
			logger.FieldVersion, version.Get().String())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to contractgen.toml (default: nearest one above the working directory)")
	RootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	RootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON and log as JSON")

	for _, c := range generateCommands() {
		RootCmd.AddCommand(c)
	}
	RootCmd.AddCommand(CheckCmd)
	RootCmd.AddCommand(WatchCmd)
	RootCmd.AddCommand(ParseCmd)
	RootCmd.AddCommand(InitCmd)
	RootCmd.AddCommand(VersionCmd)
}

// loadConfig loads and validates the configuration selected by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
