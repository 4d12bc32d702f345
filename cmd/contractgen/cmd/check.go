package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teranos/contractgen/display"
	"github.com/teranos/contractgen/driver"
)

// CheckCmd reports generated files that no longer match the contracts
var CheckCmd = &cobra.Command{
	Use:   "check [targets...]",
	Short: "Check that generated files are up to date",
	Long: `Render every target in memory and compare it with the files on disk,
ignoring the generation timestamp.

Exit codes:
  0 - generated files are up to date
  1 - files are missing or differ
  2 - the check itself failed

Examples:
  contractgen check              # All targets
  contractgen check ts openapi   # Only TypeScript and OpenAPI`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	targets, err := driver.ParseTargets(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, checkErr := driver.New(cfg).Check(cmd.Context(), targets...)
	if result == nil {
		return checkErr
	}

	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else if err := display.PrintCheckResult(cmd.OutOrStdout(), cfg.BaseDir, result); err != nil {
		return err
	}
	return checkErr
}
