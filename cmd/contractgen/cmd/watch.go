package cmd

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/contractgen/display"
	"github.com/teranos/contractgen/driver"
	"github.com/teranos/contractgen/logger"
	"github.com/teranos/contractgen/watch"
)

// WatchCmd regenerates output whenever a contract file changes
var WatchCmd = &cobra.Command{
	Use:   "watch [targets...]",
	Short: "Regenerate when contract files change",
	Long: `Generate once, then watch the configured contract files and regenerate
after each change. Bursts of edits are debounced and regeneration runs at
most once per second. Stop with Ctrl+C.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	targets, err := driver.ParseTargets(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	d := driver.New(cfg)
	regenerate := func(ctx context.Context) error {
		summary, err := d.Generate(ctx, targets...)
		if err != nil {
			return err
		}
		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(cmd.OutOrStdout(), summary)
		}
		return display.PrintSummary(cmd.OutOrStdout(), cfg.BaseDir, summary)
	}

	// A broken contract should not stop the watcher from starting
	if err := regenerate(cmd.Context()); err != nil {
		logger.Errorw("Initial generation failed", logger.FieldError, err)
	}

	files := cfg.ContractFiles()
	if !display.ShouldOutputJSON(cmd) {
		pterm.Info.WithWriter(cmd.OutOrStdout()).Printfln("Watching %d contract files (Ctrl+C to stop)", len(files))
	}
	return watch.New(files, regenerate).Run(cmd.Context())
}
