package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teranos/contractgen/display"
	"github.com/teranos/contractgen/driver"
	"github.com/teranos/contractgen/logger"
)

func generateCommands() []*cobra.Command {
	return []*cobra.Command{
		newGenerateCmd(driver.TargetTypeScript, []string{"ts"},
			"Generate TypeScript types, API client and React Query hooks"),
		newGenerateCmd(driver.TargetDart, []string{"flutter"},
			"Generate Dart models, API client and pubspec.yaml"),
		newGenerateCmd(driver.TargetOpenAPI, []string{"swagger"},
			"Generate the OpenAPI 3.0.3 document"),
		newGenerateCmd(driver.TargetMarkdown, []string{"md"},
			"Generate the Markdown API reference"),
		newGenerateCmd(driver.TargetAll, nil,
			"Generate every target"),
	}
}

func newGenerateCmd(target driver.Target, aliases []string, short string) *cobra.Command {
	return &cobra.Command{
		Use:     string(target),
		Aliases: aliases,
		Short:   short,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, []driver.Target{target})
		},
	}
}

func runGenerate(cmd *cobra.Command, targets []driver.Target) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	jsonMode := display.ShouldOutputJSON(cmd)
	var opts []driver.Option
	if !jsonMode && verbosity >= logger.VerbosityInfo {
		opts = append(opts, driver.WithStdout(cmd.OutOrStdout()))
	}

	summary, err := driver.New(cfg, opts...).Generate(cmd.Context(), targets...)
	if err != nil {
		return err
	}

	if jsonMode {
		return display.OutputJSON(cmd.OutOrStdout(), summary)
	}
	return display.PrintSummary(cmd.OutOrStdout(), cfg.BaseDir, summary)
}
