package cmd

import (
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/contractgen/config"
	"github.com/teranos/contractgen/errors"
)

var initForce bool

// InitCmd writes a default contractgen.toml
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default contractgen.toml",
	Long: `Write contractgen.toml with every setting at its default value, to the
path given by --config or to the working directory. An existing file is
only replaced with --force; the previous version is kept as .back1.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, "failed to get working directory")
			}
			path = filepath.Join(cwd, config.FileName)
		}

		if err := config.WriteFile(path, config.Default(), initForce); err != nil {
			return err
		}
		pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Wrote %s", path)
		return nil
	},
}

func init() {
	InitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}
