package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teranos/contractgen/contract"
	"github.com/teranos/contractgen/display"
	"github.com/teranos/contractgen/driver"
	"github.com/teranos/contractgen/typegen/util"
)

// parseOutput is the parsed document plus the type names nothing declares.
type parseOutput struct {
	*contract.Document
	DanglingReferences []contract.Reference `json:"dangling_references,omitempty"`
}

// ParseCmd prints the parsed contracts as JSON
var ParseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Print the parsed contracts as JSON",
	Long: `Parse the configured contract files and print the merged types,
endpoints and diagnostics as JSON. Useful for checking how a contract was
understood before generating anything.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		doc, err := driver.New(cfg).Load(cmd.Context())
		if err != nil {
			return err
		}
		return display.OutputJSON(cmd.OutOrStdout(), parseOutput{
			Document:           doc,
			DanglingReferences: doc.DanglingReferences(util.IsPrimitive),
		})
	},
}
