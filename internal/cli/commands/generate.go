package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(cfg Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <model.xmi>",
		Short: "Generate entity descriptors from an XMI model",
		Long: `Read a UML class diagram exported as XMI and write one descriptor per
class, plus the order the entities must be created in.

The exporting editor is detected from the document. Types and validations
are checked against the catalog of the selected backend.`,
		Example: `  # Write JSON descriptors to .umlgen/
  umlgen generate model.xmi

  # Write YAML descriptors and Go models for a MongoDB backend
  umlgen generate model.xmi --backend mongodb --format yaml --go-package model`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := cfg(ctx)
			g, err := buildGraph(ctx, c, args[0])
			if err != nil {
				return err
			}
			if err := write(ctx, g); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Generated %d entities in %s\n", len(g.Nodes), g.Target)
			return nil
		},
	}
}
