package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDetectCommand creates the detect command.
func NewDetectCommand(cfg Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <model.xmi>",
		Short: "Show the editor that exported a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, editor, err := readDocument(ctx, cfg(ctx), args[0])
			if err != nil {
				return err
			}
			name := ""
			if m := doc.Model(); m != nil {
				name = m.Name()
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "editor: %s\nmodel: %s\n", editor, name)
			return nil
		},
	}
}
