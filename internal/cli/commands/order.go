package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/syssam/umlgen/compiler/gen"
)

// NewOrderCommand creates the order command.
func NewOrderCommand(cfg Loader) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "order <model.xmi>",
		Short: "Show the entity creation order",
		Long: `Print the order the entities of a model must be created in, so that
every entity comes after the entities it references.

Nothing is written to disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := buildGraph(ctx, cfg(ctx), args[0])
			if err != nil {
				return err
			}
			if plain {
				for _, name := range g.OrderNames() {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			renderOrder(cmd, g)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print one entity name per line")
	return cmd
}

func renderOrder(cmd *cobra.Command, g *gen.Graph) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Entity", "Fields", "Relationships", "Changelog"})
	for i, e := range g.Nodes {
		rels := make([]string, len(e.Relationships))
		for j, r := range e.Relationships {
			rels[j] = fmt.Sprintf("%s (%s %s)", r.RelationshipName, r.RelationshipType, r.OtherEntityNameCapitalized)
		}
		t.AppendRow(table.Row{i + 1, e.Name, len(e.Fields), strings.Join(rels, "\n"), e.ChangelogDate})
	}
	t.Render()
}
