package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	mgerrors "github.com/matzehuels/morphgraph/pkg/errors"
	graphio "github.com/matzehuels/morphgraph/pkg/io"
	"github.com/matzehuels/morphgraph/pkg/morph"
)

func (c *CLI) inspectCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect <graph.json>",
		Short: "Classify the nodes of every graph in a tree",
		Long: `Inspect counts branch points, terminals, process nodes, isolated nodes,
caps and connected fragments for every graph in the tree and prints them
as a table. Graphs split into several fragments are highlighted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := summarizeFile(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			}
			fmt.Fprintln(cmd.OutOrStdout(), summaryTable(sum))
			if n := fragmentedCount(sum); n > 0 {
				printInfo(cmd.ErrOrStderr(), "%d graphs are fragmented; run %s to bridge them",
					n, StyleHighlight.Render("morphgraph repair "+args[0]))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

// summarizeFile loads the graph tree at path and classifies it.
func summarizeFile(path string, stdin io.Reader) (*morph.Summary, error) {
	if err := mgerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	var (
		g   *morph.Graph
		err error
	)
	if path == "-" {
		g, err = graphio.ReadJSON(stdin)
	} else {
		g, err = graphio.ImportJSON(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return morph.Summarize(g), nil
}

func fragmentedCount(sum *morph.Summary) int {
	n := 0
	sum.Walk(func(s *morph.Summary, _ int) {
		if s.Components > 1 {
			n++
		}
	})
	return n
}
