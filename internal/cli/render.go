package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/morphgraph/pkg/pipeline"
	"github.com/matzehuels/morphgraph/pkg/render"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	runFlags
	formats     string
	detailed    bool
	attachments bool
	repair      bool
	stickFigure bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render a graph tree as DOT, SVG, PDF or PNG",
		Long: `Render draws every graph of the tree as a node-link diagram, one cluster
per structure. Branch points, terminals and caps are styled apart from
process nodes. PDF and PNG output require rsvg-convert.

With a single format, -o names the output file. With several, -o is a
base path and each format gets its own extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := c.cfg().Pipeline
			if !cmd.Flags().Changed("repair") {
				opts.repair = defaults.Repair
			}
			if !cmd.Flags().Changed("stick-figure") {
				opts.stickFigure = defaults.StickFigure
			}
			formats := parseFormats(opts.formats)
			if len(formats) == 0 {
				formats = defaults.Formats
			}
			if len(formats) == 0 {
				formats = []string{render.FormatSVG}
			}
			if needsConverter(formats) && !render.Available() {
				return fmt.Errorf("%w: pdf and png output need rsvg-convert on PATH", render.ErrConverterMissing)
			}
			return c.runRender(cmd, args[0], formats, opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.ValidFormats, ", ")+" (comma-separated, default svg or [pipeline].formats)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with z, flags and tags")
	cmd.Flags().BoolVar(&opts.attachments, "attachments", false, "draw subgraph attachment edges")
	cmd.Flags().BoolVar(&opts.repair, "repair", false, "bridge fragments before rendering")
	cmd.Flags().BoolVar(&opts.stickFigure, "stick-figure", false, "reduce to a stick figure before rendering")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, formats []string, opts renderOpts) error {
	res, err := c.run(cmd, input, pipeline.Options{
		Repair:      opts.repair || opts.stickFigure,
		StickFigure: opts.stickFigure,
		Formats:     formats,
		Detailed:    opts.detailed,
		Attachments: opts.attachments,
		Refresh:     opts.refresh,
	}, opts.runFlags)
	if err != nil {
		return err
	}

	w := cmd.ErrOrStderr()
	printSuccess(w, "Rendered %d graphs", res.Stats.Graphs)
	printStats(w, res.Stats, res.CacheInfo.ExportHit)

	multi := len(formats) > 1
	for _, f := range formats {
		path := outputPath(opts.output, input, f, multi)
		if err := writeOutput(cmd, path, res.Artifacts[f]); err != nil {
			return fmt.Errorf("write %s: %w", f, err)
		}
	}
	return nil
}

func needsConverter(formats []string) bool {
	return slices.Contains(formats, render.FormatPDF) || slices.Contains(formats, render.FormatPNG)
}
