package pipeline

import (
	"context"
	"fmt"

	graphio "github.com/matzehuels/morphgraph/pkg/io"
	"github.com/matzehuels/morphgraph/pkg/morph"
	"github.com/matzehuels/morphgraph/pkg/render"
	"github.com/matzehuels/morphgraph/pkg/render/nodelink"
)

// Render produces every format in opts.Formats for g. DOT source is
// generated once and shared by the Graphviz-based formats.
func Render(ctx context.Context, g *morph.Graph, opts Options) (map[string][]byte, error) {
	var dot string
	dotSource := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(g, nodelink.Options{
				Detailed:    opts.Detailed,
				Attachments: opts.Attachments,
			})
		}
		return dot
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error
		switch format {
		case render.FormatJSON:
			data, err = graphio.MarshalGraph(g)
		case render.FormatDOT:
			data = []byte(dotSource())
		case render.FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dotSource())
		case render.FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dotSource())
		case render.FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dotSource(), DefaultPNGScale)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
