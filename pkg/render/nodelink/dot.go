package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/morphgraph/pkg/morph"
	"github.com/matzehuels/morphgraph/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds Z, flags and tags to node labels.
	// When false, only the node key is shown.
	Detailed bool
	// Attachments draws a dashed edge from each subgraph to its nearest
	// parent node.
	Attachments bool
	// MaxDepth limits how many levels of subgraphs are drawn. Zero draws
	// the whole tree; 1 draws only the root.
	MaxDepth int
}

// ToDOT converts a graph tree to Graphviz DOT format. Node IDs are
// qualified by structure ID, since keys are only unique within one graph.
func ToDOT(g *morph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, width=0.3];\n")
	buf.WriteString("  edge [penwidth=1.5];\n")
	buf.WriteString("\n")

	writeCluster(&buf, g, opts, 0, "  ")

	if opts.Attachments {
		buf.WriteString("\n")
		_ = g.Walk(func(sg *morph.Graph, depth int) error {
			if opts.MaxDepth > 0 && depth+1 >= opts.MaxDepth {
				return nil
			}
			for _, child := range sg.Subgraphs() {
				key, ok := sg.NearestNodeFor(child.ID())
				keys := child.NodeKeys()
				if !ok || len(keys) == 0 {
					continue
				}
				fmt.Fprintf(&buf, "  %s -- %s [style=dashed, color=grey, constraint=false];\n",
					nodeID(sg, key), nodeID(child, keys[0]))
			}
			return nil
		})
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeCluster(buf *bytes.Buffer, g *morph.Graph, opts Options, depth int, indent string) {
	fmt.Fprintf(buf, "%ssubgraph cluster_%d {\n", indent, g.ID())
	fmt.Fprintf(buf, "%s  label=%q;\n", indent, clusterLabel(g))
	buf.WriteString(indent + "  style=rounded;\n")

	for _, n := range g.Nodes() {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(g, n, label)
		fmt.Fprintf(buf, "%s  %s [%s];\n", indent, nodeID(g, n.Key), strings.Join(attrs, ", "))
	}
	for _, e := range g.Edges() {
		if !g.HasNode(e.Key.A) || !g.HasNode(e.Key.B) {
			continue
		}
		fmt.Fprintf(buf, "%s  %s -- %s;\n", indent, nodeID(g, e.Key.A), nodeID(g, e.Key.B))
	}

	if opts.MaxDepth == 0 || depth+1 < opts.MaxDepth {
		for _, c := range g.Subgraphs() {
			writeCluster(buf, c, opts, depth+1, indent+"  ")
		}
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}

func nodeID(g *morph.Graph, key uint64) string {
	return fmt.Sprintf("s%d_n%d", g.ID(), key)
}

func clusterLabel(g *morph.Graph) string {
	if s := g.Structure(); s != nil && s.Type != "" {
		return fmt.Sprintf("%s %d", s.Type, g.ID())
	}
	if g.ID() == 0 {
		return "root"
	}
	return fmt.Sprintf("structure %d", g.ID())
}

func fmtLabel(n *morph.Node, detailed bool) string {
	id := strconv.FormatUint(n.Key, 10)
	if !detailed {
		return id
	}
	parts := []string{id, fmt.Sprintf("z: %g", n.Z)}
	if n.Flags != 0 {
		parts = append(parts, n.Flags.String())
	}
	if len(n.Tags) > 0 {
		parts = append(parts, strings.Join(n.Tags, ", "))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(g *morph.Graph, n *morph.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch deg := g.Degree(n.Key); {
	case deg > 2:
		attrs = append(attrs, "fillcolor=\"#f4a261\"")
	case deg == 2:
		attrs = append(attrs, "shape=point", "width=0.12", "color=grey50")
	case deg == 1 && n.IsCap():
		attrs = append(attrs, "shape=box")
	case deg == 1:
		attrs = append(attrs, "shape=doublecircle")
	default:
		attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized svg header with one
// anchored at the origin so the diagram scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders a DOT graph as PDF via SVG.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
