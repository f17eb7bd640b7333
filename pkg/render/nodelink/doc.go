// Package nodelink renders morphology graph trees as node-link diagrams.
//
// # Overview
//
// [ToDOT] converts a graph tree to Graphviz DOT source with one cluster per
// structure. Node styling reflects the degree classes defined in package
// morph:
//
//   - branch points: filled orange circles
//   - terminals: double circles
//   - capped endpoints: boxes
//   - process nodes: small grey points
//
// With [Options.Attachments] set, a dashed edge joins each subgraph to the
// parent node it is attached to. These edges are decoration only; they do
// not exist in the graph.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [RenderSVG] runs Graphviz in-process through
// [github.com/goccy/go-graphviz]; no system installation is needed. PDF and
// PNG conversion go through package render and require librsvg.
package nodelink
