// Package render provides output format conversion for rendered morphology
// graphs.
//
// # Overview
//
// Diagrams are produced as SVG by the [nodelink] subpackage. This package
// converts SVG to other formats:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// Conversion shells out to rsvg-convert (from librsvg). [Available] reports
// whether it is installed, so callers can fail early with a helpful message.
//
// [nodelink]: github.com/matzehuels/morphgraph/pkg/render/nodelink
package render
