// Package pkg provides the core libraries for morphgraph.
//
// # Overview
//
// Morphgraph works on hierarchical spatial graphs of neuronal morphology:
// every node is a 2-D shape on a z-section, edges join touching or
// traced-through nodes, and a graph may contain subgraphs (a cell's axon,
// its dendrites, a bouton) attached near a node of their parent. The pkg
// directory is organized into four areas:
//
//  1. Domain logic: [geom], [spatial], [morph], [morph/transform]
//  2. Serialization and output: [io], [render], [render/nodelink]
//  3. Orchestration: [pipeline]
//  4. Infrastructure: [cache], [observability], [errors], [api], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	JSON graph tree
//	       ↓
//	  [io] package (decode, build the tree)
//	       ↓
//	  [morph/transform] package (repair, reduce, processes)
//	       ↓
//	  [render/nodelink] package (DOT, SVG)
//	       ↓
//	  JSON/DOT/SVG/PDF/PNG output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/morphgraph/pkg/io"
//	    "github.com/matzehuels/morphgraph/pkg/morph/transform"
//	)
//
//	g, err := io.ImportJSON("cell.json")
//	if err != nil {
//	    return err
//	}
//	report, err := transform.RepairConnectivity(ctx, g)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(report.Totals().Bridges, "bridging edges")
//
// # Main Packages
//
// [geom] - Shapes (circle, polygon, polyline, point), nearest-feature
// distance between them, 3-D points and axis-aligned boxes.
//
// [spatial] - R-tree index over node bounding boxes for nearest and range
// queries.
//
// [morph] - The graph container: nodes, undirected edges, degree
// classification, connected components, subgraph attachment and
// nearest-node search.
//
// [morph/transform] - Connectivity repair, node removal with edge
// preservation, stick-figure reduction and process listing. Sibling
// subgraphs are processed concurrently.
//
// [pipeline] - Load, repair, reduce, list processes and export, with
// result caching. Used by both the CLI and the HTTP API.
//
// [api] - chi HTTP server exposing the pipeline.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/morphgraph/pkg/geom
// [spatial]: https://pkg.go.dev/github.com/matzehuels/morphgraph/pkg/spatial
// [morph]: https://pkg.go.dev/github.com/matzehuels/morphgraph/pkg/morph
// [morph/transform]: https://pkg.go.dev/github.com/matzehuels/morphgraph/pkg/morph/transform
// [io]: https://pkg.go.dev/github.com/matzehuels/morphgraph/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/morphgraph/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/morphgraph/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/morphgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/morphgraph/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/morphgraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/morphgraph/pkg/errors
// [api]: https://pkg.go.dev/github.com/matzehuels/morphgraph/pkg/api
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/morphgraph/pkg/buildinfo
package pkg
