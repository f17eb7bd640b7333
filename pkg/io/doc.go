// Package io provides JSON import and export for morphology graph trees, and
// a builder that assembles graphs from location and link adapters.
//
// # Overview
//
// The JSON format mirrors the graph tree directly: one object per structure,
// with its nodes, edges and nested subgraphs. It is used for:
//
//   - Feeding graphs exported from an annotation store into the CLI and API
//   - Caching processed graphs between pipeline runs
//   - Round-trip preservation: import, transform, export and re-import
//
// # JSON Format
//
//	{
//	  "structure_id": 0,
//	  "scale": {"x": {"value": 2.18, "units": "nm"}, ...},
//	  "nodes": [
//	    {"id": 1, "z": 90, "unscaled_z": 1,
//	     "shape": {"kind": "circle", "center": [10, 20], "radius": 4}},
//	    {"id": 2, "z": 180, "unscaled_z": 2,
//	     "shape": {"kind": "polygon", "points": [[0, 0], [8, 0], [4, 6]]},
//	     "flags": ["terminal"], "tags": ["soma"]}
//	  ],
//	  "edges": [{"a": 1, "b": 2}],
//	  "subgraphs": [
//	    {"structure_id": 7, "structure": {"id": 7, "type": "synapse"}, ...}
//	  ]
//	}
//
// Shape kinds are "circle" (center, radius), "polygon" and "polyline"
// (points), and "point" (center). Flags are "terminal", "off_edge",
// "untraceable" and "cap". A missing scale inherits the parent's, and the
// root defaults to [morph.DefaultScale].
//
// # Import
//
// [ReadJSON] and [ImportJSON] decode a tree and build it with [Build], so
// imported graphs satisfy the same invariants as graphs assembled by any
// other adapter. Errors are wrapped with the structure, node or edge that
// caused them.
//
// # Export
//
// [WriteJSON], [ExportJSON] and [MarshalGraph] emit nodes, edges and
// subgraphs in ascending key order, so equal graphs always encode to the
// same bytes. This is what makes [MarshalGraph] output usable as a cache key.
package io
