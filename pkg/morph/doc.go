// Package morph models the skeleton of a biological structure as a tree of
// spatial graphs.
//
// # Overview
//
// A [Graph] belongs to one structure (a neuron, a synapse, an organelle). It
// owns a set of [Node] values, each a planar [geom.Shape] traced on one
// section and lifted to a physical Z coordinate, and a set of undirected
// [Edge] values joining them. Structures that belong to another structure
// (for example the synapses of a neuron) are attached as child graphs, so a
// whole reconstruction forms a tree of graphs rooted at a synthetic container
// with structure ID 0.
//
// Edges never cross graph boundaries. Instead, every attached child records
// the parent node nearest to it; [Graph.NearestSubgraphs] and
// [Graph.NearestNodeFor] expose that relationship from both sides and are
// derived from a single mapping so they cannot disagree.
//
// # Edges
//
// Edges are identified by an [EdgeKey] whose smaller endpoint is always A,
// so (1,2) and (2,1) are the same edge. Adding an edge that already exists
// is a silent no-op, which makes rebuilding a graph from a link list
// idempotent. Self-loops are rejected with [ErrInvalidEdge].
//
// # Removal
//
// [Graph.RemoveNode] deletes a node but deliberately leaves touching edges in
// place. Bulk rebuilds rely on this. Use [Graph.PurgeNode] to drop the node
// together with its edges, or transform.RemoveNodePreserveEdges to splice the
// node out of a chain.
//
// # Classification
//
// Nodes are classified by degree:
//
//   - branch points: degree > 2 ([Graph.BranchPointKeys])
//   - terminals: degree == 1 and not flagged [FlagCap] ([Graph.TerminalKeys])
//   - process nodes: degree == 2 ([Graph.ProcessKeys])
//
// The three sets are disjoint. Isolated nodes and capped endpoints belong to
// none of them.
//
// # Distance
//
// Node-to-node distance combines the nearest-feature distance between the
// two shapes on the section plane with the separation of their Z
// coordinates: sqrt(h² + dz²). All nearest-node searches in this package and
// in package transform use that metric, visit candidates in ascending key
// order, and keep the first candidate achieving the minimum.
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. The lazily built bounding
// volume and spatial index are guarded internally, so concurrent readers are
// safe as long as no writer is active. Distinct graphs in the same tree share
// no mutable state and may be processed in parallel.
package morph
