// Package transform provides in-place topology operations on morphology
// graph trees.
//
// # Overview
//
// Graphs assembled from annotation data are frequently fragmented (a missed
// link leaves two pieces of the same process unconnected) and densely
// sampled (hundreds of locations along an unbranched process). This package
// repairs the first problem and abstracts away the second:
//
//   - [RepairConnectivity] bridges every graph in a tree into a single
//     connected component
//   - [ToStickFigure] removes every degree-2 node, keeping only branch points
//     and endpoints
//   - [Processes] and [ProcessTree] extract the unbranched chains without
//     modifying the graph
//
// Each operation treats every graph in the tree independently; edges never
// cross from a parent into a child. Sibling subgraphs are processed
// concurrently, each on its own goroutine, since they share no state.
//
// # Connectivity Repair
//
// Components are merged smallest first. On each step the smallest remaining
// component is joined to the rest of the graph by a single edge between the
// closest pair of nodes, using the node distance described in package morph.
// Components of equal size are ordered by their smallest key, and node pairs
// are compared in ascending key order, so repeated runs produce the same
// bridging edges.
//
// # Node Removal
//
// [RemoveNodePreserveEdges] deletes a node without disconnecting its
// neighbors: the neighbor nearest to the removed node becomes a hub, and
// every other former neighbor is linked to the hub.
//
//	Before: 1 - 2 - 3        After removing 2: 1 - 3
//
// # Process Traversal
//
// A process is a maximal run of degree-2 nodes together with the two
// boundary nodes where the run ends. Traversal refuses to revisit a node
// already in the current chain, so rings of degree-2 nodes yield a single
// chain instead of looping.
//
// # Usage
//
//	rep, err := transform.RepairConnectivity(ctx, g)
//	if err != nil {
//		return err
//	}
//	if _, err := transform.ToStickFigure(ctx, g); err != nil {
//		return err
//	}
package transform
