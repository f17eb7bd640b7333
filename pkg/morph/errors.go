package morph

import "errors"

var (
	// ErrDuplicateKey is returned by [Graph.AddNode] when the node key is
	// already present, and by [Graph.AddSubgraph] when a child with the same
	// structure ID is already attached.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrMissingNode is returned when an operation references a node key that
	// is not in the graph, most notably by [Graph.AddEdge].
	ErrMissingNode = errors.New("missing node")

	// ErrInvalidEdge is returned by [NewEdge] for a self-loop.
	ErrInvalidEdge = errors.New("invalid edge")

	// ErrNotEndpoint is returned by [Edge.OtherEndpoint] when the given key is
	// neither end of the edge.
	ErrNotEndpoint = errors.New("key is not an endpoint of the edge")

	// ErrNilShape is returned by [NewNode] when no geometry is supplied.
	ErrNilShape = errors.New("node has no shape")

	// ErrNilGraph is returned when a nil graph is passed where one is required.
	ErrNilGraph = errors.New("nil graph")

	// ErrSelfAttach is returned by [Graph.AddSubgraph] when a graph would
	// become its own descendant.
	ErrSelfAttach = errors.New("graph cannot contain itself")

	// ErrDanglingReference is returned by [Graph.Validate] when a
	// nearest-node back-reference points at a missing node or subgraph.
	ErrDanglingReference = errors.New("dangling subgraph reference")
)
