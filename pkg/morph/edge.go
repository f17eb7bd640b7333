package morph

import (
	"cmp"
	"fmt"
	"sync"
)

// EdgeKey is the canonical identity of an undirected edge: A < B.
type EdgeKey struct {
	A uint64 `json:"a"`
	B uint64 `json:"b"`
}

// NewEdgeKey canonicalizes the pair (a, b). It fails with [ErrInvalidEdge]
// when a == b.
func NewEdgeKey(a, b uint64) (EdgeKey, error) {
	if a == b {
		return EdgeKey{}, fmt.Errorf("%w: self-loop on %d", ErrInvalidEdge, a)
	}
	if a > b {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}, nil
}

// Has reports whether k is an endpoint.
func (k EdgeKey) Has(key uint64) bool { return k.A == key || k.B == key }

// Compare orders keys by A then B.
func (k EdgeKey) Compare(o EdgeKey) int {
	if c := cmp.Compare(k.A, o.A); c != 0 {
		return c
	}
	return cmp.Compare(k.B, o.B)
}

func (k EdgeKey) String() string { return fmt.Sprintf("(%d,%d)", k.A, k.B) }

// Edge is an undirected connection between two nodes of the same graph.
type Edge struct {
	Key EdgeKey

	mu       sync.Mutex
	dist     float64
	distDone bool
}

// NewEdge returns the edge between a and b in canonical order. It fails
// with [ErrInvalidEdge] for a self-loop.
func NewEdge(a, b uint64) (*Edge, error) {
	k, err := NewEdgeKey(a, b)
	if err != nil {
		return nil, err
	}
	return &Edge{Key: k}, nil
}

// OtherEndpoint returns the endpoint opposite key, or [ErrNotEndpoint].
func (e *Edge) OtherEndpoint(key uint64) (uint64, error) {
	switch key {
	case e.Key.A:
		return e.Key.B, nil
	case e.Key.B:
		return e.Key.A, nil
	}
	return 0, fmt.Errorf("edge %s, key %d: %w", e.Key, key, ErrNotEndpoint)
}

// CenterDistance returns the Euclidean distance between the centroids of
// the two endpoints in g. The value is computed on first success and
// memoized; both endpoints must be present in g at that time.
func (e *Edge) CenterDistance(g *Graph) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.distDone {
		return e.dist, nil
	}
	a, ok := g.Node(e.Key.A)
	if !ok {
		return 0, fmt.Errorf("edge %s: node %d: %w", e.Key, e.Key.A, ErrMissingNode)
	}
	b, ok := g.Node(e.Key.B)
	if !ok {
		return 0, fmt.Errorf("edge %s: node %d: %w", e.Key, e.Key.B, ErrMissingNode)
	}
	e.dist = a.Centroid().Dist(b.Centroid())
	e.distDone = true
	return e.dist, nil
}

func (e *Edge) String() string { return "Edge" + e.Key.String() }
