package morph

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants of g and its whole subtree:
// every edge joins two nodes of its own graph, adjacency agrees with the
// edge set, and every nearest-node back-reference names an attached
// subgraph and an existing node. All violations are reported together.
func (g *Graph) Validate() error {
	var errs []error
	_ = g.Walk(func(sg *Graph, _ int) error {
		errs = append(errs, sg.validateOwn()...)
		return nil
	})
	return errors.Join(errs...)
}

func (g *Graph) validateOwn() []error {
	var errs []error
	for _, e := range g.Edges() {
		for _, k := range []uint64{e.Key.A, e.Key.B} {
			if !g.HasNode(k) {
				errs = append(errs, fmt.Errorf("graph %d: edge %s: node %d: %w", g.id, e.Key, k, ErrMissingNode))
			}
		}
		if _, ok := g.adj[e.Key.A][e.Key.B]; !ok {
			errs = append(errs, fmt.Errorf("graph %d: edge %s missing from adjacency", g.id, e.Key))
		}
	}
	for from, set := range g.adj {
		for to := range set {
			k, err := NewEdgeKey(from, to)
			if err != nil {
				errs = append(errs, fmt.Errorf("graph %d: %w", g.id, err))
				continue
			}
			if _, ok := g.edges[k]; !ok {
				errs = append(errs, fmt.Errorf("graph %d: adjacency %s has no edge", g.id, k))
			}
		}
	}
	for id, a := range g.nearest {
		if _, ok := g.subgraphs[id]; !ok {
			errs = append(errs, fmt.Errorf("graph %d: subgraph %d: %w", g.id, id, ErrDanglingReference))
		}
		if !g.HasNode(a.key) {
			errs = append(errs, fmt.Errorf("graph %d: subgraph %d nearest node %d: %w", g.id, id, a.key, ErrDanglingReference))
		}
	}
	return errs
}
