package morph

import (
	"fmt"
	"maps"
	"slices"
)

// AddSubgraph attaches child under g and records the node of g nearest to
// it. If g has no nodes yet, or child has no direct nodes, the child is
// attached without a nearest node; that is not an error. The record is
// brought up to date as either graph gains nodes, so graphs may be filled
// before or after they are attached.
//
// It fails with [ErrDuplicateKey] if a subgraph with the same ID is already
// attached and with [ErrSelfAttach] if g would become its own descendant.
func (g *Graph) AddSubgraph(child *Graph) error {
	if child == nil {
		return ErrNilGraph
	}
	if _, exists := g.subgraphs[child.id]; exists {
		return fmt.Errorf("subgraph %d: %w", child.id, ErrDuplicateKey)
	}
	if child == g || child.contains(g) {
		return fmt.Errorf("subgraph %d: %w", child.id, ErrSelfAttach)
	}
	g.subgraphs[child.id] = child
	child.parent = g
	g.attach(child.id)
	return nil
}

// contains reports whether target is g or one of its descendants.
func (g *Graph) contains(target *Graph) bool {
	if g == target {
		return true
	}
	for _, c := range g.subgraphs {
		if c.contains(target) {
			return true
		}
	}
	return false
}

// attach recomputes the nearest-node back-reference for subgraph id.
func (g *Graph) attach(id uint64) {
	child, ok := g.subgraphs[id]
	if !ok {
		return
	}
	if key, dist, found := NearestNode(child, g); found {
		g.nearest[id] = attachment{key: key, dist: dist}
		return
	}
	delete(g.nearest, id)
}

// RemoveSubgraph detaches the subgraph with the given ID and drops its
// back-reference. It returns the detached graph, or false if none was
// attached under that ID.
func (g *Graph) RemoveSubgraph(id uint64) (*Graph, bool) {
	child, ok := g.subgraphs[id]
	if !ok {
		return nil, false
	}
	delete(g.subgraphs, id)
	delete(g.nearest, id)
	if child.parent == g {
		child.parent = nil
	}
	return child, true
}

// offer updates the back-references after n was added to g. Only n can
// have become nearest, so attached subgraphs compare it against their
// current record; unattached ones get a full search.
func (g *Graph) offer(n *Node) {
	if len(g.subgraphs) == 0 {
		return
	}
	nVol := n.BoundingVolume(g.SectionThickness())
	for id, child := range g.subgraphs {
		cur, ok := g.nearest[id]
		if !ok {
			g.attach(id)
			continue
		}
		if _, d, found := nearestIn(child, n, nVol, cur.dist, false); found {
			if d < cur.dist || n.Key < cur.key {
				g.nearest[id] = attachment{key: n.Key, dist: d}
			}
		}
	}
}

// offerToParent updates the parent's back-reference to g after n was added
// to g.
func (g *Graph) offerToParent(n *Node) {
	p := g.parent
	if p == nil {
		return
	}
	cur, ok := p.nearest[g.id]
	if !ok {
		p.attach(g.id)
		return
	}
	nVol := n.BoundingVolume(g.SectionThickness())
	if key, d, found := nearestIn(p, n, nVol, cur.dist, true); found {
		if d < cur.dist || key < cur.key {
			p.nearest[g.id] = attachment{key: key, dist: d}
		}
	}
}

// Subgraph returns the attached subgraph with the given ID.
func (g *Graph) Subgraph(id uint64) (*Graph, bool) {
	c, ok := g.subgraphs[id]
	return c, ok
}

// SubgraphIDs returns the IDs of attached subgraphs in ascending order.
func (g *Graph) SubgraphIDs() []uint64 {
	return slices.Sorted(maps.Keys(g.subgraphs))
}

// Subgraphs returns the attached subgraphs in ascending ID order.
func (g *Graph) Subgraphs() []*Graph {
	ids := g.SubgraphIDs()
	out := make([]*Graph, len(ids))
	for i, id := range ids {
		out[i] = g.subgraphs[id]
	}
	return out
}

// NearestNodeFor returns the node of g recorded as nearest to subgraph id.
func (g *Graph) NearestNodeFor(id uint64) (uint64, bool) {
	a, ok := g.nearest[id]
	return a.key, ok
}

// NearestSubgraphs returns, in ascending order, the IDs of subgraphs whose
// nearest node is key.
func (g *Graph) NearestSubgraphs(key uint64) []uint64 {
	var ids []uint64
	for id, a := range g.nearest {
		if a.key == key {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Walk calls fn for g and every descendant in pre-order, visiting siblings
// in ascending ID order. depth is 0 for g. Walk stops at the first error.
func (g *Graph) Walk(fn func(sg *Graph, depth int) error) error {
	return g.walk(fn, 0)
}

func (g *Graph) walk(fn func(*Graph, int) error, depth int) error {
	if err := fn(g, depth); err != nil {
		return err
	}
	for _, c := range g.Subgraphs() {
		if err := c.walk(fn, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the graph with the given structure ID in the tree rooted at
// g, searching g itself first.
func (g *Graph) Find(id uint64) (*Graph, bool) {
	if g.id == id {
		return g, true
	}
	for _, c := range g.Subgraphs() {
		if found, ok := c.Find(id); ok {
			return found, true
		}
	}
	return nil, false
}

// TreeSize returns the number of graphs, nodes and edges in the tree rooted
// at g.
func (g *Graph) TreeSize() (graphs, nodes, edges int) {
	_ = g.Walk(func(sg *Graph, _ int) error {
		graphs++
		nodes += sg.NodeCount()
		edges += sg.EdgeCount()
		return nil
	})
	return graphs, nodes, edges
}
