package morph

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/morphgraph/pkg/geom"
	"github.com/matzehuels/morphgraph/pkg/spatial"
)

// Graph is the morphology of one structure: its nodes, the edges between
// them, and the graphs of the structures attached to it.
//
// The zero value is not usable; create graphs with [New]. A Graph must not
// be copied after first use.
type Graph struct {
	id        uint64
	scale     Scale
	structure *Structure

	nodes map[uint64]*Node
	edges map[EdgeKey]*Edge
	adj   map[uint64]map[uint64]struct{}

	parent    *Graph
	subgraphs map[uint64]*Graph
	nearest   map[uint64]attachment // by subgraph ID

	cacheMu sync.Mutex
	ownBox  *geom.Box // union of direct node volumes; nil when stale
	index   *spatial.Index
}

// New returns an empty graph for the given structure ID. ID 0 denotes a
// synthetic root with no structure of its own.
func New(id uint64, scale Scale) *Graph {
	return &Graph{
		id:        id,
		scale:     scale,
		nodes:     make(map[uint64]*Node),
		edges:     make(map[EdgeKey]*Edge),
		adj:       make(map[uint64]map[uint64]struct{}),
		subgraphs: make(map[uint64]*Graph),
		nearest:   make(map[uint64]attachment),
	}
}

// NewForStructure returns an empty graph carrying s as its metadata.
func NewForStructure(s Structure, scale Scale) *Graph {
	g := New(s.ID, scale)
	g.structure = &s
	return g
}

// ID returns the structure ID.
func (g *Graph) ID() uint64 { return g.id }

// Scale returns the physical scale of the graph.
func (g *Graph) Scale() Scale { return g.scale }

// Structure returns the structure metadata, or nil for a bare container.
func (g *Graph) Structure() *Structure { return g.structure }

// SectionThickness is shorthand for g.Scale().SectionThickness().
func (g *Graph) SectionThickness() float64 { return g.scale.SectionThickness() }

// NodeCount returns the number of direct nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns the node with the given key.
func (g *Graph) Node(key uint64) (*Node, bool) {
	n, ok := g.nodes[key]
	return n, ok
}

// HasNode reports whether key is a direct node of g.
func (g *Graph) HasNode(key uint64) bool {
	_, ok := g.nodes[key]
	return ok
}

// NodeKeys returns all node keys in ascending order.
func (g *Graph) NodeKeys() []uint64 {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Nodes returns all nodes in ascending key order.
func (g *Graph) Nodes() []*Node {
	keys := g.NodeKeys()
	out := make([]*Node, len(keys))
	for i, k := range keys {
		out[i] = g.nodes[k]
	}
	return out
}

// Edge returns the edge with the given canonical key.
func (g *Graph) Edge(k EdgeKey) (*Edge, bool) {
	e, ok := g.edges[k]
	return e, ok
}

// HasEdge reports whether a and b are joined by an edge.
func (g *Graph) HasEdge(a, b uint64) bool {
	k, err := NewEdgeKey(a, b)
	if err != nil {
		return false
	}
	_, ok := g.edges[k]
	return ok
}

// Edges returns all edges in ascending canonical key order.
func (g *Graph) Edges() []*Edge {
	out := slices.Collect(maps.Values(g.edges))
	slices.SortFunc(out, func(a, b *Edge) int { return a.Key.Compare(b.Key) })
	return out
}

// Neighbors returns the keys joined to key by an edge, in ascending order.
func (g *Graph) Neighbors(key uint64) []uint64 {
	return slices.Sorted(maps.Keys(g.adj[key]))
}

// Degree returns the number of distinct edges touching key.
func (g *Graph) Degree(key uint64) int { return len(g.adj[key]) }

// AddNode inserts n. It fails with [ErrDuplicateKey] if the key is taken,
// with [ErrNilShape] if n has no shape and with the [geom.Validate] error
// if the shape is malformed.
//
// Subgraph back-references in g, and g's own in its parent, move to n when
// n is nearer than the recorded node.
func (g *Graph) AddNode(n *Node) error {
	if n == nil || n.Shape == nil {
		return ErrNilShape
	}
	if err := geom.Validate(n.Shape); err != nil {
		return fmt.Errorf("node %d: %w", n.Key, err)
	}
	if _, exists := g.nodes[n.Key]; exists {
		return fmt.Errorf("node %d: %w", n.Key, ErrDuplicateKey)
	}
	g.nodes[n.Key] = n
	g.invalidate()
	g.offer(n)
	g.offerToParent(n)
	return nil
}

// RemoveNode deletes the node with the given key. Edges touching it are
// left in place; use [Graph.PurgeNode] to drop them too.
//
// Subgraphs whose nearest node was the removed one are re-attached to the
// nearest remaining node, or left unattached if the graph is now empty.
func (g *Graph) RemoveNode(key uint64) error {
	if _, ok := g.nodes[key]; !ok {
		return fmt.Errorf("node %d: %w", key, ErrMissingNode)
	}
	delete(g.nodes, key)
	g.invalidate()

	for _, id := range g.NearestSubgraphs(key) {
		g.attach(id)
	}
	return nil
}

// PurgeNode deletes the node and every edge touching it.
func (g *Graph) PurgeNode(key uint64) error {
	for _, other := range g.Neighbors(key) {
		k, _ := NewEdgeKey(key, other)
		g.RemoveEdge(k)
	}
	return g.RemoveNode(key)
}

// AddEdge inserts e. Both endpoints must already be nodes of g, otherwise
// it fails with [ErrMissingNode]. Adding an edge whose canonical key is
// already present is a no-op.
func (g *Graph) AddEdge(e *Edge) error {
	if _, ok := g.nodes[e.Key.A]; !ok {
		return fmt.Errorf("edge %s: node %d: %w", e.Key, e.Key.A, ErrMissingNode)
	}
	if _, ok := g.nodes[e.Key.B]; !ok {
		return fmt.Errorf("edge %s: node %d: %w", e.Key, e.Key.B, ErrMissingNode)
	}
	if _, exists := g.edges[e.Key]; exists {
		return nil
	}
	g.edges[e.Key] = e
	g.link(e.Key.A, e.Key.B)
	g.link(e.Key.B, e.Key.A)
	return nil
}

// Link adds the edge between a and b.
func (g *Graph) Link(a, b uint64) error {
	e, err := NewEdge(a, b)
	if err != nil {
		return err
	}
	return g.AddEdge(e)
}

// RemoveEdge deletes the edge with the given key and reports whether it
// existed.
func (g *Graph) RemoveEdge(k EdgeKey) bool {
	if _, ok := g.edges[k]; !ok {
		return false
	}
	delete(g.edges, k)
	g.unlink(k.A, k.B)
	g.unlink(k.B, k.A)
	return true
}

func (g *Graph) link(from, to uint64) {
	set := g.adj[from]
	if set == nil {
		set = make(map[uint64]struct{})
		g.adj[from] = set
	}
	set[to] = struct{}{}
}

func (g *Graph) unlink(from, to uint64) {
	delete(g.adj[from], to)
	if len(g.adj[from]) == 0 {
		delete(g.adj, from)
	}
}

// =============================================================================
// Cached spatial state
// =============================================================================

func (g *Graph) invalidate() {
	g.cacheMu.Lock()
	g.ownBox = nil
	g.index = nil
	g.cacheMu.Unlock()
}

// NodeVolume returns the bounding volume of the node with the given key,
// extruded by this graph's section thickness.
func (g *Graph) NodeVolume(key uint64) (geom.Box, bool) {
	n, ok := g.nodes[key]
	if !ok {
		return geom.EmptyBox(), false
	}
	return n.BoundingVolume(g.SectionThickness()), true
}

// NodesVolume returns the union of the direct nodes' bounding volumes,
// ignoring subgraphs. It is [geom.EmptyBox] for a graph with no nodes.
func (g *Graph) NodesVolume() geom.Box {
	g.cacheMu.Lock()
	defer g.cacheMu.Unlock()
	if g.ownBox != nil {
		return *g.ownBox
	}
	t := g.SectionThickness()
	boxes := make([]geom.Box, 0, len(g.nodes))
	for _, n := range g.nodes {
		boxes = append(boxes, n.BoundingVolume(t))
	}
	b := unionBoxes(boxes)
	g.ownBox = &b
	return b
}

// BoundingVolume returns the union of every direct node's bounding volume
// and every subgraph's bounding volume, recursively. It is
// [geom.EmptyBox] for a tree with no nodes at all.
//
// Only the direct-node part is cached on each graph; subgraph volumes are
// read through their own caches, so changes below are always reflected.
func (g *Graph) BoundingVolume() geom.Box {
	boxes := make([]geom.Box, 0, len(g.subgraphs)+1)
	boxes = append(boxes, g.NodesVolume())
	for _, child := range g.subgraphs {
		boxes = append(boxes, child.BoundingVolume())
	}
	return unionBoxes(boxes)
}

func unionBoxes(boxes []geom.Box) geom.Box {
	// Background contexts are never canceled, so the error is always nil.
	b, _ := geom.ParallelUnion(context.Background(), boxes, geom.DefaultParallelThreshold)
	return b
}

// SpatialIndex returns an index over the bounding volumes of the direct
// nodes. It is rebuilt on first use after any node is added or removed.
func (g *Graph) SpatialIndex() *spatial.Index {
	g.cacheMu.Lock()
	defer g.cacheMu.Unlock()
	if g.index != nil {
		return g.index
	}
	t := g.SectionThickness()
	items := make([]spatial.Item, 0, len(g.nodes))
	for _, n := range g.nodes {
		items = append(items, spatial.Item{Key: n.Key, Box: n.BoundingVolume(t)})
	}
	slices.SortFunc(items, func(a, b spatial.Item) int { return cmp.Compare(a.Key, b.Key) })
	g.index = spatial.New(items)
	return g.index
}

// NodesNear returns the keys of direct nodes whose bounding volumes lie
// within radius of p, in ascending order.
func (g *Graph) NodesNear(p geom.Point3, radius float64) []uint64 {
	return g.SpatialIndex().Within(p, radius)
}

// NodesIn returns the keys of direct nodes whose bounding volumes intersect
// b, in ascending order.
func (g *Graph) NodesIn(b geom.Box) []uint64 {
	return g.SpatialIndex().Intersecting(b)
}
