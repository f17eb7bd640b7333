package transform

import "github.com/matzehuels/morphgraph/pkg/morph"

// Report describes what an operation changed in one graph, with one child
// report per subgraph in ascending structure ID order.
type Report struct {
	StructureID uint64 `json:"structure_id"`

	NodesBefore int `json:"nodes_before"`
	NodesAfter  int `json:"nodes_after"`
	EdgesBefore int `json:"edges_before"`
	EdgesAfter  int `json:"edges_after"`

	// Set by RepairConnectivity.
	ComponentsBefore int             `json:"components_before,omitempty"`
	Bridges          []morph.EdgeKey `json:"bridges,omitempty"`

	// Set by ToStickFigure.
	Removed []uint64        `json:"removed,omitempty"`
	Rewired []morph.EdgeKey `json:"rewired,omitempty"`

	Children []*Report `json:"children,omitempty"`
}

func newReport(g *morph.Graph) *Report {
	return &Report{
		StructureID: g.ID(),
		NodesBefore: g.NodeCount(),
		EdgesBefore: g.EdgeCount(),
	}
}

func (r *Report) finish(g *morph.Graph) *Report {
	r.NodesAfter = g.NodeCount()
	r.EdgesAfter = g.EdgeCount()
	return r
}

// Totals aggregates counts over a report tree.
type Totals struct {
	Graphs      int `json:"graphs"`
	Fragmented  int `json:"fragmented"`
	Bridges     int `json:"bridges"`
	Removed     int `json:"removed"`
	Rewired     int `json:"rewired"`
	NodesBefore int `json:"nodes_before"`
	NodesAfter  int `json:"nodes_after"`
}

// Totals sums r and all of its descendants.
func (r *Report) Totals() Totals {
	var t Totals
	r.Walk(func(n *Report) {
		t.Graphs++
		if n.ComponentsBefore > 1 {
			t.Fragmented++
		}
		t.Bridges += len(n.Bridges)
		t.Removed += len(n.Removed)
		t.Rewired += len(n.Rewired)
		t.NodesBefore += n.NodesBefore
		t.NodesAfter += n.NodesAfter
	})
	return t
}

// Walk calls fn on r and every descendant in pre-order.
func (r *Report) Walk(fn func(*Report)) {
	if r == nil {
		return
	}
	fn(r)
	for _, c := range r.Children {
		c.Walk(fn)
	}
}
