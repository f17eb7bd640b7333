package morph

// BranchPointKeys returns the direct nodes with degree greater than 2, in
// ascending order.
func (g *Graph) BranchPointKeys() []uint64 {
	return g.keysWhere(func(n *Node, deg int) bool { return deg > 2 })
}

// TerminalKeys returns the direct nodes with degree exactly 1 that are not
// flagged [FlagCap], in ascending order.
func (g *Graph) TerminalKeys() []uint64 {
	return g.keysWhere(func(n *Node, deg int) bool { return deg == 1 && !n.IsCap() })
}

// ProcessKeys returns the direct nodes with degree exactly 2, in ascending
// order.
func (g *Graph) ProcessKeys() []uint64 {
	return g.keysWhere(func(n *Node, deg int) bool { return deg == 2 })
}

// IsolatedKeys returns the direct nodes with no edges, in ascending order.
func (g *Graph) IsolatedKeys() []uint64 {
	return g.keysWhere(func(n *Node, deg int) bool { return deg == 0 })
}

func (g *Graph) keysWhere(pred func(*Node, int) bool) []uint64 {
	var out []uint64
	for _, k := range g.NodeKeys() {
		if pred(g.nodes[k], g.Degree(k)) {
			out = append(out, k)
		}
	}
	return out
}

// Classification summarizes the degree classes of one graph.
type Classification struct {
	Nodes        int `json:"nodes"`
	Edges        int `json:"edges"`
	BranchPoints int `json:"branch_points"`
	Terminals    int `json:"terminals"`
	Processes    int `json:"process_nodes"`
	Isolated     int `json:"isolated"`
	Caps         int `json:"caps"`
	Components   int `json:"components"`
}

// Classify counts the degree classes of g's direct nodes.
func (g *Graph) Classify() Classification {
	c := Classification{
		Nodes:      g.NodeCount(),
		Edges:      g.EdgeCount(),
		Components: len(g.Components()),
	}
	for _, k := range g.NodeKeys() {
		n := g.nodes[k]
		switch deg := g.Degree(k); {
		case deg > 2:
			c.BranchPoints++
		case deg == 2:
			c.Processes++
		case deg == 1 && n.IsCap():
			c.Caps++
		case deg == 1:
			c.Terminals++
		default:
			c.Isolated++
		}
	}
	return c
}

// Summary is the classification of every graph in a tree.
type Summary struct {
	StructureID uint64 `json:"structure_id"`
	Type        string `json:"type,omitempty"`
	Classification
	Children []*Summary `json:"children,omitempty"`
}

// Summarize classifies g and its subgraphs, children in ascending
// structure ID order.
func Summarize(g *Graph) *Summary {
	s := &Summary{StructureID: g.ID(), Classification: g.Classify()}
	if st := g.Structure(); st != nil {
		s.Type = st.Type
	}
	for _, c := range g.Subgraphs() {
		s.Children = append(s.Children, Summarize(c))
	}
	return s
}

// Walk calls fn on s and every descendant in pre-order.
func (s *Summary) Walk(fn func(s *Summary, depth int)) {
	s.walk(fn, 0)
}

func (s *Summary) walk(fn func(*Summary, int), depth int) {
	fn(s, depth)
	for _, c := range s.Children {
		c.walk(fn, depth+1)
	}
}
