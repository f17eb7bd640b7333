package transform

import (
	"slices"

	"github.com/matzehuels/morphgraph/pkg/morph"
)

// Processes partitions the degree-2 nodes of g into maximal chains. Each
// chain runs from one boundary node to the other in walk order; boundary
// nodes (branch points and endpoints) are included and may appear in more
// than one chain. g is not modified.
//
// Seeds are taken in ascending key order. From a seed the walk extends
// toward its smaller neighbor at the front of the chain and toward its
// larger neighbor at the back.
func Processes(g *morph.Graph) [][]uint64 {
	pool := make(map[uint64]bool)
	for _, k := range g.ProcessKeys() {
		pool[k] = true
	}

	var chains [][]uint64
	for len(pool) > 0 {
		seed := minKey(pool)
		c := &chain{keys: []uint64{seed}, in: map[uint64]bool{seed: true}}
		nbrs := g.Neighbors(seed)
		c.walk(g, seed, nbrs[0], true)
		c.walk(g, seed, nbrs[1], false)

		for _, k := range c.keys {
			delete(pool, k)
		}
		chains = append(chains, c.keys)
	}
	return chains
}

type chain struct {
	keys []uint64
	in   map[uint64]bool
}

func (c *chain) add(k uint64, front bool) {
	if front {
		c.keys = slices.Insert(c.keys, 0, k)
	} else {
		c.keys = append(c.keys, k)
	}
	c.in[k] = true
}

// walk extends the chain from prev through next, continuing while the
// newly added node has degree 2. A node already in the chain ends the walk;
// on malformed input this is what stops a ring from looping forever.
func (c *chain) walk(g *morph.Graph, prev, next uint64, front bool) {
	for {
		if c.in[next] || !g.HasNode(next) {
			return
		}
		c.add(next, front)
		if g.Degree(next) != 2 {
			return
		}
		step, ok := uint64(0), false
		for _, n := range g.Neighbors(next) {
			if n == prev || c.in[n] {
				continue
			}
			step, ok = n, true
			break
		}
		if !ok {
			return
		}
		prev, next = next, step
	}
}

func minKey(set map[uint64]bool) uint64 {
	first := true
	var m uint64
	for k := range set {
		if first || k < m {
			m, first = k, false
		}
	}
	return m
}

// ProcessSet holds the chains of one graph and of its subgraphs.
type ProcessSet struct {
	StructureID uint64        `json:"structure_id"`
	Chains      [][]uint64    `json:"chains"`
	Children    []*ProcessSet `json:"children,omitempty"`
}

// ProcessTree runs [Processes] on every graph in the tree rooted at g.
func ProcessTree(g *morph.Graph) *ProcessSet {
	ps := &ProcessSet{StructureID: g.ID(), Chains: Processes(g)}
	for _, c := range g.Subgraphs() {
		ps.Children = append(ps.Children, ProcessTree(c))
	}
	return ps
}

// Count returns the number of chains in the set and its descendants.
func (ps *ProcessSet) Count() int {
	n := len(ps.Chains)
	for _, c := range ps.Children {
		n += c.Count()
	}
	return n
}
