package morph

import (
	"cmp"
	"slices"
)

// Components returns the connected components of g's direct nodes. Each
// component lists its keys in ascending order. Components are ordered by
// size, smallest first, then by smallest member key.
//
// Edges that reference nodes no longer in g are ignored.
func (g *Graph) Components() [][]uint64 {
	seen := make(map[uint64]bool, len(g.nodes))
	var comps [][]uint64

	for _, start := range g.NodeKeys() {
		if seen[start] {
			continue
		}
		seen[start] = true
		comp := []uint64{start}
		queue := []uint64{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for next := range g.adj[cur] {
				if seen[next] || !g.HasNode(next) {
					continue
				}
				seen[next] = true
				comp = append(comp, next)
				queue = append(queue, next)
			}
		}
		slices.Sort(comp)
		comps = append(comps, comp)
	}

	SortComponents(comps)
	return comps
}

// SortComponents orders sorted key sets by length, then by first key. The
// sort is stable.
func SortComponents(comps [][]uint64) {
	slices.SortStableFunc(comps, func(a, b []uint64) int {
		if c := cmp.Compare(len(a), len(b)); c != 0 {
			return c
		}
		if len(a) == 0 {
			return 0
		}
		return cmp.Compare(a[0], b[0])
	})
}

// IsConnected reports whether g has at most one component.
func (g *Graph) IsConnected() bool {
	return len(g.Components()) <= 1
}
