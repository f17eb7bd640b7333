package transform

import (
	"fmt"

	"github.com/matzehuels/morphgraph/pkg/morph"
)

// RemoveNodePreserveEdges deletes key from g and re-links its former
// neighbors through the one nearest to key (the hub). Edges that already
// exist are not duplicated. It returns the edges it added.
//
// A node with fewer than two neighbors is simply deleted along with its
// edges.
func RemoveNodePreserveEdges(g *morph.Graph, key uint64) ([]morph.EdgeKey, error) {
	if !g.HasNode(key) {
		return nil, fmt.Errorf("node %d: %w", key, morph.ErrMissingNode)
	}

	var orphans []uint64
	for _, n := range g.Neighbors(key) {
		if g.HasNode(n) {
			orphans = append(orphans, n)
		}
	}

	var rewire []morph.EdgeKey
	if len(orphans) > 1 {
		hub, _, ok := morph.NearestTo(g, key, orphans)
		if ok {
			for _, o := range orphans {
				if o == hub || g.HasEdge(hub, o) {
					continue
				}
				k, err := morph.NewEdgeKey(hub, o)
				if err != nil {
					return nil, err
				}
				rewire = append(rewire, k)
			}
		}
	}

	if err := g.PurgeNode(key); err != nil {
		return nil, err
	}
	for _, k := range rewire {
		if err := g.Link(k.A, k.B); err != nil {
			return nil, fmt.Errorf("node %d: rewire %s: %w", key, k, err)
		}
	}
	return rewire, nil
}
