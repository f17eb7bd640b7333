package transform

import (
	"context"

	"github.com/matzehuels/morphgraph/pkg/morph"
)

// ToStickFigure removes every degree-2 node from every graph in the tree
// rooted at g, splicing each one out with [RemoveNodePreserveEdges]. What
// remains are branch points, endpoints and the edges between them.
//
// Removing a node can drop a neighbor to degree 2 when the splice edge
// already existed, so passes repeat until no degree-2 node is left.
func ToStickFigure(ctx context.Context, g *morph.Graph) (*Report, error) {
	return eachGraph(ctx, g, reduceGraph)
}

func reduceGraph(ctx context.Context, g *morph.Graph) (*Report, error) {
	r := newReport(g)
	for {
		removed := 0
		for _, k := range g.ProcessKeys() {
			if err := ctx.Err(); err != nil {
				return r.finish(g), err
			}
			// Earlier removals in this pass may have changed k's degree.
			if g.Degree(k) != 2 {
				continue
			}
			added, err := RemoveNodePreserveEdges(g, k)
			if err != nil {
				return r.finish(g), err
			}
			r.Removed = append(r.Removed, k)
			r.Rewired = append(r.Rewired, added...)
			removed++
		}
		if removed == 0 {
			return r.finish(g), nil
		}
	}
}
