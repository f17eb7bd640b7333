package transform

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/morphgraph/pkg/morph"
)

// ErrMerge is returned by [RepairConnectivity] when two components cannot
// be bridged. It indicates a malformed graph.
var ErrMerge = errors.New("cannot merge components")

// RepairConnectivity connects every graph in the tree rooted at g into a
// single component by adding bridging edges. Graphs that are already
// connected are left untouched. See the package documentation for the
// merge order.
//
// On failure the graph keeps every bridge added so far, and the returned
// report describes them.
func RepairConnectivity(ctx context.Context, g *morph.Graph) (*Report, error) {
	return eachGraph(ctx, g, repairGraph)
}

func repairGraph(ctx context.Context, g *morph.Graph) (*Report, error) {
	r := newReport(g)
	comps := g.Components()
	r.ComponentsBefore = len(comps)

	for len(comps) > 1 {
		if err := ctx.Err(); err != nil {
			return r.finish(g), err
		}
		candidate, rest := comps[0], comps[1:]

		var target []uint64
		for _, c := range rest {
			target = append(target, c...)
		}

		a, b, _, ok := morph.NearestPair(g, candidate, target)
		if !ok {
			return r.finish(g), fmt.Errorf("graph %d: component of %d: %w", g.ID(), candidate[0], ErrMerge)
		}
		if err := g.Link(a, b); err != nil {
			return r.finish(g), fmt.Errorf("graph %d: bridge %d-%d: %w: %w", g.ID(), a, b, ErrMerge, err)
		}
		k, _ := morph.NewEdgeKey(a, b)
		r.Bridges = append(r.Bridges, k)

		for i, c := range rest {
			if _, found := slices.BinarySearch(c, b); found {
				merged := append(slices.Clone(c), candidate...)
				slices.Sort(merged)
				rest[i] = merged
				break
			}
		}
		comps = rest
		morph.SortComponents(comps)
	}
	return r.finish(g), nil
}
