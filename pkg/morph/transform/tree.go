package transform

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/morphgraph/pkg/morph"
)

// maxSiblingWorkers caps the goroutines started per level of the tree.
var maxSiblingWorkers = min(runtime.NumCPU(), 8)

type graphFunc func(ctx context.Context, g *morph.Graph) (*Report, error)

// eachGraph applies fn to g, then to every subgraph. Siblings run
// concurrently; each goroutine has exclusive use of its own subtree.
// The returned report tree is complete up to the first failure.
func eachGraph(ctx context.Context, g *morph.Graph, fn graphFunc) (*Report, error) {
	if g == nil {
		return nil, morph.ErrNilGraph
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := fn(ctx, g)
	if err != nil {
		return r, err
	}

	children := g.Subgraphs()
	if len(children) == 0 {
		return r, nil
	}
	r.Children = make([]*Report, len(children))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxSiblingWorkers)
	for i, child := range children {
		eg.Go(func() error {
			cr, err := eachGraph(ctx, child, fn)
			r.Children[i] = cr
			return err
		})
	}
	return r, eg.Wait()
}
