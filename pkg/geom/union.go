package geom

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultParallelThreshold is the box count at which ParallelUnion fans
	// out. Smaller inputs are reduced sequentially.
	DefaultParallelThreshold = 64

	maxUnionWorkers = 8
)

// UnionAll reduces boxes sequentially. An empty input yields [EmptyBox].
func UnionAll(boxes []Box) Box {
	out := EmptyBox()
	for _, b := range boxes {
		out = out.Union(b)
	}
	return out
}

// ParallelUnion reduces boxes by splitting them into contiguous chunks and
// folding each chunk on its own goroutine. Inputs shorter than threshold are
// reduced with [UnionAll]. A threshold <= 0 selects [DefaultParallelThreshold].
//
// The result is identical to UnionAll for any input.
func ParallelUnion(ctx context.Context, boxes []Box, threshold int) (Box, error) {
	if threshold <= 0 {
		threshold = DefaultParallelThreshold
	}
	if len(boxes) < threshold {
		return UnionAll(boxes), nil
	}

	workers := min(len(boxes)/threshold+1, min(runtime.NumCPU(), maxUnionWorkers))
	if workers < 2 {
		return UnionAll(boxes), nil
	}
	chunk := (len(boxes) + workers - 1) / workers
	partial := make([]Box, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		lo := w * chunk
		hi := min(lo+chunk, len(boxes))
		if lo >= hi {
			partial[w] = EmptyBox()
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			partial[w] = UnionAll(boxes[lo:hi])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return EmptyBox(), err
	}
	return UnionAll(partial), nil
}
