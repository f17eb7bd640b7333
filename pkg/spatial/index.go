// Package spatial provides a read-only spatial index over keyed bounding
// volumes, backed by an R-tree.
//
// An [Index] is built once from a snapshot of items and never updated in
// place; owners rebuild it from scratch when their contents change. Query
// results are sorted by key so two indexes built from the same items answer
// identically regardless of insertion order.
package spatial

import (
	"math"
	"slices"

	"github.com/dhconnelly/rtreego"

	"github.com/matzehuels/morphgraph/pkg/geom"
)

const (
	dims = 3

	// Branching factor bounds for the underlying R-tree.
	minChildren = 4
	maxChildren = 16

	// minLength pads degenerate extents; the R-tree rejects zero-width rects.
	minLength = 1e-9
)

// Item is one keyed volume to index.
type Item struct {
	Key uint64
	Box geom.Box
}

type entry struct {
	Item
	rect rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect { return e.rect }

// Index answers nearest-neighbor and range queries over a fixed item set.
type Index struct {
	tree  *rtreego.Rtree
	items []*entry
}

// New builds an index over items. Items with empty boxes are skipped.
func New(items []Item) *Index {
	idx := &Index{tree: rtreego.NewTree(dims, minChildren, maxChildren)}
	for _, it := range items {
		if it.Box.IsEmpty() {
			continue
		}
		e := &entry{Item: it, rect: toRect(it.Box)}
		idx.items = append(idx.items, e)
		idx.tree.Insert(e)
	}
	return idx
}

// Len returns the number of indexed items.
func (idx *Index) Len() int { return len(idx.items) }

// Nearest returns the key whose box is closest to p. Ties resolve to the
// smallest key. ok is false when the index is empty.
func (idx *Index) Nearest(p geom.Point3) (key uint64, dist float64, ok bool) {
	if idx == nil || len(idx.items) == 0 {
		return 0, math.Inf(1), false
	}
	hit, _ := idx.tree.NearestNeighbor(rtreego.Point{p.X, p.Y, p.Z}).(*entry)
	if hit == nil {
		return 0, math.Inf(1), false
	}
	// The tree's answer is approximate under padding and arbitrary under
	// ties; settle both with an exact pass over everything at that radius.
	radius := hit.Box.DistanceTo(p) + 2*minLength
	best := math.Inf(1)
	for _, e := range idx.search(geom.Box{
		Min: geom.Point3{X: p.X - radius, Y: p.Y - radius, Z: p.Z - radius},
		Max: geom.Point3{X: p.X + radius, Y: p.Y + radius, Z: p.Z + radius},
	}) {
		if d := e.Box.DistanceTo(p); d < best {
			best, key, ok = d, e.Key, true
		}
	}
	return key, best, ok
}

// Intersecting returns the keys of all items whose boxes intersect b, in
// ascending order.
func (idx *Index) Intersecting(b geom.Box) []uint64 {
	if idx == nil || b.IsEmpty() {
		return nil
	}
	var keys []uint64
	for _, e := range idx.search(b) {
		if e.Box.Intersects(b) {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Within returns the keys of all items whose boxes lie at most radius from
// p, in ascending order.
func (idx *Index) Within(p geom.Point3, radius float64) []uint64 {
	if idx == nil || radius < 0 {
		return nil
	}
	query := geom.Box{
		Min: geom.Point3{X: p.X - radius, Y: p.Y - radius, Z: p.Z - radius},
		Max: geom.Point3{X: p.X + radius, Y: p.Y + radius, Z: p.Z + radius},
	}
	var keys []uint64
	for _, e := range idx.search(query) {
		if e.Box.DistanceTo(p) <= radius {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// search returns candidate entries from the tree sorted by key.
func (idx *Index) search(b geom.Box) []*entry {
	hits := idx.tree.SearchIntersect(toRect(b))
	out := make([]*entry, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*entry))
	}
	slices.SortFunc(out, func(a, b *entry) int {
		switch {
		case a.Key < b.Key:
			return -1
		case a.Key > b.Key:
			return 1
		}
		return 0
	})
	return out
}

func toRect(b geom.Box) rtreego.Rect {
	size := b.Size()
	r, err := rtreego.NewRect(
		rtreego.Point{b.Min.X, b.Min.Y, b.Min.Z},
		[]float64{pad(size.X), pad(size.Y), pad(size.Z)},
	)
	if err != nil {
		// Unreachable: every length is padded to be positive.
		panic(err)
	}
	return r
}

func pad(v float64) float64 {
	if v < minLength || math.IsNaN(v) {
		return minLength
	}
	return v
}
