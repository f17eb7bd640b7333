package morph

import (
	"math"
	"slices"

	"github.com/matzehuels/morphgraph/pkg/geom"
)

// indexThreshold is the candidate count above which nearest-node searches
// ask the spatial index for candidates instead of scanning all of them.
const indexThreshold = 32

// attachment is the recorded nearest node of a subgraph and its distance.
type attachment struct {
	key  uint64
	dist float64
}

// NearestNode returns the node of parent closest to any direct node of
// child, and that distance. ok is false when either graph has no nodes.
//
// Parent nodes are visited in ascending key order and the first one
// achieving the minimum wins.
func NearestNode(child, parent *Graph) (key uint64, dist float64, ok bool) {
	if child == nil || parent == nil || child.NodeCount() == 0 || parent.NodeCount() == 0 {
		return 0, math.Inf(1), false
	}
	childVol := child.NodesVolume()
	cands := newCandidates(child, child.Nodes())
	t := parent.SectionThickness()

	best := math.Inf(1)
	for _, p := range parent.Nodes() {
		pv := p.BoundingVolume(t)
		if pv.Distance(childVol) > best {
			continue
		}
		for _, c := range cands.near(pv, best) {
			if d, closer := closerThan(p, c, best); closer {
				best, key, ok = d, p.Key, true
			}
		}
	}
	return key, best, ok
}

// NearestPair returns the pair (a in from, b in to) with the smallest node
// distance in g. Both sets are scanned in ascending key order; the first
// pair achieving the minimum wins. Keys not present in g are ignored. ok is
// false when no pair exists.
func NearestPair(g *Graph, from, to []uint64) (a, b uint64, dist float64, ok bool) {
	src := g.lookup(from)
	dst := g.lookup(to)
	if len(src) == 0 || len(dst) == 0 {
		return 0, 0, math.Inf(1), false
	}

	t := g.SectionThickness()
	dstVol := geom.EmptyBox()
	for _, n := range dst {
		dstVol = dstVol.Union(n.BoundingVolume(t))
	}
	cands := newCandidates(g, dst)

	best := math.Inf(1)
	for _, s := range src {
		sv := s.BoundingVolume(t)
		if sv.Distance(dstVol) > best {
			continue
		}
		for _, d := range cands.near(sv, best) {
			if s.Key == d.Key {
				continue
			}
			if dd, closer := closerThan(s, d, best); closer {
				best, a, b, ok = dd, s.Key, d.Key, true
			}
		}
	}
	return a, b, best, ok
}

// NearestTo returns the candidate closest to the node key. Candidates are
// scanned in ascending order and key itself is skipped.
func NearestTo(g *Graph, key uint64, candidates []uint64) (uint64, float64, bool) {
	if !g.HasNode(key) {
		return 0, math.Inf(1), false
	}
	_, b, d, ok := NearestPair(g, []uint64{key}, candidates)
	return b, d, ok
}

// closerThan computes the distance between a and b unless their Z
// separation alone already rules them out against best.
func closerThan(a, b *Node, best float64) (float64, bool) {
	if math.Abs(a.Z-b.Z) >= best {
		return 0, false
	}
	d := Distance(a, b)
	return d, d < best
}

// candidates is a key-ordered subset of a graph's nodes that can be
// narrowed down through the graph's spatial index.
type candidates struct {
	g     *Graph
	nodes []*Node
	keys  map[uint64]bool // nil when nodes holds every node of g
}

func newCandidates(g *Graph, nodes []*Node) candidates {
	c := candidates{g: g, nodes: nodes}
	if len(nodes) > indexThreshold && len(nodes) < g.NodeCount() {
		c.keys = make(map[uint64]bool, len(nodes))
		for _, n := range nodes {
			c.keys[n.Key] = true
		}
	}
	return c
}

// near returns, in ascending key order, every candidate that can lie
// closer than best to a node with volume vol. Box distance never exceeds
// node distance, so nothing dropped here could beat best.
func (c candidates) near(vol geom.Box, best float64) []*Node {
	if len(c.nodes) <= indexThreshold || math.IsInf(best, 1) || math.IsNaN(best) {
		return c.nodes
	}
	// The slack keeps rounding in Expand from dropping a candidate at
	// exactly best.
	keys := c.g.SpatialIndex().Intersecting(vol.Expand(best * (1 + 1e-9)))
	out := make([]*Node, 0, len(keys))
	for _, k := range keys {
		if c.keys != nil && !c.keys[k] {
			continue
		}
		if n, ok := c.g.nodes[k]; ok {
			out = append(out, n)
		}
	}
	return out
}

// nearestIn returns the node of g closest to n, ties going to the smaller
// key, considering only distances of at most limit. dist(g's node) is
// measured with g's node first when gFirst is set.
func nearestIn(g *Graph, n *Node, nVol geom.Box, limit float64, gFirst bool) (uint64, float64, bool) {
	// Strict comparisons below, so admit limit itself.
	best := math.Nextafter(limit, math.Inf(1))
	var (
		key uint64
		ok  bool
	)
	for _, c := range newCandidates(g, g.Nodes()).near(nVol, best) {
		a, b := n, c
		if gFirst {
			a, b = c, n
		}
		if d, closer := closerThan(a, b, best); closer {
			best, key, ok = d, c.Key, true
		}
	}
	return key, best, ok
}

// lookup resolves keys to nodes in ascending key order, dropping unknown
// and repeated keys.
func (g *Graph) lookup(keys []uint64) []*Node {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	out := make([]*Node, 0, len(sorted))
	for _, k := range sorted {
		if n, ok := g.nodes[k]; ok {
			out = append(out, n)
		}
	}
	return out
}
