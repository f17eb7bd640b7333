package morph

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/matzehuels/morphgraph/pkg/geom"
)

func TestNearestNode(t *testing.T) {
	parent := New(1, unitScale())
	mustAdd(t, parent,
		point(t, 1, 0, 0, 0),
		point(t, 2, 10, 0, 0),
		point(t, 3, 20, 0, 0),
	)
	child := New(2, unitScale())
	mustAdd(t, child, point(t, 100, 12, 0, 0), point(t, 101, 40, 0, 0))

	key, dist, ok := NearestNode(child, parent)
	if !ok || key != 2 || dist != 2 {
		t.Errorf("NearestNode() = %d, %v, %v, want 2, 2, true", key, dist, ok)
	}
}

func TestNearestNodeUsesZ(t *testing.T) {
	parent := New(1, unitScale())
	mustAdd(t, parent, point(t, 1, 0, 0, 0), point(t, 2, 3, 0, 50))
	child := New(2, unitScale())
	mustAdd(t, child, point(t, 9, 3, 0, 0))

	// Node 2 is directly above but 50 away in Z; node 1 is 3 away in-plane.
	key, dist, ok := NearestNode(child, parent)
	if !ok || key != 1 || dist != 3 {
		t.Errorf("NearestNode() = %d, %v, %v, want 1, 3, true", key, dist, ok)
	}
}

func TestNearestNodeTieBreak(t *testing.T) {
	parent := New(1, unitScale())
	mustAdd(t, parent, point(t, 8, 10, 0, 0), point(t, 3, -10, 0, 0))
	child := New(2, unitScale())
	mustAdd(t, child, point(t, 1, 0, 0, 0))

	if key, _, _ := NearestNode(child, parent); key != 3 {
		t.Errorf("NearestNode() = %d, want 3 (smallest key on tie)", key)
	}
}

func TestNearestNodeNotFound(t *testing.T) {
	empty := New(1, unitScale())
	child := New(2, unitScale())
	mustAdd(t, child, point(t, 1, 0, 0, 0))

	if _, d, ok := NearestNode(child, empty); ok || !math.IsInf(d, 1) {
		t.Errorf("NearestNode(empty parent) = %v, %v, want +Inf, false", d, ok)
	}
	if _, _, ok := NearestNode(New(3, unitScale()), child); ok {
		t.Error("NearestNode(empty child) ok = true, want false")
	}
}

func TestAddSubgraph(t *testing.T) {
	root := New(0, unitScale())

	// Attaching to an empty parent records no back-reference until the
	// parent gains a node.
	early := New(7, unitScale())
	mustAdd(t, early, point(t, 1, 100, 0, 0))
	if err := root.AddSubgraph(early); err != nil {
		t.Fatalf("AddSubgraph() error = %v", err)
	}
	if _, ok := root.NearestNodeFor(7); ok {
		t.Error("NearestNodeFor(7) ok = true on empty parent")
	}

	mustAdd(t, root, point(t, 1, 0, 0, 0), point(t, 2, 90, 0, 0))
	if k, ok := root.NearestNodeFor(7); !ok || k != 2 {
		t.Errorf("NearestNodeFor(7) = %d, %v after parent filled, want 2, true", k, ok)
	}
	late := New(8, unitScale())
	mustAdd(t, late, point(t, 1, 5, 0, 0))
	if err := root.AddSubgraph(late); err != nil {
		t.Fatal(err)
	}
	if k, ok := root.NearestNodeFor(8); !ok || k != 1 {
		t.Errorf("NearestNodeFor(8) = %d, %v, want 1, true", k, ok)
	}
	if got := root.NearestSubgraphs(1); !slices.Equal(got, []uint64{8}) {
		t.Errorf("NearestSubgraphs(1) = %v, want [8]", got)
	}

	if err := root.AddSubgraph(New(8, unitScale())); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("AddSubgraph(dup) error = %v, want ErrDuplicateKey", err)
	}
	if err := late.AddSubgraph(root); !errors.Is(err, ErrSelfAttach) {
		t.Errorf("AddSubgraph(ancestor) error = %v, want ErrSelfAttach", err)
	}
	if err := root.AddSubgraph(nil); !errors.Is(err, ErrNilGraph) {
		t.Errorf("AddSubgraph(nil) error = %v, want ErrNilGraph", err)
	}
	if err := root.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestAttachBeforeChildHasNodes(t *testing.T) {
	root := New(0, unitScale())
	mustAdd(t, root, point(t, 1, 0, 0, 0), point(t, 2, 50, 0, 0))
	child := New(3, unitScale())
	if err := root.AddSubgraph(child); err != nil {
		t.Fatal(err)
	}
	if _, ok := root.NearestNodeFor(3); ok {
		t.Fatal("NearestNodeFor(3) ok = true for an empty child")
	}

	mustAdd(t, child, point(t, 10, 40, 0, 0))
	if k, ok := root.NearestNodeFor(3); !ok || k != 2 {
		t.Errorf("NearestNodeFor(3) = %d, %v, want 2, true", k, ok)
	}
	// A closer child node moves the record.
	mustAdd(t, child, point(t, 11, 2, 0, 0))
	if k, _ := root.NearestNodeFor(3); k != 1 {
		t.Errorf("NearestNodeFor(3) = %d after closer child node, want 1", k)
	}
	// A new parent node at the same distance loses to the smaller key.
	mustAdd(t, root, point(t, 9, 4, 0, 0))
	if k, _ := root.NearestNodeFor(3); k != 1 {
		t.Errorf("NearestNodeFor(3) = %d after tied parent node, want 1", k)
	}
	mustAdd(t, root, point(t, 5, 3, 0, 0))
	if k, _ := root.NearestNodeFor(3); k != 5 {
		t.Errorf("NearestNodeFor(3) = %d after closer parent node, want 5", k)
	}
}

// randomNodes returns n circles and points with integer coordinates, so
// that equal distances are common.
func randomNodes(t *testing.T, rng *rand.Rand, firstKey uint64, n int) []*Node {
	t.Helper()
	nodes := make([]*Node, n)
	for i := range nodes {
		center := geom.Point2{X: float64(rng.Intn(40)), Y: float64(rng.Intn(40))}
		var shape geom.Shape = geom.PointShape{P: center}
		if rng.Intn(2) == 0 {
			shape = geom.Circle{Center: center, Radius: float64(rng.Intn(3)) / 2}
		}
		node, err := NewNode(firstKey+uint64(i), shape, float64(2*rng.Intn(4)))
		if err != nil {
			t.Fatal(err)
		}
		nodes[i] = node
	}
	rng.Shuffle(n, func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })
	return nodes
}

func keysOf(nodes []*Node) []uint64 {
	keys := make([]uint64, len(nodes))
	for i, n := range nodes {
		keys[i] = n.Key
	}
	return keys
}

// scanNearestPair compares every pair, first strict minimum winning.
func scanNearestPair(g *Graph, from, to []uint64) (a, b uint64, dist float64, ok bool) {
	dist = math.Inf(1)
	for _, s := range g.lookup(from) {
		for _, d := range g.lookup(to) {
			if s.Key == d.Key {
				continue
			}
			if dd := Distance(s, d); dd < dist {
				a, b, dist, ok = s.Key, d.Key, dd, true
			}
		}
	}
	return a, b, dist, ok
}

func scanNearestNode(child, parent *Graph) (key uint64, dist float64, ok bool) {
	dist = math.Inf(1)
	for _, p := range parent.Nodes() {
		for _, c := range child.Nodes() {
			if d := Distance(p, c); d < dist {
				key, dist, ok = p.Key, d, true
			}
		}
	}
	return key, dist, ok
}

func TestNearestMatchesPairwiseScan(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		g := New(1, unitScale())
		nodes := randomNodes(t, rng, 1, 3*indexThreshold)
		mustAdd(t, g, nodes...)
		keys := keysOf(nodes)

		split := 1 + rng.Intn(10)
		cases := []struct {
			name     string
			from, to []uint64
		}{
			{"disjoint", keys[:split], keys[split:]},
			{"overlapping", keys[:split], keys},
			{"reversed", keys[split:], keys[:split]},
		}
		for _, tc := range cases {
			a, b, d, ok := NearestPair(g, tc.from, tc.to)
			wa, wb, wd, wok := scanNearestPair(g, tc.from, tc.to)
			if a != wa || b != wb || d != wd || ok != wok {
				t.Errorf("round %d %s: NearestPair() = (%d, %d, %v, %v), want (%d, %d, %v, %v)",
					round, tc.name, a, b, d, ok, wa, wb, wd, wok)
			}
		}

		child := New(2, unitScale())
		mustAdd(t, child, randomNodes(t, rng, 1000, 2*indexThreshold)...)
		k, d, ok := NearestNode(child, g)
		wk, wd, wok := scanNearestNode(child, g)
		if k != wk || d != wd || ok != wok {
			t.Errorf("round %d: NearestNode() = (%d, %v, %v), want (%d, %v, %v)", round, k, d, ok, wk, wd, wok)
		}
	}
}

func TestAttachOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for round := 0; round < 10; round++ {
		parentNodes := randomNodes(t, rng, 1, 2*indexThreshold)
		childNodes := [][]*Node{
			randomNodes(t, rng, 100, indexThreshold+8),
			randomNodes(t, rng, 200, 5),
			randomNodes(t, rng, 300, 2*indexThreshold),
		}

		// Fill everything, then attach.
		filled := New(0, unitScale())
		mustAdd(t, filled, parentNodes...)
		for i, nodes := range childNodes {
			c := New(uint64(i+1), unitScale())
			mustAdd(t, c, nodes...)
			if err := filled.AddSubgraph(c); err != nil {
				t.Fatal(err)
			}
		}

		// Attach empty graphs, then add nodes in a shuffled interleaving.
		type pending struct {
			g *Graph
			n *Node
		}
		empty := New(0, unitScale())
		var adds []pending
		for _, n := range parentNodes {
			adds = append(adds, pending{empty, n})
		}
		for i, nodes := range childNodes {
			c := New(uint64(i+1), unitScale())
			if err := empty.AddSubgraph(c); err != nil {
				t.Fatal(err)
			}
			for _, n := range nodes {
				adds = append(adds, pending{c, n})
			}
		}
		rng.Shuffle(len(adds), func(i, j int) { adds[i], adds[j] = adds[j], adds[i] })
		for _, p := range adds {
			mustAdd(t, p.g, p.n)
		}

		for _, id := range filled.SubgraphIDs() {
			want, wok := filled.NearestNodeFor(id)
			got, ok := empty.NearestNodeFor(id)
			if got != want || ok != wok {
				t.Errorf("round %d: NearestNodeFor(%d) = %d, %v when filled after attaching, want %d, %v",
					round, id, got, ok, want, wok)
			}
			child, _ := empty.Subgraph(id)
			if k, _, _ := NearestNode(child, empty); k != got {
				t.Errorf("round %d: NearestNodeFor(%d) = %d, fresh search gives %d", round, id, got, k)
			}
		}
		if err := empty.Validate(); err != nil {
			t.Errorf("round %d: Validate() error = %v", round, err)
		}
	}
}

func TestRemoveSubgraph(t *testing.T) {
	root := New(0, unitScale())
	mustAdd(t, root, point(t, 1, 0, 0, 0))
	child := New(4, unitScale())
	mustAdd(t, child, point(t, 1, 1, 0, 0))
	_ = root.AddSubgraph(child)

	got, ok := root.RemoveSubgraph(4)
	if !ok || got != child {
		t.Fatalf("RemoveSubgraph(4) = %v, %v", got, ok)
	}
	if ids := root.NearestSubgraphs(1); len(ids) != 0 {
		t.Errorf("NearestSubgraphs(1) = %v after removal, want none", ids)
	}
	if _, ok := root.RemoveSubgraph(4); ok {
		t.Error("RemoveSubgraph(4) twice ok = true")
	}
}

func TestRemoveNodeReattachesSubgraphs(t *testing.T) {
	root := New(0, unitScale())
	mustAdd(t, root, point(t, 1, 0, 0, 0), point(t, 2, 10, 0, 0))
	child := New(4, unitScale())
	mustAdd(t, child, point(t, 1, 1, 0, 0))
	_ = root.AddSubgraph(child)

	if err := root.RemoveNode(1); err != nil {
		t.Fatal(err)
	}
	if k, ok := root.NearestNodeFor(4); !ok || k != 2 {
		t.Errorf("NearestNodeFor(4) = %d, %v after removal, want 2, true", k, ok)
	}
	_ = root.RemoveNode(2)
	if _, ok := root.NearestNodeFor(4); ok {
		t.Error("NearestNodeFor(4) ok = true on emptied graph")
	}
	if err := root.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestWalk(t *testing.T) {
	root := New(0, unitScale())
	a, b, c := New(20, unitScale()), New(10, unitScale()), New(30, unitScale())
	_ = root.AddSubgraph(a)
	_ = root.AddSubgraph(b)
	_ = a.AddSubgraph(c)

	var order []uint64
	var depths []int
	_ = root.Walk(func(g *Graph, depth int) error {
		order = append(order, g.ID())
		depths = append(depths, depth)
		return nil
	})
	if !slices.Equal(order, []uint64{0, 10, 20, 30}) {
		t.Errorf("Walk() order = %v, want [0 10 20 30]", order)
	}
	if !slices.Equal(depths, []int{0, 1, 1, 2}) {
		t.Errorf("Walk() depths = %v, want [0 1 1 2]", depths)
	}
	if g, ok := root.Find(30); !ok || g != c {
		t.Errorf("Find(30) = %v, %v", g, ok)
	}
}

func TestNearestPair(t *testing.T) {
	g := New(1, unitScale())
	mustAdd(t, g,
		point(t, 1, 0, 0, 0), point(t, 2, 1, 0, 0),
		point(t, 3, 5, 0, 0), point(t, 4, 9, 0, 0),
	)
	a, b, d, ok := NearestPair(g, []uint64{1, 2}, []uint64{4, 3})
	if !ok || a != 2 || b != 3 || d != 4 {
		t.Errorf("NearestPair() = %d, %d, %v, %v, want 2, 3, 4, true", a, b, d, ok)
	}
	if _, _, _, ok := NearestPair(g, []uint64{1}, nil); ok {
		t.Error("NearestPair(empty target) ok = true")
	}
	if k, _, ok := NearestTo(g, 3, []uint64{1, 2, 3, 4}); !ok || k != 2 {
		t.Errorf("NearestTo(3) = %d, %v, want 2 (tie with 4 breaks low)", k, ok)
	}
}

func TestNearestPairShapes(t *testing.T) {
	g := New(1, unitScale())
	big, _ := NewNode(1, geom.Circle{Center: geom.Point2{}, Radius: 8}, 0)
	mustAdd(t, g, big, point(t, 2, 10, 0, 0), point(t, 3, 0, 9.5, 0))
	// Distances are measured to the circle's edge, not its center.
	_, b, d, ok := NearestPair(g, []uint64{1}, []uint64{2, 3})
	if !ok || b != 3 || math.Abs(d-1.5) > 1e-12 {
		t.Errorf("NearestPair() = %d, %v, want 3, 1.5", b, d)
	}
}
