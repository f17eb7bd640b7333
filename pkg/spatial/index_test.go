package spatial

import (
	"slices"
	"testing"

	"github.com/matzehuels/morphgraph/pkg/geom"
)

func cube(x, y, z, half float64) geom.Box {
	return geom.Box{
		Min: geom.Point3{X: x - half, Y: y - half, Z: z - half},
		Max: geom.Point3{X: x + half, Y: y + half, Z: z + half},
	}
}

func fixture() []Item {
	return []Item{
		{Key: 5, Box: cube(0, 0, 0, 1)},
		{Key: 2, Box: cube(10, 0, 0, 1)},
		{Key: 9, Box: cube(0, 10, 0, 1)},
		{Key: 7, Box: cube(10, 10, 5, 1)},
		{Key: 3, Box: geom.Box{Min: geom.Point3{X: 20, Y: 20, Z: 0}, Max: geom.Point3{X: 20, Y: 20, Z: 0}}},
		{Key: 11, Box: geom.EmptyBox()},
	}
}

func TestIndexLen(t *testing.T) {
	idx := New(fixture())
	if idx.Len() != 5 {
		t.Errorf("Len() = %d, want 5", idx.Len())
	}
}

func TestIndexNearest(t *testing.T) {
	idx := New(fixture())
	tests := []struct {
		name string
		p    geom.Point3
		want uint64
	}{
		{"inside", geom.Point3{X: 0.5, Y: 0.5, Z: 0}, 5},
		{"near right", geom.Point3{X: 8, Y: 0, Z: 0}, 2},
		{"degenerate box", geom.Point3{X: 19, Y: 19, Z: 0}, 3},
		// Equidistant from 5 and 2: the smaller key wins.
		{"tie", geom.Point3{X: 5, Y: 0, Z: 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, ok := idx.Nearest(tt.p)
			if !ok {
				t.Fatal("Nearest() ok = false")
			}
			if got != tt.want {
				t.Errorf("Nearest() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIndexNearestEmpty(t *testing.T) {
	if _, _, ok := New(nil).Nearest(geom.Point3{}); ok {
		t.Error("Nearest() on empty index ok = true, want false")
	}
	var idx *Index
	if _, _, ok := idx.Nearest(geom.Point3{}); ok {
		t.Error("Nearest() on nil index ok = true, want false")
	}
}

func TestIndexIntersecting(t *testing.T) {
	idx := New(fixture())
	got := idx.Intersecting(geom.Box{Min: geom.Point3{X: -1, Y: -1, Z: -1}, Max: geom.Point3{X: 10, Y: 10, Z: 1}})
	want := []uint64{2, 5, 9}
	if !slices.Equal(got, want) {
		t.Errorf("Intersecting() = %v, want %v", got, want)
	}
	if got := idx.Intersecting(geom.EmptyBox()); got != nil {
		t.Errorf("Intersecting(empty) = %v, want nil", got)
	}
}

func TestIndexWithin(t *testing.T) {
	idx := New(fixture())
	got := idx.Within(geom.Point3{X: 5, Y: 5, Z: 0}, 6)
	want := []uint64{2, 5, 9}
	if !slices.Equal(got, want) {
		t.Errorf("Within() = %v, want %v", got, want)
	}
}

func TestIndexOrderIndependent(t *testing.T) {
	items := fixture()
	rev := slices.Clone(items)
	slices.Reverse(rev)
	a, b := New(items), New(rev)

	q := geom.Box{Min: geom.Point3{X: -50, Y: -50, Z: -50}, Max: geom.Point3{X: 50, Y: 50, Z: 50}}
	if !slices.Equal(a.Intersecting(q), b.Intersecting(q)) {
		t.Errorf("Intersecting() differs by insertion order: %v vs %v", a.Intersecting(q), b.Intersecting(q))
	}
	for _, p := range []geom.Point3{{X: 5}, {X: 3, Y: 7}, {X: 15, Y: 15, Z: 2}} {
		ka, _, _ := a.Nearest(p)
		kb, _, _ := b.Nearest(p)
		if ka != kb {
			t.Errorf("Nearest(%v) = %d vs %d by insertion order", p, ka, kb)
		}
	}
}
