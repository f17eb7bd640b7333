package transform_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/morphgraph/pkg/geom"
	"github.com/matzehuels/morphgraph/pkg/morph"
	"github.com/matzehuels/morphgraph/pkg/morph/transform"
)

func ExampleRepairConnectivity() {
	g := morph.New(1, morph.DefaultScale())
	for k, x := range map[uint64]float64{1: 0, 2: 1, 3: 8, 4: 9} {
		n, _ := morph.NewNode(k, geom.PointShape{P: geom.Point2{X: x}}, 0)
		_ = g.AddNode(n)
	}
	_ = g.Link(1, 2) // a traced fragment
	_ = g.Link(3, 4) // a second fragment, never linked to the first

	rep, _ := transform.RepairConnectivity(context.Background(), g)
	fmt.Println("components before:", rep.ComponentsBefore)
	fmt.Println("bridges:", rep.Bridges)
	fmt.Println("connected:", g.IsConnected())
	// Output:
	// components before: 2
	// bridges: [(2,3)]
	// connected: true
}

func ExampleToStickFigure() {
	g := morph.New(1, morph.DefaultScale())
	for k := uint64(1); k <= 5; k++ {
		n, _ := morph.NewNode(k, geom.Circle{Center: geom.Point2{X: float64(k) * 10}, Radius: 2}, 0)
		_ = g.AddNode(n)
		if k > 1 {
			_ = g.Link(k-1, k)
		}
	}

	fmt.Println("processes:", transform.Processes(g))
	rep, _ := transform.ToStickFigure(context.Background(), g)
	fmt.Println("removed:", rep.Removed)
	fmt.Println("nodes:", g.NodeKeys())
	// Output:
	// processes: [[1 2 3 4 5]]
	// removed: [2 3 4]
	// nodes: [1 5]
}
