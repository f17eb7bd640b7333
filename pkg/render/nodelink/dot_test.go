package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/morphgraph/pkg/geom"
	"github.com/matzehuels/morphgraph/pkg/morph"
)

func buildStar(t *testing.T) *morph.Graph {
	t.Helper()
	g := morph.New(7, morph.DefaultScale())
	pts := map[uint64]geom.Point2{1: {}, 2: {X: 10}, 3: {Y: 10}, 4: {X: -10}, 5: {X: 20}}
	for k := uint64(1); k <= 5; k++ {
		n, err := morph.NewNode(k, geom.PointShape{P: pts[k]}, 0)
		if err != nil {
			t.Fatal(err)
		}
		if k == 3 {
			n.Flags = morph.FlagCap
		}
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range [][2]uint64{{1, 2}, {1, 3}, {1, 4}, {2, 5}} {
		if err := g.Link(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestToDOT(t *testing.T) {
	g := buildStar(t)
	dot := ToDOT(g, Options{})

	for _, want := range []string{
		"graph G {",
		"subgraph cluster_7 {",
		`s7_n1 [label="1", fillcolor="#f4a261"];`,
		`s7_n2 [label="2", shape=point`,
		`s7_n3 [label="3", shape=box];`,
		`s7_n4 [label="4", shape=doublecircle];`,
		"s7_n1 -- s7_n2;",
		"s7_n2 -- s7_n5;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() should produce an undirected graph")
	}
}

func TestToDOTDetailed(t *testing.T) {
	g := buildStar(t)
	n, _ := g.Node(4)
	n.Tags = []string{"soma"}
	n.Flags = morph.FlagTerminal

	dot := ToDOT(g, Options{Detailed: true})
	if !strings.Contains(dot, `label="4\nz: 0\nterminal\nsoma"`) {
		t.Errorf("ToDOT(Detailed) label missing flags and tags:\n%s", dot)
	}
}

func TestToDOTSubgraphs(t *testing.T) {
	root := buildStar(t)
	child := morph.New(8, morph.DefaultScale())
	n, _ := morph.NewNode(1, geom.PointShape{P: geom.Point2{X: 21}}, 0)
	if err := child.AddNode(n); err != nil {
		t.Fatal(err)
	}
	if err := root.AddSubgraph(child); err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(root, Options{Attachments: true})
	if !strings.Contains(dot, "subgraph cluster_8 {") {
		t.Errorf("ToDOT() missing child cluster:\n%s", dot)
	}
	if !strings.Contains(dot, "s7_n5 -- s8_n1 [style=dashed") {
		t.Errorf("ToDOT() missing attachment edge to nearest node 5:\n%s", dot)
	}

	shallow := ToDOT(root, Options{Attachments: true, MaxDepth: 1})
	if strings.Contains(shallow, "cluster_8") || strings.Contains(shallow, "s8_n1") {
		t.Errorf("ToDOT(MaxDepth=1) drew the child:\n%s", shallow)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() changed svg without viewBox: %s", got)
	}
}
