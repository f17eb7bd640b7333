package morph

import (
	"fmt"
	"strings"

	"github.com/matzehuels/morphgraph/pkg/geom"
)

// Flags are per-node annotation markers.
type Flags uint8

const (
	// FlagTerminal marks an annotated end of a process.
	FlagTerminal Flags = 1 << iota
	// FlagOffEdge marks a node whose process leaves the imaged volume.
	FlagOffEdge
	// FlagUntraceable marks a node the annotator could not follow further.
	FlagUntraceable
	// FlagCap marks an intentional rounded endpoint. Capped nodes are never
	// reported as terminals.
	FlagCap
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagTerminal, "terminal"},
	{FlagOffEdge, "off_edge"},
	{FlagUntraceable, "untraceable"},
	{FlagCap, "cap"},
}

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// Names returns the names of the set flags in declaration order.
func (f Flags) Names() []string {
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return names
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	return strings.Join(f.Names(), "|")
}

// ParseFlag returns the flag with the given name.
func ParseFlag(name string) (Flags, error) {
	for _, fn := range flagNames {
		if fn.name == name {
			return fn.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown flag %q", name)
}

// Node is a located shape in a morphology graph.
//
// Nodes are owned by exactly one [Graph]. The shape and Z must not change
// after the node is added, since the graph caches volumes derived from them.
type Node struct {
	Key       uint64     // unique within the owning graph
	Shape     geom.Shape // planar geometry on the node's section
	Z         float64    // section position in physical units
	UnscaledZ float64    // section index as annotated
	Flags     Flags
	Tags      []string
}

// NewNode returns a node at physical height z. It fails with [ErrNilShape]
// if shape is nil and with the [geom.Validate] error if it is malformed.
func NewNode(key uint64, shape geom.Shape, z float64) (*Node, error) {
	if shape == nil {
		return nil, fmt.Errorf("node %d: %w", key, ErrNilShape)
	}
	if err := geom.Validate(shape); err != nil {
		return nil, fmt.Errorf("node %d: %w", key, err)
	}
	return &Node{Key: key, Shape: shape, Z: z}, nil
}

// IsCap reports whether the node is a capped endpoint.
func (n *Node) IsCap() bool { return n.Flags.Has(FlagCap) }

// Centroid returns the 3-D center of the node's shape.
func (n *Node) Centroid() geom.Point3 {
	c := n.Shape.Centroid()
	return geom.Point3{X: c.X, Y: c.Y, Z: n.Z}
}

// BoundingVolume returns the shape's bounding rectangle extruded by half the
// section thickness above and below the node's Z.
func (n *Node) BoundingVolume(sectionThickness float64) geom.Box {
	return n.Shape.Bounds().Extrude(n.Z, sectionThickness/2)
}

// Distance returns the distance between two nodes: the planar
// nearest-feature distance of their shapes combined with their Z separation.
func Distance(a, b *Node) float64 {
	return geom.Distance3(a.Shape, a.Z, b.Shape, b.Z)
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(%d %s z=%g)", n.Key, n.Shape.Kind(), n.Z)
}
