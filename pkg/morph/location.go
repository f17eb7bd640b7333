package morph

import (
	"fmt"
	"slices"

	"github.com/matzehuels/morphgraph/pkg/geom"
)

// Location is an annotated point of a structure as supplied by an import
// layer. Any annotation store adapter can satisfy it.
type Location interface {
	ID() uint64
	Shape() geom.Shape
	Z() float64         // physical units
	UnscaledZ() float64 // section index
	Flags() Flags
	Tags() []string
}

// LocationLink is an annotated connection between two locations.
type LocationLink interface {
	Endpoints() (a, b uint64)
}

// NewNodeFromLocation copies loc into a new node.
func NewNodeFromLocation(loc Location) (*Node, error) {
	n, err := NewNode(loc.ID(), loc.Shape(), loc.Z())
	if err != nil {
		return nil, err
	}
	if err := geom.Validate(n.Shape); err != nil {
		return nil, fmt.Errorf("location %d: %w", loc.ID(), err)
	}
	n.UnscaledZ = loc.UnscaledZ()
	n.Flags = loc.Flags()
	n.Tags = slices.Clone(loc.Tags())
	return n, nil
}

// NewEdgeFromLink returns the edge described by l.
func NewEdgeFromLink(l LocationLink) (*Edge, error) {
	a, b := l.Endpoints()
	return NewEdge(a, b)
}
