package io

import (
	"fmt"

	"github.com/matzehuels/morphgraph/pkg/geom"
	"github.com/matzehuels/morphgraph/pkg/morph"
)

// =============================================================================
// Wire types
// =============================================================================

// Graph is the serialized form of one structure's graph and its subtree.
type Graph struct {
	StructureID uint64           `json:"structure_id"`
	Scale       *morph.Scale     `json:"scale,omitempty"`
	Structure   *morph.Structure `json:"structure,omitempty"`
	Nodes       []Node           `json:"nodes"`
	Edges       []Edge           `json:"edges"`
	Subgraphs   []Graph          `json:"subgraphs,omitempty"`
}

// Node is a serialized node.
type Node struct {
	ID        uint64   `json:"id"`
	Z         float64  `json:"z"`
	UnscaledZ float64  `json:"unscaled_z,omitempty"`
	Shape     Shape    `json:"shape"`
	Flags     []string `json:"flags,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Edge is a serialized edge.
type Edge struct {
	A uint64 `json:"a"`
	B uint64 `json:"b"`
}

// Shape is a serialized [geom.Shape].
type Shape struct {
	Kind   string       `json:"kind"`
	Center *[2]float64  `json:"center,omitempty"`
	Radius float64      `json:"radius,omitempty"`
	Points [][2]float64 `json:"points,omitempty"`
}

// =============================================================================
// Shape conversion
// =============================================================================

// ShapeFrom converts a geometry value to its wire form.
func ShapeFrom(s geom.Shape) Shape {
	switch v := s.(type) {
	case geom.Circle:
		return Shape{Kind: geom.KindCircle, Center: pair(v.Center), Radius: v.Radius}
	case geom.PointShape:
		return Shape{Kind: geom.KindPoint, Center: pair(v.P)}
	case geom.Polygon:
		return Shape{Kind: geom.KindPolygon, Points: pairs(v.Points)}
	case geom.Polyline:
		return Shape{Kind: geom.KindPolyline, Points: pairs(v.Points)}
	}
	return Shape{}
}

// Geom converts the wire form back to a validated geometry value.
func (s Shape) Geom() (geom.Shape, error) {
	var out geom.Shape
	switch s.Kind {
	case geom.KindCircle:
		if s.Center == nil {
			return nil, fmt.Errorf("circle: missing center")
		}
		out = geom.Circle{Center: point(*s.Center), Radius: s.Radius}
	case geom.KindPoint:
		if s.Center == nil {
			return nil, fmt.Errorf("point: missing center")
		}
		out = geom.PointShape{P: point(*s.Center)}
	case geom.KindPolygon:
		out = geom.Polygon{Points: points(s.Points)}
	case geom.KindPolyline:
		out = geom.Polyline{Points: points(s.Points)}
	default:
		return nil, fmt.Errorf("unknown shape kind %q", s.Kind)
	}
	if err := geom.Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

func pair(p geom.Point2) *[2]float64 { return &[2]float64{p.X, p.Y} }

func pairs(ps []geom.Point2) [][2]float64 {
	out := make([][2]float64, len(ps))
	for i, p := range ps {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

func point(p [2]float64) geom.Point2 { return geom.Point2{X: p[0], Y: p[1]} }

func points(ps [][2]float64) []geom.Point2 {
	out := make([]geom.Point2, len(ps))
	for i, p := range ps {
		out[i] = point(p)
	}
	return out
}

func flagsFrom(names []string) (morph.Flags, error) {
	var f morph.Flags
	for _, name := range names {
		bit, err := morph.ParseFlag(name)
		if err != nil {
			return 0, err
		}
		f |= bit
	}
	return f, nil
}
