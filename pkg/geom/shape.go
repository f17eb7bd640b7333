package geom

import (
	"errors"
	"fmt"
	"math"
)

// Shape kinds as reported by [Shape.Kind] and used in serialized graphs.
const (
	KindCircle   = "circle"
	KindPolygon  = "polygon"
	KindPolyline = "polyline"
	KindPoint    = "point"
)

var (
	// ErrEmptyShape is returned when a shape has too few vertices to be drawn.
	ErrEmptyShape = errors.New("shape has no geometry")

	// ErrBadRadius is returned for a circle with a negative or non-finite radius.
	ErrBadRadius = errors.New("circle radius must be finite and non-negative")
)

// Shape is a planar annotation traced on one section.
//
// The set of implementations is closed: [Circle], [Polygon], [Polyline] and
// [PointShape]. Shapes are values and must not be mutated once a node holding
// them has been added to a graph.
type Shape interface {
	Bounds() Rect
	Centroid() Point2
	Kind() string

	features() features
}

// features is the skeleton representation used by Distance: a set of
// segments (points are zero-length segments) inflated by radius, optionally
// filled by a closed ring.
type features struct {
	segs   [][2]Point2
	radius float64
	ring   []Point2
}

// Circle is a disc.
type Circle struct {
	Center Point2
	Radius float64
}

func (c Circle) Bounds() Rect     { return RectAround(c.Center, c.Radius) }
func (c Circle) Centroid() Point2 { return c.Center }
func (Circle) Kind() string       { return KindCircle }

func (c Circle) features() features {
	return features{segs: [][2]Point2{{c.Center, c.Center}}, radius: c.Radius}
}

// Polygon is a closed, filled outline. The closing edge from the last vertex
// back to the first is implicit.
type Polygon struct {
	Points []Point2
}

func (p Polygon) Bounds() Rect     { return pointsBounds(p.Points) }
func (p Polygon) Centroid() Point2 { return polygonCentroid(p.Points) }
func (Polygon) Kind() string       { return KindPolygon }

func (p Polygon) features() features {
	return features{segs: pathSegments(p.Points, true), ring: p.Points}
}

// Polyline is an open path.
type Polyline struct {
	Points []Point2
}

func (p Polyline) Bounds() Rect     { return pointsBounds(p.Points) }
func (p Polyline) Centroid() Point2 { return meanPoint(p.Points) }
func (Polyline) Kind() string       { return KindPolyline }

func (p Polyline) features() features {
	return features{segs: pathSegments(p.Points, false)}
}

// PointShape is a dimensionless marker.
type PointShape struct {
	P Point2
}

func (p PointShape) Bounds() Rect     { return Rect{Min: p.P, Max: p.P} }
func (p PointShape) Centroid() Point2 { return p.P }
func (PointShape) Kind() string       { return KindPoint }

func (p PointShape) features() features {
	return features{segs: [][2]Point2{{p.P, p.P}}}
}

// Validate reports whether s is drawable.
func Validate(s Shape) error {
	switch v := s.(type) {
	case nil:
		return ErrEmptyShape
	case Circle:
		if v.Radius < 0 || math.IsNaN(v.Radius) || math.IsInf(v.Radius, 0) {
			return fmt.Errorf("%w: %g", ErrBadRadius, v.Radius)
		}
	case Polygon:
		if len(v.Points) < 3 {
			return fmt.Errorf("%w: polygon needs 3 vertices, got %d", ErrEmptyShape, len(v.Points))
		}
	case Polyline:
		if len(v.Points) == 0 {
			return fmt.Errorf("%w: empty polyline", ErrEmptyShape)
		}
	}
	return nil
}

func pathSegments(pts []Point2, closed bool) [][2]Point2 {
	switch len(pts) {
	case 0:
		return nil
	case 1:
		return [][2]Point2{{pts[0], pts[0]}}
	}
	segs := make([][2]Point2, 0, len(pts))
	for i := 0; i+1 < len(pts); i++ {
		segs = append(segs, [2]Point2{pts[i], pts[i+1]})
	}
	if closed && len(pts) > 2 {
		segs = append(segs, [2]Point2{pts[len(pts)-1], pts[0]})
	}
	return segs
}

func pointsBounds(pts []Point2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r = r.Union(Rect{Min: p, Max: p})
	}
	return r
}

func meanPoint(pts []Point2) Point2 {
	if len(pts) == 0 {
		return Point2{}
	}
	var sum Point2
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(pts)))
}

// polygonCentroid is the area centroid, falling back to the vertex mean for
// degenerate (zero-area) outlines.
func polygonCentroid(pts []Point2) Point2 {
	if len(pts) < 3 {
		return meanPoint(pts)
	}
	var area, cx, cy float64
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		cross := a.X*b.Y - b.X*a.Y
		area += cross
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	if area == 0 {
		return meanPoint(pts)
	}
	area *= 0.5
	return Point2{cx / (6 * area), cy / (6 * area)}
}
