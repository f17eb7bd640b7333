package geom

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle on a section plane.
type Rect struct {
	Min, Max Point2
}

// RectAround returns the square of half-width r centered on c.
func RectAround(c Point2, r float64) Rect {
	return Rect{Min: Point2{c.X - r, c.Y - r}, Max: Point2{c.X + r, c.Y + r}}
}

// Union returns the smallest rectangle covering r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point2{math.Min(r.Min.X, o.Min.X), math.Min(r.Min.Y, o.Min.Y)},
		Max: Point2{math.Max(r.Max.X, o.Max.X), math.Max(r.Max.Y, o.Max.Y)},
	}
}

// Extrude lifts r into a box spanning z ± half along the Z axis.
func (r Rect) Extrude(z, half float64) Box {
	return Box{
		Min: Point3{r.Min.X, r.Min.Y, z - half},
		Max: Point3{r.Max.X, r.Max.Y, z + half},
	}
}

// Box is an axis-aligned bounding volume. Use [EmptyBox] for "no extent";
// the zero value is a degenerate box at the origin.
type Box struct {
	Min, Max Point3
}

// EmptyBox returns the empty sentinel: the identity element for [Box.Union].
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: Point3{inf, inf, inf},
		Max: Point3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether b encloses nothing.
func (b Box) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Union returns the smallest box covering b and o. The empty box is the
// identity element.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Point3{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Max: Point3{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	}
}

// Expand grows b by r on every side. Empty boxes stay empty.
func (b Box) Expand(r float64) Box {
	if b.IsEmpty() {
		return b
	}
	return Box{
		Min: Point3{b.Min.X - r, b.Min.Y - r, b.Min.Z - r},
		Max: Point3{b.Max.X + r, b.Max.Y + r, b.Max.Z + r},
	}
}

// Center returns the midpoint of b. The center of an empty box is NaN.
func (b Box) Center() Point3 {
	if b.IsEmpty() {
		nan := math.NaN()
		return Point3{nan, nan, nan}
	}
	return Point3{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2, (b.Min.Z + b.Max.Z) / 2}
}

// Size returns the extent of b along each axis.
func (b Box) Size() Point3 {
	if b.IsEmpty() {
		return Point3{}
	}
	return Point3{b.Max.X - b.Min.X, b.Max.Y - b.Min.Y, b.Max.Z - b.Min.Z}
}

// Contains reports whether p lies inside b (boundary inclusive).
func (b Box) Contains(p Point3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersects reports whether b and o share any point.
func (b Box) Intersects(o Box) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y &&
		b.Min.Z <= o.Max.Z && o.Min.Z <= b.Max.Z
}

// Distance returns the smallest Euclidean gap between b and o, 0 when they
// overlap, and +Inf when either is empty.
func (b Box) Distance(o Box) float64 {
	if b.IsEmpty() || o.IsEmpty() {
		return math.Inf(1)
	}
	dx := gap(b.Min.X, b.Max.X, o.Min.X, o.Max.X)
	dy := gap(b.Min.Y, b.Max.Y, o.Min.Y, o.Max.Y)
	dz := gap(b.Min.Z, b.Max.Z, o.Min.Z, o.Max.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// DistanceTo returns the distance from p to the nearest point of b.
func (b Box) DistanceTo(p Point3) float64 {
	return b.Distance(Box{Min: p, Max: p})
}

func gap(aMin, aMax, bMin, bMax float64) float64 {
	switch {
	case aMax < bMin:
		return bMin - aMax
	case bMax < aMin:
		return aMin - bMax
	default:
		return 0
	}
}

func (b Box) String() string {
	if b.IsEmpty() {
		return "Box(empty)"
	}
	return fmt.Sprintf("Box(%s - %s)", b.Min, b.Max)
}
