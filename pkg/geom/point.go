package geom

import (
	"fmt"
	"math"
)

// Point2 is a position on a section plane.
type Point2 struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point2) Sub(q Point2) Point2 { return Point2{p.X - q.X, p.Y - q.Y} }

// Add returns p + q.
func (p Point2) Add(q Point2) Point2 { return Point2{p.X + q.X, p.Y + q.Y} }

// Scale returns p multiplied by s.
func (p Point2) Scale(s float64) Point2 { return Point2{p.X * s, p.Y * s} }

// Dot returns the dot product of p and q.
func (p Point2) Dot(q Point2) float64 { return p.X*q.X + p.Y*q.Y }

// Dist returns the Euclidean distance between p and q.
func (p Point2) Dist(q Point2) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

func (p Point2) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Point3 is a position in physical 3-D space.
type Point3 struct {
	X, Y, Z float64
}

// Dist returns the Euclidean distance between p and q.
func (p Point3) Dist(q Point3) float64 {
	dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// XY drops the Z coordinate.
func (p Point3) XY() Point2 { return Point2{p.X, p.Y} }

func (p Point3) String() string { return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z) }
