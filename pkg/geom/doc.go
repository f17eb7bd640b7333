// Package geom provides the planar and volumetric primitives used by the
// morphology graph: shapes drawn on a single section, their 2-D bounding
// rectangles, and axis-aligned boxes extruded through the section thickness.
//
// # Shapes
//
// Annotations are traced section by section, so every [Shape] is planar.
// The package supports four kinds:
//
//   - [Circle]: a center and radius, the common case for skeleton locations
//   - [Polygon]: a closed, filled outline
//   - [Polyline]: an open path (e.g. a traced process fragment)
//   - [PointShape]: a dimensionless marker
//
// [Distance] computes the nearest-feature distance between two shapes. Two
// shapes that overlap, or where one contains the other, are at distance 0.
//
// # Boxes
//
// [Box] is an axis-aligned bounding volume. The zero-extent box at the origin
// is a valid box, so emptiness is represented explicitly by [EmptyBox]; use
// [Box.IsEmpty] rather than comparing against a zero value.
//
// Box union is associative and commutative and, because it only selects
// existing coordinates via min/max, it is exact in floating point. This is
// what makes [ParallelUnion] produce results bit-identical to [UnionAll].
package geom
