package geom

import "math"

// Distance returns the nearest-feature distance between a and b on the
// section plane. It is 0 when the shapes touch, overlap, or one lies inside
// a filled polygon or circle of the other, and +Inf if either has no geometry.
func Distance(a, b Shape) float64 {
	fa, fb := a.features(), b.features()
	if len(fa.segs) == 0 || len(fb.segs) == 0 {
		return math.Inf(1)
	}
	if contained(fa, fb) || contained(fb, fa) {
		return 0
	}
	best := math.Inf(1)
	for _, sa := range fa.segs {
		for _, sb := range fb.segs {
			d := segmentDistance(sa[0], sa[1], sb[0], sb[1])
			if d < best {
				best = d
				if best == 0 {
					break
				}
			}
		}
	}
	return math.Max(0, best-fa.radius-fb.radius)
}

// Distance3 combines the planar distance between two shapes with their Z
// separation as sqrt(h² + dz²).
func Distance3(a Shape, za float64, b Shape, zb float64) float64 {
	return math.Hypot(Distance(a, b), za-zb)
}

// contained reports whether any skeleton point of inner lies inside the
// filled ring of outer.
func contained(outer, inner features) bool {
	if len(outer.ring) < 3 {
		return false
	}
	for _, s := range inner.segs {
		if pointInRing(s[0], outer.ring) || pointInRing(s[1], outer.ring) {
			return true
		}
	}
	return false
}

// pointInRing is the even-odd ray casting test. Points exactly on the
// boundary are picked up by the segment distance instead.
func pointInRing(p Point2, ring []Point2) bool {
	in := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

func pointSegmentDistance(p, a, b Point2) float64 {
	ab := b.Sub(a)
	den := ab.Dot(ab)
	if den == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / den
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(ab.Scale(t)))
}

func segmentDistance(a1, a2, b1, b2 Point2) float64 {
	if segmentsIntersect(a1, a2, b1, b2) {
		return 0
	}
	return math.Min(
		math.Min(pointSegmentDistance(a1, b1, b2), pointSegmentDistance(a2, b1, b2)),
		math.Min(pointSegmentDistance(b1, a1, a2), pointSegmentDistance(b2, a1, a2)),
	)
}

func orient(a, b, c Point2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment(a, b, p Point2) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

func segmentsIntersect(a1, a2, b1, b2 Point2) bool {
	d1 := orient(b1, b2, a1)
	d2 := orient(b1, b2, a2)
	d3 := orient(a1, a2, b1)
	d4 := orient(a1, a2, b2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	switch {
	case d1 == 0 && onSegment(b1, b2, a1):
		return true
	case d2 == 0 && onSegment(b1, b2, a2):
		return true
	case d3 == 0 && onSegment(a1, a2, b1):
		return true
	case d4 == 0 && onSegment(a1, a2, b2):
		return true
	}
	return false
}
