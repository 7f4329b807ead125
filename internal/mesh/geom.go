package mesh

import (
	"github.com/Faultbox/fairway/pkg/math"
)

// signedAreaXZ returns twice the signed area of triangle (a, b, c) on the
// ground plane. Positive when the triangle winds counter-clockwise seen
// from above, i.e. its face normal points up (+Y).
func signedAreaXZ(a, b, c math.Vec2) float32 {
	return (b.Y-a.Y)*(c.X-a.X) - (b.X-a.X)*(c.Y-a.Y)
}

// pointInTriangleXZ reports whether p lies inside or on the border of the
// triangle (a, b, c). The test checks that p sits on the same side of all
// three edges, so vertex order does not matter.
func pointInTriangleXZ(p, a, b, c math.Vec2) bool {
	d1 := signedAreaXZ(p, a, b)
	d2 := signedAreaXZ(p, b, c)
	d3 := signedAreaXZ(p, c, a)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// segmentsCrossXZ reports whether the open segments a1-a2 and b1-b2
// properly intersect. Touching at an endpoint does not count, which is the
// behavior the flip convexity test needs: the quad is convex exactly when
// its two diagonals cross in their interiors.
func segmentsCrossXZ(a1, a2, b1, b2 math.Vec2) bool {
	d1 := signedAreaXZ(b1, b2, a1)
	d2 := signedAreaXZ(b1, b2, a2)
	d3 := signedAreaXZ(a1, a2, b1)
	d4 := signedAreaXZ(a1, a2, b2)
	return d1*d2 < 0 && d3*d4 < 0
}

// closestPointOnSegmentXZ returns the point on segment a-b closest to p and
// the clamped projection parameter t in [0, 1].
func closestPointOnSegmentXZ(p, a, b math.Vec2) (math.Vec2, float32) {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq == 0 {
		return a, 0
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t)), t
}

// polygonArea2XZ returns twice the signed area of a polygon given as an
// ordered vertex loop. Positive means counter-clockwise seen from above.
func polygonArea2XZ(pts []math.Vec2) float32 {
	var area float32
	for i := 1; i+1 < len(pts); i++ {
		area += signedAreaXZ(pts[0], pts[i], pts[i+1])
	}
	return area
}
