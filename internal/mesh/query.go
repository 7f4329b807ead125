package mesh

import (
	stdmath "math"

	"github.com/Faultbox/fairway/pkg/math"
)

// MaxWalkableSlopeDeg is the steepest face angle, in degrees, that still
// counts as walkable.
const MaxWalkableSlopeDeg float32 = 45

// FaceCentroid returns the centroid of a triangle, or the zero vector if
// the id is unknown.
func (m *Mesh) FaceCentroid(id TriangleID) math.Vec3 {
	t := m.triangles[id]
	if t == nil {
		return math.Vec3{}
	}
	a := m.vertices[t.Vertices[0]].Position
	b := m.vertices[t.Vertices[1]].Position
	c := m.vertices[t.Vertices[2]].Position
	return a.Add(b).Add(c).Scale(1.0 / 3.0)
}

// FaceNormal returns the unit face normal of a triangle. Degenerate
// triangles report straight up.
func (m *Mesh) FaceNormal(id TriangleID) math.Vec3 {
	t := m.triangles[id]
	if t == nil {
		return math.Vec3{Y: 1}
	}
	a := m.vertices[t.Vertices[0]].Position
	b := m.vertices[t.Vertices[1]].Position
	c := m.vertices[t.Vertices[2]].Position
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Length() == 0 {
		return math.Vec3{Y: 1}
	}
	return n.Normalize()
}

// FindFaceAt returns the triangle containing the ground-plane point, or
// NoTriangle.
func (m *Mesh) FindFaceAt(x, z float32) TriangleID {
	p := math.Vec2{X: x, Y: z}
	for _, tid := range m.TriangleIDs() {
		t := m.triangles[tid]
		a := m.vertices[t.Vertices[0]].Position.XZ()
		b := m.vertices[t.Vertices[1]].Position.XZ()
		c := m.vertices[t.Vertices[2]].Position.XZ()
		if pointInTriangleXZ(p, a, b, c) {
			return tid
		}
	}
	return NoTriangle
}

// NearestVertex returns the vertex closest to the ground-plane point, or
// NoVertex on an empty mesh. Brute force is fine at editor mesh sizes.
func (m *Mesh) NearestVertex(x, z float32) VertexID {
	p := math.Vec2{X: x, Y: z}
	best := NoVertex
	var bestSq float32
	for _, id := range m.VertexIDs() {
		dSq := m.vertices[id].Position.XZ().DistanceSq(p)
		if best == NoVertex || dSq < bestSq {
			best = id
			bestSq = dSq
		}
	}
	return best
}

// NearestEdge returns the edge closest to the ground-plane point and the
// distance to it, or NoEdge on a mesh without edges.
func (m *Mesh) NearestEdge(x, z float32) (EdgeID, float32) {
	p := math.Vec2{X: x, Y: z}
	best := NoEdge
	var bestSq float32
	for _, id := range m.EdgeIDs() {
		e := m.edges[id]
		a := m.vertices[e.V1].Position.XZ()
		b := m.vertices[e.V2].Position.XZ()
		closest, _ := closestPointOnSegmentXZ(p, a, b)
		dSq := closest.DistanceSq(p)
		if best == NoEdge || dSq < bestSq {
			best = id
			bestSq = dSq
		}
	}
	if best == NoEdge {
		return NoEdge, 0
	}
	return best, float32(stdmath.Sqrt(float64(bestSq)))
}

// ElevationAt interpolates the elevation at a ground-plane point using the
// barycentric coordinates of the containing triangle. The second return is
// false if the point is outside the mesh.
func (m *Mesh) ElevationAt(x, z float32) (float32, bool) {
	tid := m.FindFaceAt(x, z)
	if tid == NoTriangle {
		return 0, false
	}
	t := m.triangles[tid]
	a := m.vertices[t.Vertices[0]].Position
	b := m.vertices[t.Vertices[1]].Position
	c := m.vertices[t.Vertices[2]].Position

	den := (b.Z-c.Z)*(a.X-c.X) + (c.X-b.X)*(a.Z-c.Z)
	if den == 0 {
		return a.Y, true
	}
	l1 := ((b.Z-c.Z)*(x-c.X) + (c.X-b.X)*(z-c.Z)) / den
	l2 := ((c.Z-a.Z)*(x-c.X) + (a.X-c.X)*(z-c.Z)) / den
	l3 := 1 - l1 - l2
	return l1*a.Y + l2*b.Y + l3*c.Y, true
}

// FaceSlopeDeg returns the angle in degrees between the face normal and
// straight up.
func (m *Mesh) FaceSlopeDeg(id TriangleID) float32 {
	n := m.FaceNormal(id)
	ny := float64(n.Y)
	if ny > 1 {
		ny = 1
	} else if ny < -1 {
		ny = -1
	}
	return float32(stdmath.Acos(ny) * 180 / stdmath.Pi)
}

// IsFaceWalkable reports whether a face is both gentle enough and made of
// walkable terrain.
func (m *Mesh) IsFaceWalkable(id TriangleID) bool {
	t := m.triangles[id]
	if t == nil {
		return false
	}
	return t.Terrain.IsWalkable() && m.FaceSlopeDeg(id) <= MaxWalkableSlopeDeg
}

// FaceSpeed returns the movement speed multiplier on a face; 0 when the
// face is unwalkable.
func (m *Mesh) FaceSpeed(id TriangleID) float32 {
	if !m.IsFaceWalkable(id) {
		return 0
	}
	return m.triangles[id].Terrain.SpeedModifier()
}
