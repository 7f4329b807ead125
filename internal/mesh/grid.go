package mesh

import (
	"errors"

	"github.com/fogleman/delaunay"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/Faultbox/fairway/pkg/math"
)

// Construction errors.
var (
	ErrTooFewPoints = errors.New("mesh: region needs at least 3 points")
)

// NewGrid builds a regular cols x rows cell grid at elevation zero, with
// two counter-clockwise triangles per cell, all carrying the given terrain
// code.
func NewGrid(cols, rows int, cellSize float32, code TerrainCode) *Mesh {
	m := New(float32(cols)*cellSize, float32(rows)*cellSize)

	ids := make([][]VertexID, rows+1)
	for r := 0; r <= rows; r++ {
		ids[r] = make([]VertexID, cols+1)
		for c := 0; c <= cols; c++ {
			pos := math.Vec3{X: float32(c) * cellSize, Y: 0, Z: float32(r) * cellSize}
			ids[r][c] = m.CreateVertex(pos)
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v00 := ids[r][c]
			v10 := ids[r][c+1]
			v01 := ids[r+1][c]
			v11 := ids[r+1][c+1]
			m.CreateTriangle(v00, v01, v10, code)
			m.CreateTriangle(v10, v01, v11, code)
		}
	}
	return m
}

// NewFromRegion triangulates an arbitrary region given as an ordered
// boundary polygon plus interior fill points, keeping only triangles whose
// centroid falls inside the boundary. All points sit at elevation zero.
func NewFromRegion(width, height float32, boundary, fill []math.Vec2, code TerrainCode) (*Mesh, error) {
	if len(boundary) < 3 {
		return nil, ErrTooFewPoints
	}

	pts := make([]math.Vec2, 0, len(boundary)+len(fill))
	pts = append(pts, boundary...)
	pts = append(pts, fill...)

	tris, err := delaunayTriangles(pts)
	if err != nil {
		return nil, err
	}

	ring := closedRing(boundary)

	m := New(width, height)
	ids := make([]VertexID, len(pts))
	for i, p := range pts {
		ids[i] = m.CreateVertex(math.Vec3{X: p.X, Y: 0, Z: p.Y})
	}

	for _, t := range tris {
		a, b, c := pts[t[0]], pts[t[1]], pts[t[2]]
		cx := (a.X + b.X + c.X) / 3
		cz := (a.Y + b.Y + c.Y) / 3
		if !planar.RingContains(ring, orb.Point{float64(cx), float64(cz)}) {
			continue
		}
		m.CreateTriangle(ids[t[0]], ids[t[1]], ids[t[2]], code)
	}

	// Fill points outside the boundary end up with no triangles; drop them.
	for _, id := range m.VertexIDs() {
		if len(m.edgesAtVertex[id]) == 0 {
			m.removeVertex(id)
		}
	}
	return m, nil
}

// delaunayTriangles runs a 2D Delaunay triangulation over the points and
// returns index triples wound counter-clockwise seen from above.
func delaunayTriangles(pts []math.Vec2) ([][3]int, error) {
	if len(pts) < 3 {
		return nil, ErrTooFewPoints
	}
	dpts := make([]delaunay.Point, len(pts))
	for i, p := range pts {
		dpts[i] = delaunay.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	tri, err := delaunay.Triangulate(dpts)
	if err != nil {
		return nil, err
	}

	out := make([][3]int, 0, len(tri.Triangles)/3)
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		t := [3]int{tri.Triangles[i], tri.Triangles[i+1], tri.Triangles[i+2]}
		if signedAreaXZ(pts[t[0]], pts[t[1]], pts[t[2]]) < 0 {
			t[1], t[2] = t[2], t[1]
		}
		out = append(out, t)
	}
	return out, nil
}

// closedRing converts a point loop into a closed orb ring for containment
// tests.
func closedRing(pts []math.Vec2) orb.Ring {
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, orb.Point{float64(p.X), float64(p.Y)})
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}
