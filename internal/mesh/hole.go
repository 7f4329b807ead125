package mesh

import (
	"go.uber.org/zap"

	"github.com/Faultbox/fairway/pkg/math"
)

// DeleteVertexResult describes the structural delta of DeleteVertex.
type DeleteVertexResult struct {
	RemovedVertex    VertexID
	RemovedTriangles []TriangleID
	RemovedEdges     []EdgeID
	Created          []TriangleID
}

// CanDeleteVertex reports whether the vertex may be deleted. The store must
// keep at least four vertices afterwards, and a boundary vertex needs three
// or more neighbors so its removal cannot collapse the boundary below a
// triangle.
func (m *Mesh) CanDeleteVertex(id VertexID) bool {
	if m.vertices[id] == nil {
		return false
	}
	if len(m.vertices) <= 4 {
		return false
	}
	if m.IsBoundaryVertex(id) && len(m.VertexNeighbors(id)) < 3 {
		return false
	}
	return true
}

// DeleteVertex removes a vertex, its triangles and its edges, then fills
// the resulting hole by ear-clipping its ordered boundary polygon. New
// triangles take the most common terrain code of the removed ones. Returns
// nil, with no mutation, if the vertex is not deletable or its surrounding
// triangles do not leave a single simple boundary chain.
func (m *Mesh) DeleteVertex(id VertexID) *DeleteVertexResult {
	if !m.CanDeleteVertex(id) {
		return nil
	}

	tris := m.TrianglesAtVertex(id)
	if len(tris) == 0 {
		return nil
	}

	// Each surrounding triangle contributes the pair of vertices that are
	// not the deleted one; chained together they trace the hole boundary.
	pairs := make([][2]VertexID, 0, len(tris))
	codeCount := make(map[TerrainCode]int)
	code := m.triangles[tris[0]].Terrain
	for _, tid := range tris {
		tri := m.triangles[tid]
		var pair [2]VertexID
		n := 0
		for _, v := range tri.Vertices {
			if v != id {
				if n < 2 {
					pair[n] = v
				}
				n++
			}
		}
		if n != 2 {
			return nil // Degenerate triangle, refuse to touch it
		}
		pairs = append(pairs, pair)
		codeCount[tri.Terrain]++
		if codeCount[tri.Terrain] > codeCount[code] {
			code = tri.Terrain
		}
	}

	loop := chainPairs(pairs)
	if loop == nil {
		return nil
	}

	res := &DeleteVertexResult{RemovedVertex: id}
	for _, tid := range tris {
		m.removeTriangle(tid)
		res.RemovedTriangles = append(res.RemovedTriangles, tid)
	}
	for _, eid := range m.IncidentEdges(id) {
		m.removeEdge(eid)
		res.RemovedEdges = append(res.RemovedEdges, eid)
	}
	m.removeVertex(id)

	res.Created = m.earClip(loop, code)
	return res
}

// chainPairs orders vertex pairs into one simple chain by repeatedly
// matching the last-placed vertex against an unused pair. An interior
// vertex yields a closed loop; a boundary vertex yields an open path whose
// implicit closing segment becomes the new boundary. Returns nil if the
// pairs do not form exactly one simple chain.
func chainPairs(pairs [][2]VertexID) []VertexID {
	if len(pairs) == 0 {
		return nil
	}

	degree := make(map[VertexID]int)
	for _, p := range pairs {
		degree[p[0]]++
		degree[p[1]]++
	}

	// A vertex shared by 3+ pairs can't be on a simple chain.
	for _, d := range degree {
		if d > 2 {
			return nil
		}
	}

	// Start at an endpoint of an open chain if one exists, else anywhere.
	start := pairs[0][0]
	for v, d := range degree {
		if d == 1 {
			start = v
			break
		}
	}

	used := make([]bool, len(pairs))
	loop := []VertexID{start}
	cur := start
	for range pairs {
		found := false
		for i, p := range pairs {
			if used[i] {
				continue
			}
			var next VertexID
			switch cur {
			case p[0]:
				next = p[1]
			case p[1]:
				next = p[0]
			default:
				continue
			}
			used[i] = true
			cur = next
			found = true
			if next != start {
				loop = append(loop, next)
			}
			break
		}
		if !found {
			return nil
		}
	}

	// All pairs consumed; a closed loop ends back at start, an open path
	// keeps its last vertex.
	if len(loop) < 3 {
		return nil
	}
	seen := make(map[VertexID]struct{}, len(loop))
	for _, v := range loop {
		if _, dup := seen[v]; dup {
			return nil
		}
		seen[v] = struct{}{}
	}
	return loop
}

// earClip triangulates the ordered hole boundary: repeatedly take a convex
// boundary vertex (cross sign matching the polygon's overall orientation)
// whose ear triangle contains no other remaining boundary vertex.
func (m *Mesh) earClip(loop []VertexID, code TerrainCode) []TriangleID {
	pos := func(v VertexID) math.Vec2 { return m.vertices[v].Position.XZ() }

	pts := make([]math.Vec2, len(loop))
	for i, v := range loop {
		pts[i] = pos(v)
	}
	orientCCW := polygonArea2XZ(pts) > 0

	emit := func(a, b, c VertexID) TriangleID {
		if orientCCW {
			return m.CreateTriangle(a, b, c, code)
		}
		return m.CreateTriangle(c, b, a, code)
	}

	remaining := append([]VertexID(nil), loop...)
	var created []TriangleID
	for len(remaining) > 3 {
		clipped := false
		for i := range remaining {
			prev := remaining[(i+len(remaining)-1)%len(remaining)]
			cur := remaining[i]
			next := remaining[(i+1)%len(remaining)]

			cross := signedAreaXZ(pos(prev), pos(cur), pos(next))
			if orientCCW && cross <= 0 {
				continue
			}
			if !orientCCW && cross >= 0 {
				continue
			}

			blocked := false
			for _, v := range remaining {
				if v == prev || v == cur || v == next {
					continue
				}
				if pointInTriangleXZ(pos(v), pos(prev), pos(cur), pos(next)) {
					blocked = true
					break
				}
			}
			if blocked {
				continue
			}

			created = append(created, emit(prev, cur, next))
			remaining = append(remaining[:i], remaining[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// No ear found; the boundary is degenerate. Leave the rest of
			// the hole open rather than emit overlapping triangles.
			log.Warn("ear clipping stalled on degenerate hole boundary",
				zap.Int("remaining", len(remaining)))
			return created
		}
	}
	created = append(created, emit(remaining[0], remaining[1], remaining[2]))
	return created
}
