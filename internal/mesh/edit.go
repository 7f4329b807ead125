package mesh

import "sort"

// Edit operators. Each one is a complete transaction against the store:
// precondition failures return nil before any mutation, and every returned
// result carries the created/removed id sets callers need to patch their
// own spatial caches incrementally.

// SubdivideResult describes the structural delta of SubdivideEdge.
type SubdivideResult struct {
	Vertex     VertexID   // The new midpoint vertex
	SplitEdges [2]EdgeID  // The two halves of the original edge
	CrossEdges []EdgeID   // New edges joining opposite vertices to the midpoint
	Created    []TriangleID
	Removed    []TriangleID
}

// SubdivideEdge splits an edge at parameter t in [0, 1] (0 at V1, 1 at V2),
// replacing each incident triangle with two triangles that share the new
// midpoint vertex and inherit the original terrain code. Returns nil if
// the edge does not exist or t is out of range.
func (m *Mesh) SubdivideEdge(id EdgeID, t float32) *SubdivideResult {
	e := m.edges[id]
	if e == nil || t < 0 || t > 1 {
		return nil
	}

	v1, v2 := e.V1, e.V2
	pos := m.vertices[v1].Position.Lerp(m.vertices[v2].Position, t)

	incident := append([]TriangleID(nil), e.Triangles...)

	mid := m.CreateVertex(pos)
	res := &SubdivideResult{Vertex: mid}

	for _, tid := range incident {
		tri := m.triangles[tid]
		opp := tri.OppositeVertex(v1, v2)
		code := tri.Terrain

		// Preserve the original winding: the first endpoint of each half
		// is whichever endpoint led the other in the old vertex cycle.
		first, second := v1, v2
		if !tri.precedes(v1, v2) {
			first, second = v2, v1
		}

		m.removeTriangle(tid)
		res.Removed = append(res.Removed, tid)
		res.Created = append(res.Created,
			m.CreateTriangle(first, mid, opp, code),
			m.CreateTriangle(mid, second, opp, code),
		)
		res.CrossEdges = append(res.CrossEdges, m.EdgeBetween(opp, mid))
	}

	// The original edge has no triangles left.
	m.removeEdge(id)

	res.SplitEdges = [2]EdgeID{m.EdgeBetween(v1, mid), m.EdgeBetween(mid, v2)}
	return res
}

// FlipResult describes the structural delta of FlipEdge. The flipped edge
// keeps its id but joins the two former opposite vertices.
type FlipResult struct {
	Edge    EdgeID
	Created [2]TriangleID
	Removed [2]TriangleID
}

// FlipEdge replaces the diagonal of the quadrilateral formed by the edge's
// two triangles with the opposite diagonal. Returns nil if the edge is not
// interior, if the opposite vertices are already connected, or if the
// quadrilateral is not convex (the diagonals must properly cross).
func (m *Mesh) FlipEdge(id EdgeID) *FlipResult {
	e := m.edges[id]
	if e == nil || len(e.Triangles) != 2 {
		return nil
	}

	v1, v2 := e.V1, e.V2
	ta := m.triangles[e.Triangles[0]]
	tb := m.triangles[e.Triangles[1]]
	o1 := ta.OppositeVertex(v1, v2)
	o2 := tb.OppositeVertex(v1, v2)
	if o1 == NoVertex || o2 == NoVertex {
		return nil
	}

	// A duplicate o1-o2 edge would make the mesh non-manifold.
	if m.EdgeBetween(o1, o2) != NoEdge {
		return nil
	}

	p1 := m.vertices[v1].Position.XZ()
	p2 := m.vertices[v2].Position.XZ()
	q1 := m.vertices[o1].Position.XZ()
	q2 := m.vertices[o2].Position.XZ()
	if !segmentsCrossXZ(p1, p2, q1, q2) {
		return nil
	}

	res := &FlipResult{Edge: id, Removed: [2]TriangleID{ta.ID, tb.ID}}

	m.removeTriangle(ta.ID)
	m.removeTriangle(tb.ID)
	m.rekeyEdge(e, o1, o2)

	// Rebuild both halves of the quad with up-facing winding. The side
	// edges that used to border one triangle now border the other; the
	// detach/attach inside remove/create handles the membership swap.
	res.Created[0] = m.createTriangleCCW(o1, o2, v1, ta.Terrain)
	res.Created[1] = m.createTriangleCCW(o1, o2, v2, tb.Terrain)
	return res
}

// createTriangleCCW creates a triangle over the three vertices, swapping
// two of them if needed so the result winds counter-clockwise from above.
func (m *Mesh) createTriangleCCW(a, b, c VertexID, code TerrainCode) TriangleID {
	pa := m.vertices[a].Position.XZ()
	pb := m.vertices[b].Position.XZ()
	pc := m.vertices[c].Position.XZ()
	if signedAreaXZ(pa, pb, pc) < 0 {
		b, c = c, b
	}
	return m.CreateTriangle(a, b, c, code)
}

// CollapseResult describes the structural delta of CollapseEdge.
type CollapseResult struct {
	Survivor         VertexID
	RemovedVertex    VertexID
	OrphanedVertices []VertexID // Corners stranded without edges and removed
	RemovedTriangles []TriangleID
	RemovedEdges     []EdgeID
	RetargetedEdges  []EdgeID // Edges re-pointed from the removed vertex to the survivor
}

// CollapseEdge merges the edge's second endpoint into the first. The
// survivor moves to the midpoint of the two endpoints even on a boundary
// edge; that matches the behavior course content was built against, so it
// is kept as-is. Triangles on the edge degenerate and are deleted, other
// edges at the removed vertex are re-pointed (or dropped when a parallel
// edge already exists), and remaining triangles have the removed vertex
// rewritten to the survivor. A deleted triangle can strand its far edges
// without any triangle (a corner-cell diagonal is the simplest case); a
// final sweep deletes those edges, and any corner vertex they leave with
// an empty incident set, so the store is consistent on return. Returns nil
// if the edge does not exist.
func (m *Mesh) CollapseEdge(id EdgeID) *CollapseResult {
	e := m.edges[id]
	if e == nil {
		return nil
	}

	keep, gone := e.V1, e.V2
	mid := m.vertices[keep].Position.Add(m.vertices[gone].Position).Scale(0.5)

	res := &CollapseResult{Survivor: keep, RemovedVertex: gone}

	// Edges and corners of the deleted triangles may be left dangling;
	// capture them before any deletion for the sweep at the end.
	sweepEdges := make(map[EdgeID]struct{})
	sweepVertices := make(map[VertexID]struct{})
	for _, tid := range append([]TriangleID(nil), e.Triangles...) {
		tri := m.triangles[tid]
		for _, eid := range tri.Edges {
			sweepEdges[eid] = struct{}{}
		}
		for _, v := range tri.Vertices {
			sweepVertices[v] = struct{}{}
		}
		m.removeTriangle(tid)
		res.RemovedTriangles = append(res.RemovedTriangles, tid)
	}
	m.removeEdge(id)
	res.RemovedEdges = append(res.RemovedEdges, id)

	// Triangles that reference the removed vertex but did not sit on the
	// collapsed edge survive with a rewritten corner.
	surviving := m.TrianglesAtVertex(gone)

	for _, eid := range m.IncidentEdges(gone) {
		oe := m.edges[eid]
		other := oe.Other(gone)
		if other == keep {
			m.removeEdge(eid)
			res.RemovedEdges = append(res.RemovedEdges, eid)
			continue
		}
		if existing := m.EdgeBetween(keep, other); existing != NoEdge {
			// Re-pointing would collide with an edge that is already
			// there; fold this edge's triangles onto it instead.
			ex := m.edges[existing]
			for _, tid := range oe.Triangles {
				if !ex.hasTriangle(tid) {
					ex.Triangles = append(ex.Triangles, tid)
				}
				m.triangles[tid].replaceEdge(eid, existing)
			}
			sweepEdges[existing] = struct{}{}
			m.removeEdge(eid)
			res.RemovedEdges = append(res.RemovedEdges, eid)
			continue
		}
		m.rekeyEdge(oe, keep, other)
		sweepEdges[eid] = struct{}{}
		res.RetargetedEdges = append(res.RetargetedEdges, eid)
	}

	for _, tid := range surviving {
		if tri := m.triangles[tid]; tri != nil {
			tri.replaceVertex(gone, keep)
		}
	}

	m.vertices[keep].Position = mid
	m.removeVertex(gone)

	// Sweep: an edge whose only triangle sat on the collapsed edge now has
	// none and must go, along with any corner vertex that loses its last
	// edge in the process.
	stranded := make([]EdgeID, 0, len(sweepEdges))
	for eid := range sweepEdges {
		if se := m.edges[eid]; se != nil && len(se.Triangles) == 0 {
			stranded = append(stranded, eid)
		}
	}
	sort.Slice(stranded, func(i, j int) bool { return stranded[i] < stranded[j] })
	for _, eid := range stranded {
		m.removeEdge(eid)
		res.RemovedEdges = append(res.RemovedEdges, eid)
	}

	orphans := make([]VertexID, 0, len(sweepVertices))
	for v := range sweepVertices {
		if v == keep || v == gone {
			continue
		}
		if m.vertices[v] != nil && len(m.edgesAtVertex[v]) == 0 {
			orphans = append(orphans, v)
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i] < orphans[j] })
	for _, v := range orphans {
		m.removeVertex(v)
		res.OrphanedVertices = append(res.OrphanedVertices, v)
	}
	return res
}
