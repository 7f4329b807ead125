package mesh

import (
	"testing"
)

// interiorEdge returns some edge shared by exactly two triangles.
func interiorEdge(t *testing.T, m *Mesh) EdgeID {
	t.Helper()
	for _, id := range m.EdgeIDs() {
		if len(m.Edge(id).Triangles) == 2 {
			return id
		}
	}
	t.Fatal("mesh has no interior edge")
	return NoEdge
}

func TestSubdivideInteriorEdge(t *testing.T) {
	m := NewGrid(2, 2, 1, TerrainFairway)
	if m.VertexCount() != 9 || m.TriangleCount() != 8 {
		t.Fatalf("grid has %d vertices / %d triangles, want 9 / 8",
			m.VertexCount(), m.TriangleCount())
	}

	// The edge between (1,0) and the center (1,1) is interior.
	id := m.EdgeBetween(1, 4)
	if id == NoEdge {
		t.Fatal("no edge between vertices 1 and 4")
	}

	res := m.SubdivideEdge(id, 0.5)
	if res == nil {
		t.Fatal("SubdivideEdge returned nil")
	}

	if m.VertexCount() != 10 {
		t.Errorf("VertexCount() = %d, want 10", m.VertexCount())
	}
	if len(res.Created) != 4 {
		t.Errorf("created %d triangles, want 4", len(res.Created))
	}
	if len(res.Removed) != 2 {
		t.Errorf("removed %d triangles, want 2", len(res.Removed))
	}
	if m.TriangleCount() != 10 {
		t.Errorf("TriangleCount() = %d, want 10", m.TriangleCount())
	}

	// The midpoint sits halfway along the original edge.
	mid := m.Vertex(res.Vertex)
	if mid == nil {
		t.Fatal("midpoint vertex missing")
	}
	if mid.Position.X != 1 || mid.Position.Z != 0.5 {
		t.Errorf("midpoint at (%v, %v), want (1, 0.5)", mid.Position.X, mid.Position.Z)
	}

	for _, eid := range res.SplitEdges {
		if m.Edge(eid) == nil {
			t.Errorf("split edge %d missing", eid)
		}
	}
	if m.Edge(id) != nil {
		t.Errorf("original edge %d still exists", id)
	}

	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestSubdivideBoundaryEdge(t *testing.T) {
	m := NewGrid(2, 2, 1, TerrainGreen)

	// The edge between (0,0) and (1,0) lies on the mesh boundary.
	id := m.EdgeBetween(0, 1)
	if id == NoEdge {
		t.Fatal("no edge between vertices 0 and 1")
	}

	res := m.SubdivideEdge(id, 0.5)
	if res == nil {
		t.Fatal("SubdivideEdge returned nil")
	}
	if len(res.Created) != 2 || len(res.Removed) != 1 {
		t.Errorf("created/removed = %d/%d, want 2/1", len(res.Created), len(res.Removed))
	}
	for _, tid := range res.Created {
		if got := m.Triangle(tid).Terrain; got != TerrainGreen {
			t.Errorf("created triangle terrain = %v, want %v", got, TerrainGreen)
		}
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestSubdivideRejectsBadInput(t *testing.T) {
	m := NewGrid(2, 2, 1, TerrainFairway)
	if res := m.SubdivideEdge(9999, 0.5); res != nil {
		t.Error("subdividing an unknown edge should return nil")
	}
	id := interiorEdge(t, m)
	if res := m.SubdivideEdge(id, 1.5); res != nil {
		t.Error("subdividing with t out of range should return nil")
	}
	if m.VertexCount() != 9 || m.TriangleCount() != 8 {
		t.Error("rejected subdivide mutated the mesh")
	}
}

func TestFlipEdgeTwiceRestoresDiagonal(t *testing.T) {
	m := NewGrid(2, 2, 1, TerrainFairway)

	// The diagonal of the first cell joins (1,0) and (0,1).
	id := m.EdgeBetween(1, 3)
	if id == NoEdge {
		t.Fatal("no diagonal edge between vertices 1 and 3")
	}

	res := m.FlipEdge(id)
	if res == nil {
		t.Fatal("FlipEdge returned nil")
	}
	if res.Edge != id {
		t.Errorf("flip changed the edge id to %d", res.Edge)
	}
	e := m.Edge(id)
	if e.V1 != 0 || e.V2 != 4 {
		t.Errorf("flipped edge joins (%d, %d), want (0, 4)", e.V1, e.V2)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() after flip = %v", err)
	}

	if res := m.FlipEdge(id); res == nil {
		t.Fatal("second FlipEdge returned nil")
	}
	e = m.Edge(id)
	if e.V1 != 1 || e.V2 != 3 {
		t.Errorf("double-flipped edge joins (%d, %d), want (1, 3)", e.V1, e.V2)
	}
	if m.TriangleCount() != 8 {
		t.Errorf("TriangleCount() = %d, want 8", m.TriangleCount())
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() after double flip = %v", err)
	}
}

func TestFlipBoundaryEdgeFails(t *testing.T) {
	m := NewGrid(2, 2, 1, TerrainFairway)
	id := m.EdgeBetween(0, 1)
	if res := m.FlipEdge(id); res != nil {
		t.Error("flipping a boundary edge should return nil")
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestFlipNonConvexQuadFails(t *testing.T) {
	m := NewGrid(2, 2, 1, TerrainFairway)

	// Pull the center across the cell diagonal so the quad around it is no
	// longer convex: both opposite corners end up on the same side.
	m.Vertex(4).Position.X = 0.6
	m.Vertex(4).Position.Z = 0.3

	id := m.EdgeBetween(1, 3)
	if res := m.FlipEdge(id); res != nil {
		t.Error("flipping inside a non-convex quad should return nil")
	}
}

func TestCollapseEdge(t *testing.T) {
	m := NewGrid(2, 2, 1, TerrainFairway)
	id := m.EdgeBetween(1, 4)

	res := m.CollapseEdge(id)
	if res == nil {
		t.Fatal("CollapseEdge returned nil")
	}
	if res.Survivor != 1 || res.RemovedVertex != 4 {
		t.Errorf("survivor/removed = %d/%d, want 1/4", res.Survivor, res.RemovedVertex)
	}
	if len(res.RemovedTriangles) != 2 {
		t.Errorf("removed %d triangles, want 2", len(res.RemovedTriangles))
	}
	if m.VertexCount() != 8 || m.TriangleCount() != 6 {
		t.Errorf("counts = %d vertices / %d triangles, want 8 / 6",
			m.VertexCount(), m.TriangleCount())
	}

	// The survivor moves to the midpoint of the collapsed edge.
	p := m.Vertex(1).Position
	if p.X != 1 || p.Z != 0.5 {
		t.Errorf("survivor at (%v, %v), want (1, 0.5)", p.X, p.Z)
	}

	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestCollapseCornerDiagonal(t *testing.T) {
	m := NewGrid(2, 2, 1, TerrainFairway)

	// Collapsing the corner cell's diagonal deletes both triangles of that
	// cell. The outer corner (vertex 0) and its two rim edges end up with no
	// triangles at all and must be removed along with the collapse.
	id := m.EdgeBetween(1, 3)
	if id == NoEdge {
		t.Fatal("no diagonal edge between vertices 1 and 3")
	}

	res := m.CollapseEdge(id)
	if res == nil {
		t.Fatal("CollapseEdge returned nil")
	}
	if res.Survivor != 1 || res.RemovedVertex != 3 {
		t.Errorf("survivor/removed = %d/%d, want 1/3", res.Survivor, res.RemovedVertex)
	}
	if len(res.OrphanedVertices) != 1 || res.OrphanedVertices[0] != 0 {
		t.Errorf("OrphanedVertices = %v, want [0]", res.OrphanedVertices)
	}
	if m.Vertex(0) != nil {
		t.Error("corner vertex 0 still exists")
	}
	if m.EdgeBetween(0, 1) != NoEdge {
		t.Error("rim edge (0, 1) still exists")
	}
	if m.VertexCount() != 7 || m.TriangleCount() != 6 {
		t.Errorf("counts = %d vertices / %d triangles, want 7 / 6",
			m.VertexCount(), m.TriangleCount())
	}

	p := m.Vertex(1).Position
	if p.X != 0.5 || p.Z != 0.5 {
		t.Errorf("survivor at (%v, %v), want (0.5, 0.5)", p.X, p.Z)
	}

	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestCollapseBoundaryEdge(t *testing.T) {
	m := NewGrid(2, 2, 1, TerrainFairway)

	// The edge between (0,0) and (1,0) borders a single triangle.
	id := m.EdgeBetween(0, 1)
	if id == NoEdge {
		t.Fatal("no edge between vertices 0 and 1")
	}

	res := m.CollapseEdge(id)
	if res == nil {
		t.Fatal("CollapseEdge returned nil")
	}
	if res.Survivor != 0 || res.RemovedVertex != 1 {
		t.Errorf("survivor/removed = %d/%d, want 0/1", res.Survivor, res.RemovedVertex)
	}
	if len(res.RemovedTriangles) != 1 {
		t.Errorf("removed %d triangles, want 1", len(res.RemovedTriangles))
	}
	if len(res.OrphanedVertices) != 0 {
		t.Errorf("OrphanedVertices = %v, want none", res.OrphanedVertices)
	}
	if m.VertexCount() != 8 || m.TriangleCount() != 7 {
		t.Errorf("counts = %d vertices / %d triangles, want 8 / 7",
			m.VertexCount(), m.TriangleCount())
	}

	p := m.Vertex(0).Position
	if p.X != 0.5 || p.Z != 0 {
		t.Errorf("survivor at (%v, %v), want (0.5, 0)", p.X, p.Z)
	}

	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestSubdivideThenCollapseRestoresCounts(t *testing.T) {
	m := NewGrid(2, 2, 1, TerrainFairway)

	// Mark a triangle far from the edited edge; it must come through intact.
	m.Triangle(7).Terrain = TerrainWater

	sub := m.SubdivideEdge(m.EdgeBetween(1, 4), 0.5)
	if sub == nil {
		t.Fatal("SubdivideEdge returned nil")
	}
	if res := m.CollapseEdge(sub.SplitEdges[0]); res == nil {
		t.Fatal("CollapseEdge returned nil")
	}

	if m.VertexCount() != 9 {
		t.Errorf("VertexCount() = %d, want 9", m.VertexCount())
	}
	if m.TriangleCount() != 8 {
		t.Errorf("TriangleCount() = %d, want 8", m.TriangleCount())
	}
	if got := m.Triangle(7).Terrain; got != TerrainWater {
		t.Errorf("untouched triangle terrain = %v, want %v", got, TerrainWater)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestCollapseUnknownEdge(t *testing.T) {
	m := NewGrid(2, 2, 1, TerrainFairway)
	if res := m.CollapseEdge(12345); res != nil {
		t.Error("collapsing an unknown edge should return nil")
	}
}
