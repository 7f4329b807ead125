package mesh

import (
	"testing"

	"github.com/Faultbox/fairway/pkg/math"
)

func TestGetOrCreateEdgeIdempotent(t *testing.T) {
	m := New(10, 10)
	a := m.CreateVertex(math.Vec3{X: 0, Z: 0})
	b := m.CreateVertex(math.Vec3{X: 1, Z: 0})

	e1 := m.GetOrCreateEdge(a, b)
	e2 := m.GetOrCreateEdge(b, a)
	if e1 != e2 {
		t.Errorf("GetOrCreateEdge returned %d then %d for the same pair", e1, e2)
	}
	if m.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", m.EdgeCount())
	}

	e := m.Edge(e1)
	if e.V1 >= e.V2 {
		t.Errorf("edge endpoints (%d, %d) not canonical", e.V1, e.V2)
	}
}

func TestCreateTriangleSharesEdges(t *testing.T) {
	m := New(10, 10)
	a := m.CreateVertex(math.Vec3{X: 0, Z: 0})
	b := m.CreateVertex(math.Vec3{X: 1, Z: 0})
	c := m.CreateVertex(math.Vec3{X: 0, Z: 1})
	d := m.CreateVertex(math.Vec3{X: 1, Z: 1})

	t1 := m.createTriangleCCW(a, b, c, TerrainFairway)
	t2 := m.createTriangleCCW(b, d, c, TerrainFairway)

	if m.EdgeCount() != 5 {
		t.Errorf("EdgeCount() = %d, want 5", m.EdgeCount())
	}

	shared := m.EdgeBetween(b, c)
	if shared == NoEdge {
		t.Fatal("no shared edge between b and c")
	}
	e := m.Edge(shared)
	if len(e.Triangles) != 2 {
		t.Fatalf("shared edge has %d triangles, want 2", len(e.Triangles))
	}
	if !e.hasTriangle(t1) || !e.hasTriangle(t2) {
		t.Errorf("shared edge triangles = %v, want both %d and %d", e.Triangles, t1, t2)
	}

	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestRemoveTriangleDetaches(t *testing.T) {
	m := New(10, 10)
	a := m.CreateVertex(math.Vec3{X: 0, Z: 0})
	b := m.CreateVertex(math.Vec3{X: 1, Z: 0})
	c := m.CreateVertex(math.Vec3{X: 0, Z: 1})
	tid := m.createTriangleCCW(a, b, c, TerrainRough)

	m.removeTriangle(tid)
	if m.TriangleCount() != 0 {
		t.Errorf("TriangleCount() = %d, want 0", m.TriangleCount())
	}
	for _, eid := range m.EdgeIDs() {
		if n := len(m.Edge(eid).Triangles); n != 0 {
			t.Errorf("edge %d still lists %d triangles", eid, n)
		}
	}
}

func TestBoundaryVertexDetection(t *testing.T) {
	m := NewGrid(2, 2, 1, TerrainFairway)

	// Row-major ids: corner (0,0) is 0, center (1,1) is 4.
	if !m.IsBoundaryVertex(0) {
		t.Error("corner vertex should be a boundary vertex")
	}
	if m.IsBoundaryVertex(4) {
		t.Error("center vertex should not be a boundary vertex")
	}
}

func TestVertexNeighbors(t *testing.T) {
	m := NewGrid(2, 2, 1, TerrainFairway)

	// The center of a 2x2 grid touches its four axis neighbors plus the
	// two cell diagonals that run through it.
	got := m.VertexNeighbors(4)
	if len(got) != 6 {
		t.Errorf("center has %d neighbors, want 6: %v", len(got), got)
	}
}

func TestIDCountersAdvance(t *testing.T) {
	m := New(10, 10)
	a := m.CreateVertex(math.Vec3{})
	b := m.CreateVertex(math.Vec3{X: 1})
	if a == b {
		t.Errorf("CreateVertex reused id %d", a)
	}
	m.removeVertex(b)
	c := m.CreateVertex(math.Vec3{X: 2})
	if c == b {
		t.Errorf("vertex id %d was reused after deletion", b)
	}
}
