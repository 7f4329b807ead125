package mesh

import (
	"testing"

	"github.com/Faultbox/fairway/pkg/math"
)

func TestNewGridCounts(t *testing.T) {
	m := NewGrid(2, 2, 1, TerrainFairway)

	if m.VertexCount() != 9 {
		t.Errorf("VertexCount() = %d, want 9", m.VertexCount())
	}
	if m.TriangleCount() != 8 {
		t.Errorf("TriangleCount() = %d, want 8", m.TriangleCount())
	}
	// 6 horizontal + 6 vertical + 4 diagonals.
	if m.EdgeCount() != 16 {
		t.Errorf("EdgeCount() = %d, want 16", m.EdgeCount())
	}
	if m.Width != 2 || m.Height != 2 {
		t.Errorf("world extent = %v x %v, want 2 x 2", m.Width, m.Height)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestNewGridWinding(t *testing.T) {
	m := NewGrid(3, 3, 2, TerrainGreen)
	for _, tid := range m.TriangleIDs() {
		tri := m.Triangle(tid)
		a := m.Vertex(tri.Vertices[0]).Position.XZ()
		b := m.Vertex(tri.Vertices[1]).Position.XZ()
		c := m.Vertex(tri.Vertices[2]).Position.XZ()
		if signedAreaXZ(a, b, c) <= 0 {
			t.Errorf("triangle %d not counter-clockwise from above", tid)
		}
	}
}

func TestNewFromRegion(t *testing.T) {
	boundary := []math.Vec2{
		{X: 0, Y: 0},
		{X: 4, Y: 0},
		{X: 4, Y: 4},
		{X: 0, Y: 4},
	}
	fill := []math.Vec2{{X: 2, Y: 2}}

	m, err := NewFromRegion(4, 4, boundary, fill, TerrainGreen)
	if err != nil {
		t.Fatalf("NewFromRegion() error = %v", err)
	}
	if m.VertexCount() != 5 {
		t.Errorf("VertexCount() = %d, want 5", m.VertexCount())
	}
	if m.TriangleCount() != 4 {
		t.Errorf("TriangleCount() = %d, want 4", m.TriangleCount())
	}
	for _, tid := range m.TriangleIDs() {
		if got := m.Triangle(tid).Terrain; got != TerrainGreen {
			t.Errorf("triangle %d terrain = %v, want %v", tid, got, TerrainGreen)
		}
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestNewFromRegionDropsOutsideFill(t *testing.T) {
	boundary := []math.Vec2{
		{X: 0, Y: 0},
		{X: 4, Y: 0},
		{X: 4, Y: 4},
		{X: 0, Y: 4},
	}
	fill := []math.Vec2{{X: 2, Y: 2}, {X: 40, Y: 40}}

	m, err := NewFromRegion(4, 4, boundary, fill, TerrainRough)
	if err != nil {
		t.Fatalf("NewFromRegion() error = %v", err)
	}
	for _, id := range m.VertexIDs() {
		p := m.Vertex(id).Position
		if p.X > 4 || p.Z > 4 {
			t.Errorf("fill point outside the boundary survived at (%v, %v)", p.X, p.Z)
		}
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestNewFromRegionTooFewPoints(t *testing.T) {
	_, err := NewFromRegion(4, 4, []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}}, nil, TerrainRough)
	if err == nil {
		t.Error("NewFromRegion with 2 boundary points should fail")
	}
}
