package mesh

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	m := NewGrid(3, 3, 1, TerrainFairway)
	m.Triangle(0).Terrain = TerrainWater
	m.Triangle(5).Terrain = TerrainGreen
	m.Vertex(4).Position.Y = 2.5

	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.VertexCount() != m.VertexCount() {
		t.Errorf("VertexCount() = %d, want %d", loaded.VertexCount(), m.VertexCount())
	}
	if loaded.TriangleCount() != m.TriangleCount() {
		t.Errorf("TriangleCount() = %d, want %d", loaded.TriangleCount(), m.TriangleCount())
	}
	if loaded.Width != m.Width || loaded.Height != m.Height {
		t.Errorf("world extent = %v x %v, want %v x %v",
			loaded.Width, loaded.Height, m.Width, m.Height)
	}

	// Ids survive the round trip, so a second save is byte-identical.
	var buf2 bytes.Buffer
	if err := loaded.Save(&buf2); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	var buf1 bytes.Buffer
	if err := m.Save(&buf1); err != nil {
		t.Fatalf("re-Save() error = %v", err)
	}
	if !bytes.Equal(buf1.Bytes(), buf2.Bytes()) {
		t.Error("saving the loaded mesh produced different bytes")
	}

	if err := loaded.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadSkipsBrokenTriangles(t *testing.T) {
	data := `{
		"vertices": [
			{"id": 0, "position": [0, 0, 0]},
			{"id": 1, "position": [1, 0, 0]},
			{"id": 2, "position": [0, 0, 1]}
		],
		"triangles": [
			{"id": 0, "vertices": [0, 1, 2], "terrainCode": 0},
			{"id": 1, "vertices": [0, 1, 99], "terrainCode": 0}
		],
		"worldWidth": 2,
		"worldHeight": 2
	}`

	m, err := Load(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.TriangleCount() != 1 {
		t.Errorf("TriangleCount() = %d, want 1", m.TriangleCount())
	}
	if m.Triangle(0) == nil {
		t.Error("intact triangle was not loaded")
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadGarbage(t *testing.T) {
	_, err := Load(strings.NewReader("not a mesh"))
	if !errors.Is(err, ErrInvalidSave) {
		t.Errorf("Load() error = %v, want %v", err, ErrInvalidSave)
	}
}

func TestLoadPreservesIDCounters(t *testing.T) {
	m := NewGrid(2, 2, 1, TerrainFairway)
	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// New ids must not collide with loaded ones.
	id := loaded.CreateVertex(loaded.Vertex(0).Position)
	if int(id) < loaded.VertexCount()-1 {
		t.Errorf("new vertex id %d collides with loaded range", id)
	}
}

func TestSaveLoadFile(t *testing.T) {
	m := NewGrid(2, 2, 1, TerrainRough)
	path := filepath.Join(t.TempDir(), "course.json")

	if err := m.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.TriangleCount() != m.TriangleCount() {
		t.Errorf("TriangleCount() = %d, want %d", loaded.TriangleCount(), m.TriangleCount())
	}
}
