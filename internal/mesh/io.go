package mesh

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/fairway/pkg/math"
)

// Serialization errors.
var (
	ErrInvalidSave = errors.New("mesh: invalid save data")
)

// The save format stores vertices and triangle vertex-triples only. Edges
// and the adjacency indices are rebuilt on load by replaying triangle
// creation, which also re-derives the id counters.

type savedVertex struct {
	ID       VertexID   `json:"id"`
	Position [3]float32 `json:"position"`
}

type savedTriangle struct {
	ID          TriangleID  `json:"id"`
	Vertices    [3]VertexID `json:"vertices"`
	TerrainCode TerrainCode `json:"terrainCode"`
}

type saveFile struct {
	Vertices    []savedVertex   `json:"vertices"`
	Triangles   []savedTriangle `json:"triangles"`
	WorldWidth  float32         `json:"worldWidth"`
	WorldHeight float32         `json:"worldHeight"`
}

// Save writes the mesh to w in the compact save format.
func (m *Mesh) Save(w io.Writer) error {
	sf := saveFile{
		WorldWidth:  m.Width,
		WorldHeight: m.Height,
	}
	for _, id := range m.VertexIDs() {
		v := m.vertices[id]
		sf.Vertices = append(sf.Vertices, savedVertex{
			ID:       id,
			Position: [3]float32{v.Position.X, v.Position.Y, v.Position.Z},
		})
	}
	for _, id := range m.TriangleIDs() {
		t := m.triangles[id]
		sf.Triangles = append(sf.Triangles, savedTriangle{
			ID:          id,
			Vertices:    t.Vertices,
			TerrainCode: t.Terrain,
		})
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(&sf); err != nil {
		return fmt.Errorf("encoding mesh: %w", err)
	}
	return nil
}

// Load reads a mesh from r. Triangles referencing unknown vertex ids are
// skipped with a warning rather than failing the whole load, so a
// partially corrupted save still recovers what it can.
func Load(r io.Reader) (*Mesh, error) {
	var sf saveFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}

	m := New(sf.WorldWidth, sf.WorldHeight)
	for _, sv := range sf.Vertices {
		if sv.ID < 0 || m.vertices[sv.ID] != nil {
			log.Warn("skipping duplicate or invalid vertex in save",
				zap.Int32("id", int32(sv.ID)))
			continue
		}
		m.addVertexWithID(sv.ID, math.Vec3{
			X: sv.Position[0],
			Y: sv.Position[1],
			Z: sv.Position[2],
		})
	}

	for _, st := range sf.Triangles {
		ok := st.ID >= 0 && m.triangles[st.ID] == nil
		for _, v := range st.Vertices {
			if m.vertices[v] == nil {
				ok = false
			}
		}
		if !ok {
			log.Warn("skipping triangle with missing vertices in save",
				zap.Int32("id", int32(st.ID)))
			continue
		}
		m.addTriangleWithID(st.ID, st.Vertices[0], st.Vertices[1], st.Vertices[2], st.TerrainCode)
	}
	return m, nil
}

// SaveFile writes the mesh to a file path.
func (m *Mesh) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.Save(f)
}

// LoadFile reads a mesh from a file path.
func LoadFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
