package mesh

import (
	"github.com/Faultbox/fairway/pkg/math"
)

// Buffers is the flattened render representation of a mesh. Every triangle
// owns three private buffer slots: the per-corner terrain type and face id
// must stay constant across a triangle, so topology vertices are not
// shared between triangles here. SlotsByVertex maps each topology vertex
// to every slot generated from it, which is what makes smooth normals and
// incremental position updates possible.
type Buffers struct {
	Positions    []float32 `json:"positions"`    // 3 floats per slot
	Normals      []float32 `json:"normals"`      // 3 floats per slot, smoothed
	Indices      []uint32  `json:"indices"`      // 3 slots per triangle
	TerrainTypes []float32 `json:"terrainTypes"` // 1 float per slot
	FaceIDs      []float32 `json:"faceIds"`      // 1 float per slot

	SlotsByVertex map[VertexID][]int `json:"vertexIdToBufferSlots"`

	triOrder    []TriangleID // Buffer triangle order; slot/3 indexes this
	slotVertex  []VertexID   // Topology vertex each slot came from
	faceNormals []math.Vec3  // Flat normal per buffer triangle
}

// BuildBuffers flattens the mesh into render buffers with smoothed
// normals. Triangles are emitted in ascending id order so repeated builds
// of the same mesh produce identical buffers.
func BuildBuffers(m *Mesh) *Buffers {
	tris := m.TriangleIDs()

	b := &Buffers{
		Positions:     make([]float32, 0, len(tris)*9),
		Normals:       make([]float32, len(tris)*9),
		Indices:       make([]uint32, 0, len(tris)*3),
		TerrainTypes:  make([]float32, 0, len(tris)*3),
		FaceIDs:       make([]float32, 0, len(tris)*3),
		SlotsByVertex: make(map[VertexID][]int),
		triOrder:      tris,
		slotVertex:    make([]VertexID, 0, len(tris)*3),
		faceNormals:   make([]math.Vec3, len(tris)),
	}

	slot := 0
	for ti, tid := range tris {
		t := m.triangles[tid]
		for _, v := range t.Vertices {
			p := m.vertices[v].Position
			b.Positions = append(b.Positions, p.X, p.Y, p.Z)
			b.TerrainTypes = append(b.TerrainTypes, float32(t.Terrain))
			b.FaceIDs = append(b.FaceIDs, float32(tid))
			b.Indices = append(b.Indices, uint32(slot))
			b.SlotsByVertex[v] = append(b.SlotsByVertex[v], slot)
			b.slotVertex = append(b.slotVertex, v)
			slot++
		}
		b.faceNormals[ti] = b.flatNormal(ti)
	}

	for v := range b.SlotsByVertex {
		b.smoothVertex(v)
	}
	return b
}

// UpdatePositions rewrites the buffer slots of the given vertices from the
// mesh and recomputes normals only for the directly affected slots. Use it
// after position-only edits such as height painting; structural edits need
// a full rebuild.
func (b *Buffers) UpdatePositions(m *Mesh, changed []VertexID) {
	affected := make(map[int]struct{}) // Buffer triangle indices
	for _, v := range changed {
		vert := m.vertices[v]
		if vert == nil {
			continue
		}
		for _, slot := range b.SlotsByVertex[v] {
			b.Positions[slot*3] = vert.Position.X
			b.Positions[slot*3+1] = vert.Position.Y
			b.Positions[slot*3+2] = vert.Position.Z
			affected[slot/3] = struct{}{}
		}
	}

	touched := make(map[VertexID]struct{})
	for ti := range affected {
		b.faceNormals[ti] = b.flatNormal(ti)
		for s := ti * 3; s < ti*3+3; s++ {
			touched[b.slotVertex[s]] = struct{}{}
		}
	}
	for v := range touched {
		b.smoothVertex(v)
	}
}

// flatNormal computes the face normal of buffer triangle ti from the
// position buffer.
func (b *Buffers) flatNormal(ti int) math.Vec3 {
	read := func(slot int) math.Vec3 {
		return math.Vec3{
			X: b.Positions[slot*3],
			Y: b.Positions[slot*3+1],
			Z: b.Positions[slot*3+2],
		}
	}
	p0 := read(ti * 3)
	p1 := read(ti*3 + 1)
	p2 := read(ti*3 + 2)
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if n.Length() == 0 {
		return math.Vec3{Y: 1}
	}
	return n.Normalize()
}

// smoothVertex averages the face normals of every slot generated from the
// vertex and writes the renormalized result back to each of them.
func (b *Buffers) smoothVertex(v VertexID) {
	slots := b.SlotsByVertex[v]
	if len(slots) == 0 {
		return
	}
	var sum math.Vec3
	for _, slot := range slots {
		sum = sum.Add(b.faceNormals[slot/3])
	}
	n := sum.Normalize()
	if n.Length() == 0 {
		n = math.Vec3{Y: 1}
	}
	for _, slot := range slots {
		b.Normals[slot*3] = n.X
		b.Normals[slot*3+1] = n.Y
		b.Normals[slot*3+2] = n.Z
	}
}
