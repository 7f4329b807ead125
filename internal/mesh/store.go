// Package mesh implements the mutable terrain-mesh topology kernel for the
// editor: a planar triangulated surface over a bounded rectangular world.
// Triangles carry a terrain classification, vertices carry elevation, and
// every edit operator leaves the cross-reference indices consistent.
package mesh

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/fairway/pkg/math"
)

// log is the package logger. It defaults to a no-op logger so the kernel
// stays quiet in tests; binaries install the real one via SetLogger.
var log = zap.NewNop()

// SetLogger installs the logger used for kernel warnings.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// VertexID identifies a vertex. Ids are never reused while the vertex lives.
type VertexID int32

// EdgeID identifies an edge.
type EdgeID int32

// TriangleID identifies a triangle.
type TriangleID int32

// Sentinel ids returned by lookups that find nothing.
const (
	NoVertex   VertexID   = -1
	NoEdge     EdgeID     = -1
	NoTriangle TriangleID = -1
)

// Vertex is a mesh vertex. Position.Y is the elevation.
type Vertex struct {
	ID       VertexID
	Position math.Vec3
}

// Edge joins two vertices. Endpoints are stored in canonical order
// (V1 < V2) so an unordered pair maps to at most one edge.
type Edge struct {
	ID        EdgeID
	V1, V2    VertexID
	Triangles []TriangleID // 1 or 2 incident triangles
}

// IsBoundary returns true if fewer than two triangles touch the edge.
func (e *Edge) IsBoundary() bool {
	return len(e.Triangles) < 2
}

// Other returns the endpoint that is not v, or NoVertex if v is not an
// endpoint.
func (e *Edge) Other(v VertexID) VertexID {
	switch v {
	case e.V1:
		return e.V2
	case e.V2:
		return e.V1
	}
	return NoVertex
}

// HasVertex returns true if v is one of the edge's endpoints.
func (e *Edge) HasVertex(v VertexID) bool {
	return e.V1 == v || e.V2 == v
}

// hasTriangle returns true if the triangle is on the edge's incidence list.
func (e *Edge) hasTriangle(id TriangleID) bool {
	for _, t := range e.Triangles {
		if t == id {
			return true
		}
	}
	return false
}

// Triangle is a mesh face. Vertices wind counter-clockwise seen from above;
// Edges[i] joins Vertices[i] and Vertices[(i+1)%3].
type Triangle struct {
	ID       TriangleID
	Vertices [3]VertexID
	Edges    [3]EdgeID
	Terrain  TerrainCode
}

// HasVertex returns true if v is one of the triangle's corners.
func (t *Triangle) HasVertex(v VertexID) bool {
	return t.Vertices[0] == v || t.Vertices[1] == v || t.Vertices[2] == v
}

// OppositeVertex returns the corner that is neither a nor b, or NoVertex
// if the triangle does not contain both.
func (t *Triangle) OppositeVertex(a, b VertexID) VertexID {
	if !t.HasVertex(a) || !t.HasVertex(b) {
		return NoVertex
	}
	for _, v := range t.Vertices {
		if v != a && v != b {
			return v
		}
	}
	return NoVertex
}

// precedes returns true if a immediately precedes b in the vertex cycle.
func (t *Triangle) precedes(a, b VertexID) bool {
	for i := 0; i < 3; i++ {
		if t.Vertices[i] == a && t.Vertices[(i+1)%3] == b {
			return true
		}
	}
	return false
}

// replaceVertex rewrites every occurrence of old to repl.
func (t *Triangle) replaceVertex(old, repl VertexID) {
	for i := range t.Vertices {
		if t.Vertices[i] == old {
			t.Vertices[i] = repl
		}
	}
}

// replaceEdge rewrites every occurrence of old to repl.
func (t *Triangle) replaceEdge(old, repl EdgeID) {
	for i := range t.Edges {
		if t.Edges[i] == old {
			t.Edges[i] = repl
		}
	}
}

// pairKey is a canonical (sorted) vertex pair, the key of the edge index.
type pairKey struct {
	lo, hi VertexID
}

func canonicalPair(a, b VertexID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Mesh owns the vertex, edge and triangle tables plus the adjacency
// indices. All mutation goes through the edit operators; the store itself
// only offers the primitive create/remove steps they are built from.
type Mesh struct {
	Width  float32 // World extent along X
	Height float32 // World extent along Z

	vertices  map[VertexID]*Vertex
	edges     map[EdgeID]*Edge
	triangles map[TriangleID]*Triangle

	edgeByPair    map[pairKey]EdgeID
	edgesAtVertex map[VertexID]map[EdgeID]struct{}

	nextVertexID   VertexID
	nextEdgeID     EdgeID
	nextTriangleID TriangleID
}

// New returns an empty mesh covering a width x height world.
func New(width, height float32) *Mesh {
	return &Mesh{
		Width:         width,
		Height:        height,
		vertices:      make(map[VertexID]*Vertex),
		edges:         make(map[EdgeID]*Edge),
		triangles:     make(map[TriangleID]*Triangle),
		edgeByPair:    make(map[pairKey]EdgeID),
		edgesAtVertex: make(map[VertexID]map[EdgeID]struct{}),
	}
}

// VertexCount returns the number of live vertices.
func (m *Mesh) VertexCount() int { return len(m.vertices) }

// EdgeCount returns the number of live edges.
func (m *Mesh) EdgeCount() int { return len(m.edges) }

// TriangleCount returns the number of live triangles.
func (m *Mesh) TriangleCount() int { return len(m.triangles) }

// Vertex returns the vertex with the given id, or nil.
func (m *Mesh) Vertex(id VertexID) *Vertex { return m.vertices[id] }

// Edge returns the edge with the given id, or nil.
func (m *Mesh) Edge(id EdgeID) *Edge { return m.edges[id] }

// Triangle returns the triangle with the given id, or nil.
func (m *Mesh) Triangle(id TriangleID) *Triangle { return m.triangles[id] }

// VertexIDs returns all vertex ids in ascending order.
func (m *Mesh) VertexIDs() []VertexID {
	ids := make([]VertexID, 0, len(m.vertices))
	for id := range m.vertices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EdgeIDs returns all edge ids in ascending order.
func (m *Mesh) EdgeIDs() []EdgeID {
	ids := make([]EdgeID, 0, len(m.edges))
	for id := range m.edges {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// TriangleIDs returns all triangle ids in ascending order.
func (m *Mesh) TriangleIDs() []TriangleID {
	ids := make([]TriangleID, 0, len(m.triangles))
	for id := range m.triangles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CreateVertex adds a vertex at the given position and returns its id.
func (m *Mesh) CreateVertex(pos math.Vec3) VertexID {
	id := m.nextVertexID
	m.nextVertexID++
	m.addVertexWithID(id, pos)
	return id
}

// addVertexWithID inserts a vertex under an explicit id, bumping the
// counter past it. Used by deserialization.
func (m *Mesh) addVertexWithID(id VertexID, pos math.Vec3) {
	m.vertices[id] = &Vertex{ID: id, Position: pos}
	m.edgesAtVertex[id] = make(map[EdgeID]struct{})
	if id >= m.nextVertexID {
		m.nextVertexID = id + 1
	}
}

// EdgeBetween returns the id of the edge joining a and b, or NoEdge.
func (m *Mesh) EdgeBetween(a, b VertexID) EdgeID {
	if id, ok := m.edgeByPair[canonicalPair(a, b)]; ok {
		return id
	}
	return NoEdge
}

// GetOrCreateEdge returns the existing edge between a and b, or creates one
// and registers it in the pair index and both incident-edge sets.
func (m *Mesh) GetOrCreateEdge(a, b VertexID) EdgeID {
	key := canonicalPair(a, b)
	if id, ok := m.edgeByPair[key]; ok {
		return id
	}
	id := m.nextEdgeID
	m.nextEdgeID++
	m.edges[id] = &Edge{ID: id, V1: key.lo, V2: key.hi}
	m.edgeByPair[key] = id
	m.edgesAtVertex[key.lo][id] = struct{}{}
	m.edgesAtVertex[key.hi][id] = struct{}{}
	return id
}

// CreateTriangle adds a triangle over the three vertices in the given
// winding order, creating or reusing its three edges and attaching itself
// to each of them.
func (m *Mesh) CreateTriangle(v0, v1, v2 VertexID, code TerrainCode) TriangleID {
	id := m.nextTriangleID
	m.nextTriangleID++
	m.insertTriangle(id, v0, v1, v2, code)
	return id
}

// addTriangleWithID inserts a triangle under an explicit id, bumping the
// counter past it. Used by deserialization.
func (m *Mesh) addTriangleWithID(id TriangleID, v0, v1, v2 VertexID, code TerrainCode) {
	m.insertTriangle(id, v0, v1, v2, code)
	if id >= m.nextTriangleID {
		m.nextTriangleID = id + 1
	}
}

func (m *Mesh) insertTriangle(id TriangleID, v0, v1, v2 VertexID, code TerrainCode) {
	t := &Triangle{
		ID:       id,
		Vertices: [3]VertexID{v0, v1, v2},
		Terrain:  code,
	}
	for i := 0; i < 3; i++ {
		eid := m.GetOrCreateEdge(t.Vertices[i], t.Vertices[(i+1)%3])
		t.Edges[i] = eid
		m.edges[eid].Triangles = append(m.edges[eid].Triangles, id)
	}
	m.triangles[id] = t
}

// removeTriangle detaches the triangle from each of its edges and deletes
// it. Edges left without triangles are kept; the calling operator decides
// their fate.
func (m *Mesh) removeTriangle(id TriangleID) {
	t := m.triangles[id]
	if t == nil {
		return
	}
	for _, eid := range t.Edges {
		if e := m.edges[eid]; e != nil {
			m.detachTriangle(e, id)
		}
	}
	delete(m.triangles, id)
}

// detachTriangle removes id from the edge's incidence list.
func (m *Mesh) detachTriangle(e *Edge, id TriangleID) {
	for i, tid := range e.Triangles {
		if tid == id {
			e.Triangles = append(e.Triangles[:i], e.Triangles[i+1:]...)
			return
		}
	}
}

// removeEdge unregisters the edge from both endpoints' incident-edge sets
// and the pair index, then deletes it.
func (m *Mesh) removeEdge(id EdgeID) {
	e := m.edges[id]
	if e == nil {
		return
	}
	if set := m.edgesAtVertex[e.V1]; set != nil {
		delete(set, id)
	}
	if set := m.edgesAtVertex[e.V2]; set != nil {
		delete(set, id)
	}
	delete(m.edgeByPair, canonicalPair(e.V1, e.V2))
	delete(m.edges, id)
}

// rekeyEdge moves an edge to new endpoints, updating the pair index and the
// incident-edge sets. The caller guarantees no edge exists under the new
// pair.
func (m *Mesh) rekeyEdge(e *Edge, a, b VertexID) {
	delete(m.edgeByPair, canonicalPair(e.V1, e.V2))
	delete(m.edgesAtVertex[e.V1], e.ID)
	delete(m.edgesAtVertex[e.V2], e.ID)

	key := canonicalPair(a, b)
	e.V1, e.V2 = key.lo, key.hi
	m.edgeByPair[key] = e.ID
	m.edgesAtVertex[e.V1][e.ID] = struct{}{}
	m.edgesAtVertex[e.V2][e.ID] = struct{}{}
}

// removeVertex deletes a vertex. The caller guarantees no edge or triangle
// still references it.
func (m *Mesh) removeVertex(id VertexID) {
	delete(m.edgesAtVertex, id)
	delete(m.vertices, id)
}

// IncidentEdges returns the ids of all edges touching the vertex, sorted.
func (m *Mesh) IncidentEdges(id VertexID) []EdgeID {
	set := m.edgesAtVertex[id]
	ids := make([]EdgeID, 0, len(set))
	for eid := range set {
		ids = append(ids, eid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// VertexNeighbors returns the vertices joined to id by an edge, sorted.
func (m *Mesh) VertexNeighbors(id VertexID) []VertexID {
	edges := m.IncidentEdges(id)
	out := make([]VertexID, 0, len(edges))
	for _, eid := range edges {
		if other := m.edges[eid].Other(id); other != NoVertex {
			out = append(out, other)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TrianglesAtVertex returns the ids of all triangles containing the vertex,
// sorted.
func (m *Mesh) TrianglesAtVertex(id VertexID) []TriangleID {
	seen := make(map[TriangleID]struct{})
	for eid := range m.edgesAtVertex[id] {
		for _, tid := range m.edges[eid].Triangles {
			seen[tid] = struct{}{}
		}
	}
	ids := make([]TriangleID, 0, len(seen))
	for tid := range seen {
		ids = append(ids, tid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IsBoundaryVertex returns true if any incident edge has fewer than two
// triangles.
func (m *Mesh) IsBoundaryVertex(id VertexID) bool {
	for eid := range m.edgesAtVertex[id] {
		if m.edges[eid].IsBoundary() {
			return true
		}
	}
	return false
}
