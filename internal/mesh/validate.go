package mesh

import (
	"fmt"

	"go.uber.org/multierr"
)

// Validate runs the full invariant check over the store and returns every
// violation it finds, combined into one error, or nil if the mesh is
// consistent. It is meant to run after each edit operator in development
// builds; a non-nil result always means a kernel bug, not bad input.
//
// The invariants:
//  1. Every edge's canonical pair is unique and indexed under its id.
//  2. Every edge has 1 or 2 triangles, each of which contains both
//     endpoints.
//  3. Every triangle's three edges match its three vertex pairs.
//  4. Every vertex referenced by an edge or triangle exists.
//  5. Every vertex's incident-edge set is exactly the edges touching it.
func (m *Mesh) Validate() error {
	var err error

	for _, id := range m.EdgeIDs() {
		e := m.edges[id]
		if e.V1 >= e.V2 {
			err = multierr.Append(err, fmt.Errorf("edge %d: endpoints (%d, %d) not in canonical order", id, e.V1, e.V2))
		}
		if m.vertices[e.V1] == nil {
			err = multierr.Append(err, fmt.Errorf("edge %d: vertex %d does not exist", id, e.V1))
		}
		if m.vertices[e.V2] == nil {
			err = multierr.Append(err, fmt.Errorf("edge %d: vertex %d does not exist", id, e.V2))
		}
		if indexed, ok := m.edgeByPair[canonicalPair(e.V1, e.V2)]; !ok || indexed != id {
			err = multierr.Append(err, fmt.Errorf("edge %d: pair (%d, %d) not indexed under this edge", id, e.V1, e.V2))
		}
		if n := len(e.Triangles); n < 1 || n > 2 {
			err = multierr.Append(err, fmt.Errorf("edge %d: has %d triangles, want 1 or 2", id, n))
		}
		for _, tid := range e.Triangles {
			t := m.triangles[tid]
			if t == nil {
				err = multierr.Append(err, fmt.Errorf("edge %d: triangle %d does not exist", id, tid))
				continue
			}
			if !t.HasVertex(e.V1) || !t.HasVertex(e.V2) {
				err = multierr.Append(err, fmt.Errorf("edge %d: triangle %d does not contain both endpoints (%d, %d)", id, tid, e.V1, e.V2))
			}
		}
	}

	// The pair index must not hold entries for edges that are gone or
	// re-keyed.
	for key, id := range m.edgeByPair {
		e := m.edges[id]
		if e == nil {
			err = multierr.Append(err, fmt.Errorf("pair index (%d, %d): edge %d does not exist", key.lo, key.hi, id))
			continue
		}
		if e.V1 != key.lo || e.V2 != key.hi {
			err = multierr.Append(err, fmt.Errorf("pair index (%d, %d): edge %d has endpoints (%d, %d)", key.lo, key.hi, id, e.V1, e.V2))
		}
	}

	for _, id := range m.TriangleIDs() {
		t := m.triangles[id]
		for _, v := range t.Vertices {
			if m.vertices[v] == nil {
				err = multierr.Append(err, fmt.Errorf("triangle %d: vertex %d does not exist", id, v))
			}
		}
		if t.Vertices[0] == t.Vertices[1] || t.Vertices[1] == t.Vertices[2] || t.Vertices[0] == t.Vertices[2] {
			err = multierr.Append(err, fmt.Errorf("triangle %d: duplicate vertices %v", id, t.Vertices))
		}
		for i := 0; i < 3; i++ {
			a, b := t.Vertices[i], t.Vertices[(i+1)%3]
			eid := m.EdgeBetween(a, b)
			if eid == NoEdge {
				err = multierr.Append(err, fmt.Errorf("triangle %d: no edge for vertex pair (%d, %d)", id, a, b))
				continue
			}
			if t.Edges[i] != eid {
				err = multierr.Append(err, fmt.Errorf("triangle %d: edge slot %d is %d, want %d for pair (%d, %d)", id, i, t.Edges[i], eid, a, b))
			}
			if e := m.edges[eid]; e != nil && !e.hasTriangle(id) {
				err = multierr.Append(err, fmt.Errorf("triangle %d: edge %d does not list it", id, eid))
			}
		}
	}

	// Incident-edge sets must exactly mirror edge endpoints.
	for _, vid := range m.VertexIDs() {
		for eid := range m.edgesAtVertex[vid] {
			e := m.edges[eid]
			if e == nil {
				err = multierr.Append(err, fmt.Errorf("vertex %d: incident edge %d does not exist", vid, eid))
				continue
			}
			if !e.HasVertex(vid) {
				err = multierr.Append(err, fmt.Errorf("vertex %d: incident edge %d does not touch it", vid, eid))
			}
		}
	}
	for _, eid := range m.EdgeIDs() {
		e := m.edges[eid]
		for _, v := range []VertexID{e.V1, e.V2} {
			set := m.edgesAtVertex[v]
			if set == nil {
				continue // Reported above as a missing vertex
			}
			if _, ok := set[eid]; !ok {
				err = multierr.Append(err, fmt.Errorf("edge %d: missing from incident set of vertex %d", eid, v))
			}
		}
	}

	return err
}
