// Package nav plans walking routes over the terrain mesh. It runs A* on
// the dual graph of the triangulation: one node per walkable face, joined
// where faces share an edge.
package nav

import (
	"github.com/beefsack/go-astar"

	"github.com/Faultbox/fairway/internal/mesh"
	"github.com/Faultbox/fairway/pkg/math"
)

// Planner holds the search graph for one mesh snapshot. Rebuild it with
// Refresh after structural edits; position-only edits keep the graph valid
// but stale costs, which is acceptable for editor previews.
type Planner struct {
	m     *mesh.Mesh
	nodes map[mesh.TriangleID]*faceNode
}

// faceNode adapts one walkable face to the astar.Pather interface.
type faceNode struct {
	p        *Planner
	id       mesh.TriangleID
	centroid math.Vec3
}

// New builds a planner over every currently walkable face of the mesh.
func New(m *mesh.Mesh) *Planner {
	p := &Planner{m: m}
	p.Refresh()
	return p
}

// Refresh rebuilds the search graph from the mesh.
func (p *Planner) Refresh() {
	p.nodes = make(map[mesh.TriangleID]*faceNode)
	for _, tid := range p.m.TriangleIDs() {
		if !p.m.IsFaceWalkable(tid) {
			continue
		}
		p.nodes[tid] = &faceNode{
			p:        p,
			id:       tid,
			centroid: p.m.FaceCentroid(tid),
		}
	}
}

// NodeCount returns the number of walkable faces in the graph.
func (p *Planner) NodeCount() int { return len(p.nodes) }

// PathNeighbors returns the walkable faces sharing an edge with this one.
func (n *faceNode) PathNeighbors() []astar.Pather {
	tri := n.p.m.Triangle(n.id)
	if tri == nil {
		return nil
	}
	out := make([]astar.Pather, 0, 3)
	for _, eid := range tri.Edges {
		e := n.p.m.Edge(eid)
		if e == nil {
			continue
		}
		for _, other := range e.Triangles {
			if other == n.id {
				continue
			}
			if node, ok := n.p.nodes[other]; ok {
				out = append(out, node)
			}
		}
	}
	return out
}

// PathNeighborCost weights the centroid distance by the slower of the two
// faces, so routes prefer fairway over rough and bunkers.
func (n *faceNode) PathNeighborCost(to astar.Pather) float64 {
	dst := to.(*faceNode)
	dist := float64(n.centroid.Sub(dst.centroid).Length())

	speed := n.p.m.FaceSpeed(n.id)
	if s := n.p.m.FaceSpeed(dst.id); s < speed {
		speed = s
	}
	if speed <= 0 {
		speed = 0.01
	}
	return dist / float64(speed)
}

// PathEstimatedCost is the straight-line centroid distance.
func (n *faceNode) PathEstimatedCost(to astar.Pather) float64 {
	return float64(n.centroid.Sub(to.(*faceNode).centroid).Length())
}

// FacePath returns the sequence of faces from one face to another,
// inclusive, or false when no walkable route exists.
func (p *Planner) FacePath(from, to mesh.TriangleID) ([]mesh.TriangleID, bool) {
	src, ok := p.nodes[from]
	if !ok {
		return nil, false
	}
	dst, ok := p.nodes[to]
	if !ok {
		return nil, false
	}
	if from == to {
		return []mesh.TriangleID{from}, true
	}

	raw, _, found := astar.Path(src, dst)
	if !found {
		return nil, false
	}

	// astar.Path lists nodes goal-first; walk it backwards.
	out := make([]mesh.TriangleID, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		out = append(out, raw[i].(*faceNode).id)
	}
	return out, true
}

// FindPath plans a route between two ground-plane points and returns it as
// world-space waypoints on the surface: the start point, the centroids of
// the intermediate faces, and the end point.
func (p *Planner) FindPath(fromX, fromZ, toX, toZ float32) ([]math.Vec3, bool) {
	from := p.m.FindFaceAt(fromX, fromZ)
	to := p.m.FindFaceAt(toX, toZ)
	if from == mesh.NoTriangle || to == mesh.NoTriangle {
		return nil, false
	}

	faces, ok := p.FacePath(from, to)
	if !ok {
		return nil, false
	}

	waypoints := make([]math.Vec3, 0, len(faces)+1)
	startY, _ := p.m.ElevationAt(fromX, fromZ)
	waypoints = append(waypoints, math.Vec3{X: fromX, Y: startY, Z: fromZ})
	if len(faces) > 2 {
		for _, tid := range faces[1 : len(faces)-1] {
			waypoints = append(waypoints, p.m.FaceCentroid(tid))
		}
	}
	endY, _ := p.m.ElevationAt(toX, toZ)
	waypoints = append(waypoints, math.Vec3{X: toX, Y: endY, Z: toZ})
	return waypoints, true
}
