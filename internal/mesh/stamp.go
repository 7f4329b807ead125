package mesh

import (
	stdmath "math"
	"sort"

	"github.com/ojrac/opensimplex-go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/Faultbox/fairway/pkg/math"
)

// StampShape selects the outline of a stamp template. The set is closed;
// each shape has its own boundary generator and distance metric.
type StampShape int

// Stamp shape constants.
const (
	StampCircle StampShape = iota
	StampOval
	StampRectangle
	StampKidney
)

// String returns a human-readable shape name.
func (s StampShape) String() string {
	switch s {
	case StampCircle:
		return "Circle"
	case StampOval:
		return "Oval"
	case StampRectangle:
		return "Rectangle"
	case StampKidney:
		return "Kidney"
	default:
		return "Unknown"
	}
}

// StampRing pairs a radius threshold with the terrain placed inside it.
// Rings are ordered innermost to outermost; the last ring is the stamp
// boundary.
type StampRing struct {
	Radius  float32
	Terrain TerrainCode
}

// StampTemplate describes a procedurally generated shape: an outline, an
// aspect ratio for the stretched shapes, concentric terrain rings, and the
// sampling parameters for the generated point cloud.
type StampTemplate struct {
	Shape          StampShape
	Aspect         float32     // Z extent relative to X for oval/rectangle; 1 if zero
	Rings          []StampRing // Innermost to outermost, ascending radii
	BoundaryPoints int         // Points on the outer boundary ring; default 24
	Jitter         float32     // Fill-grid jitter as a fraction of half a cell
	Seed           int64       // Noise seed for the jitter field
}

// TerrainResolver lets the caller override the ring-derived terrain code
// for a triangle centroid, typically to blend into neighboring regions.
// Returning false keeps the ring code.
type TerrainResolver func(x, z float32) (TerrainCode, bool)

// StampResult describes the structural delta of InsertStamp.
type StampResult struct {
	CreatedVertices  []VertexID
	SeamVertices     []VertexID // Pre-existing vertices the patch was stitched to
	CreatedTriangles []TriangleID
	RemovedTriangles []TriangleID
	RemovedVertices  []VertexID
	RemovedEdges     []EdgeID
}

func (t *StampTemplate) aspect() float32 {
	if t.Aspect <= 0 {
		return 1
	}
	return t.Aspect
}

func (t *StampTemplate) boundaryPoints() int {
	if t.BoundaryPoints < 8 {
		return 24
	}
	return t.BoundaryPoints
}

// OuterRadius returns the radius of the outermost ring.
func (t *StampTemplate) OuterRadius() float32 {
	if len(t.Rings) == 0 {
		return 0
	}
	return t.Rings[len(t.Rings)-1].Radius
}

// kidneyLobe modulates a radius by angle to bend a circle into a kidney
// outline. Always positive.
func kidneyLobe(theta float64) float32 {
	return float32(0.85 + 0.25*stdmath.Cos(theta) + 0.15*stdmath.Sin(2*theta))
}

// radiusAt returns the outline radius of the shape at angle theta for a
// ring radius r.
func (t *StampTemplate) radiusAt(theta float64, r float32) float32 {
	switch t.Shape {
	case StampOval:
		a := float64(r)
		b := float64(r * t.aspect())
		s, c := stdmath.Sincos(theta)
		return float32(a * b / stdmath.Sqrt(b*b*c*c+a*a*s*s))
	case StampRectangle:
		s, c := stdmath.Sincos(theta)
		rx := stdmath.Inf(1)
		if c != 0 {
			rx = float64(r) / stdmath.Abs(c)
		}
		rz := stdmath.Inf(1)
		if s != 0 {
			rz = float64(r*t.aspect()) / stdmath.Abs(s)
		}
		return float32(stdmath.Min(rx, rz))
	case StampKidney:
		return r * kidneyLobe(theta)
	default:
		return r
	}
}

// Distance returns the shape distance from the template center to p: the
// ring radius whose outline passes through p. Rectangle uses max-axis
// distance, kidney divides out the angular lobe.
func (t *StampTemplate) Distance(center, p math.Vec2) float32 {
	d := p.Sub(center)
	switch t.Shape {
	case StampOval:
		dz := d.Y / t.aspect()
		return float32(stdmath.Sqrt(float64(d.X*d.X + dz*dz)))
	case StampRectangle:
		dx := float32(stdmath.Abs(float64(d.X)))
		dz := float32(stdmath.Abs(float64(d.Y))) / t.aspect()
		if dx > dz {
			return dx
		}
		return dz
	case StampKidney:
		theta := stdmath.Atan2(float64(d.Y), float64(d.X))
		return d.Length() / kidneyLobe(theta)
	default:
		return d.Length()
	}
}

// terrainAt picks the innermost ring whose radius threshold contains the
// given shape distance; beyond the last ring the outermost code applies.
func (t *StampTemplate) terrainAt(dist float32) TerrainCode {
	for _, ring := range t.Rings {
		if dist <= ring.Radius {
			return ring.Terrain
		}
	}
	return t.Rings[len(t.Rings)-1].Terrain
}

// stampCloud is the generated point set for one insertion.
type stampCloud struct {
	boundary []math.Vec2 // Ordered outer outline
	interior []math.Vec2 // Inner ring points plus jittered fill
	ring     orb.Ring    // Closed outline for containment tests
}

// generateCloud samples the template around center: the outer boundary
// ring, scaled inner rings, and a jittered fill grid whose cell size comes
// from the outer ring's average edge length. Cells already covered by ring
// points are skipped.
func (t *StampTemplate) generateCloud(center math.Vec2) *stampCloud {
	outer := t.OuterRadius()
	n := t.boundaryPoints()

	cloud := &stampCloud{}
	for i := 0; i < n; i++ {
		theta := 2 * stdmath.Pi * float64(i) / float64(n)
		r := t.radiusAt(theta, outer)
		s, c := stdmath.Sincos(theta)
		cloud.boundary = append(cloud.boundary, math.Vec2{
			X: center.X + r*float32(c),
			Y: center.Y + r*float32(s),
		})
	}
	cloud.ring = closedRing(cloud.boundary)

	for _, ring := range t.Rings[:len(t.Rings)-1] {
		count := int(float32(n) * ring.Radius / outer)
		if count < 6 {
			count = 6
		}
		for i := 0; i < count; i++ {
			theta := 2 * stdmath.Pi * float64(i) / float64(count)
			r := t.radiusAt(theta, ring.Radius)
			s, c := stdmath.Sincos(theta)
			cloud.interior = append(cloud.interior, math.Vec2{
				X: center.X + r*float32(c),
				Y: center.Y + r*float32(s),
			})
		}
	}

	// Fill grid. Cell size follows the outer ring's average edge length so
	// the patch density matches the boundary density.
	var perimeter float32
	for i, p := range cloud.boundary {
		perimeter += p.Distance(cloud.boundary[(i+1)%len(cloud.boundary)])
	}
	cell := perimeter / float32(n)
	if cell <= 0 {
		return cloud
	}

	minX, minZ := center.X, center.Y
	maxX, maxZ := center.X, center.Y
	for _, p := range cloud.boundary {
		minX = min(minX, p.X)
		minZ = min(minZ, p.Y)
		maxX = max(maxX, p.X)
		maxZ = max(maxZ, p.Y)
	}

	cellOf := func(p math.Vec2) [2]int {
		return [2]int{
			int((p.X - minX) / cell),
			int((p.Y - minZ) / cell),
		}
	}
	covered := make(map[[2]int]struct{})
	for _, p := range cloud.boundary {
		covered[cellOf(p)] = struct{}{}
	}
	for _, p := range cloud.interior {
		covered[cellOf(p)] = struct{}{}
	}

	noise := opensimplex.New(t.Seed)
	cols := int((maxX-minX)/cell) + 1
	rows := int((maxZ-minZ)/cell) + 1
	for cz := 0; cz < rows; cz++ {
		for cx := 0; cx < cols; cx++ {
			if _, ok := covered[[2]int{cx, cz}]; ok {
				continue
			}
			px := minX + (float32(cx)+0.5)*cell
			pz := minZ + (float32(cz)+0.5)*cell
			jx := float32(noise.Eval2(float64(px)*0.73, float64(pz)*0.73))
			jz := float32(noise.Eval2(float64(px)*0.73+119.3, float64(pz)*0.73-71.7))
			p := math.Vec2{
				X: px + jx*t.Jitter*cell*0.5,
				Y: pz + jz*t.Jitter*cell*0.5,
			}
			if !planar.RingContains(cloud.ring, orb.Point{float64(p.X), float64(p.Y)}) {
				continue
			}
			cloud.interior = append(cloud.interior, p)
		}
	}
	return cloud
}

// InsertStamp removes every triangle whose centroid falls inside the
// template outline centered at center, then re-triangulates the generated
// point cloud together with the surviving seam vertices and classifies the
// new triangles by ring distance, letting the resolver override per
// centroid. Returns nil, with no mutation, if the template is empty or the
// combined point set cannot be triangulated.
func (m *Mesh) InsertStamp(tmpl *StampTemplate, center math.Vec2, resolve TerrainResolver) *StampResult {
	if tmpl == nil || len(tmpl.Rings) == 0 || tmpl.OuterRadius() <= 0 {
		return nil
	}
	cloud := tmpl.generateCloud(center)

	// Plan the removal without mutating: triangles whose centroid lies in
	// the outline, the vertices they use, and which of those survive as
	// the seam the new patch stitches to.
	removedSet := make(map[TriangleID]struct{})
	regionVerts := make(map[VertexID]struct{})
	var removed []TriangleID
	for _, tid := range m.TriangleIDs() {
		c := m.FaceCentroid(tid).XZ()
		if planar.RingContains(cloud.ring, orb.Point{float64(c.X), float64(c.Y)}) {
			removed = append(removed, tid)
			removedSet[tid] = struct{}{}
			for _, v := range m.triangles[tid].Vertices {
				regionVerts[v] = struct{}{}
			}
		}
	}

	var seam []VertexID
	for v := range regionVerts {
		for _, tid := range m.TrianglesAtVertex(v) {
			if _, gone := removedSet[tid]; !gone {
				seam = append(seam, v)
				break
			}
		}
	}
	sort.Slice(seam, func(i, j int) bool { return seam[i] < seam[j] })

	newPts := make([]math.Vec2, 0, len(cloud.boundary)+len(cloud.interior))
	newPts = append(newPts, cloud.boundary...)
	newPts = append(newPts, cloud.interior...)

	pts := make([]math.Vec2, 0, len(newPts)+len(seam))
	pts = append(pts, newPts...)
	for _, v := range seam {
		pts = append(pts, m.vertices[v].Position.XZ())
	}
	if len(pts) < 3 {
		return nil
	}
	tris, err := delaunayTriangles(pts)
	if err != nil {
		return nil
	}

	// Sample elevations for the new points against the pre-edit surface.
	elev := make([]float32, len(newPts))
	for i, p := range newPts {
		if y, ok := m.ElevationAt(p.X, p.Y); ok {
			elev[i] = y
		}
	}

	res := &StampResult{SeamVertices: seam}

	// Carve the hole. Edges and vertices left without any triangle go too,
	// unless the vertex is on the seam.
	edgeCandidates := make(map[EdgeID]struct{})
	for _, tid := range removed {
		for _, eid := range m.triangles[tid].Edges {
			edgeCandidates[eid] = struct{}{}
		}
		m.removeTriangle(tid)
	}
	res.RemovedTriangles = removed
	for eid := range edgeCandidates {
		if e := m.edges[eid]; e != nil && len(e.Triangles) == 0 {
			m.removeEdge(eid)
			res.RemovedEdges = append(res.RemovedEdges, eid)
		}
	}
	for v := range regionVerts {
		if m.vertices[v] != nil && len(m.edgesAtVertex[v]) == 0 {
			m.removeVertex(v)
			res.RemovedVertices = append(res.RemovedVertices, v)
		}
	}

	// Place the new vertices.
	ids := make([]VertexID, len(pts))
	for i, p := range newPts {
		ids[i] = m.CreateVertex(math.Vec3{X: p.X, Y: elev[i], Z: p.Y})
		res.CreatedVertices = append(res.CreatedVertices, ids[i])
	}
	for i, v := range seam {
		ids[len(newPts)+i] = v
	}
	isSeam := func(idx int) bool { return idx >= len(newPts) }

	// Accept patch triangles: a triangle made entirely of seam vertices
	// duplicates surviving geometry, and no edge may exceed two triangles.
	for _, t := range tris {
		if isSeam(t[0]) && isSeam(t[1]) && isSeam(t[2]) {
			continue
		}
		full := false
		for i := 0; i < 3; i++ {
			eid := m.EdgeBetween(ids[t[i]], ids[t[(i+1)%3]])
			if eid != NoEdge && len(m.edges[eid].Triangles) >= 2 {
				full = true
				break
			}
		}
		if full {
			continue
		}

		a, b, c := pts[t[0]], pts[t[1]], pts[t[2]]
		centroid := math.Vec2{
			X: (a.X + b.X + c.X) / 3,
			Y: (a.Y + b.Y + c.Y) / 3,
		}
		code := tmpl.terrainAt(tmpl.Distance(center, centroid))
		if resolve != nil {
			if override, ok := resolve(centroid.X, centroid.Y); ok {
				code = override
			}
		}
		res.CreatedTriangles = append(res.CreatedTriangles,
			m.CreateTriangle(ids[t[0]], ids[t[1]], ids[t[2]], code))
	}
	return res
}
