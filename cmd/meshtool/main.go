// meshtool is a CLI utility for working with Fairway terrain mesh files.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Faultbox/fairway/internal/mesh"
	"github.com/Faultbox/fairway/internal/nav"
	"github.com/Faultbox/fairway/internal/preview"
	"github.com/Faultbox/fairway/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "new":
		cmdNew(args)
	case "info":
		cmdInfo(args)
	case "validate", "check":
		cmdValidate(args)
	case "stamp":
		cmdStamp(args)
	case "preview":
		cmdPreview(args)
	case "path":
		cmdPath(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - Fairway terrain mesh utility

Usage:
  meshtool <command> [options]

Commands:
  new <out.json>                     Create a fresh grid course
  info <mesh.json>                   Show mesh statistics
  validate <mesh.json>               Run the full invariant check
  stamp <mesh.json>                  Insert a procedural terrain stamp
  preview <mesh.json> <out.png>      Render a top-down preview image
  path <mesh.json>                   Plan a walking route between two points

Examples:
  meshtool new course.json -cols 40 -rows 40
  meshtool stamp course.json -shape circle -x 20 -z 20 -radius 5 -terrain water
  meshtool preview course.json course.png -w 1024 -h 1024 -wire
  meshtool path course.json -from 2,2 -to 30,35`)
}

func loadMesh(path string) *mesh.Mesh {
	m, err := mesh.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return m
}

func saveMesh(m *mesh.Mesh, path string) {
	if err := m.SaveFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdNew(args []string) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	cols := fs.Int("cols", 64, "Grid cells along X")
	rows := fs.Int("rows", 64, "Grid cells along Z")
	cell := fs.Float64("cell", 1.0, "World units per cell")
	terrain := fs.String("terrain", "rough", "Base terrain name")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool new <out.json> [-cols N] [-rows N] [-cell S] [-terrain name]")
		os.Exit(1)
	}

	code, ok := terrainByName(*terrain)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown terrain: %s\n", *terrain)
		os.Exit(1)
	}

	m := mesh.NewGrid(*cols, *rows, float32(*cell), code)
	saveMesh(m, fs.Arg(0))
	fmt.Printf("Created: %s (%d vertices, %d triangles)\n",
		fs.Arg(0), m.VertexCount(), m.TriangleCount())
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool info <mesh.json>")
		os.Exit(1)
	}
	m := loadMesh(args[0])

	terrainCount := make(map[mesh.TerrainCode]int)
	boundaryEdges := 0
	for _, tid := range m.TriangleIDs() {
		terrainCount[m.Triangle(tid).Terrain]++
	}
	for _, eid := range m.EdgeIDs() {
		if m.Edge(eid).IsBoundary() {
			boundaryEdges++
		}
	}

	fmt.Printf("Mesh:      %s\n", args[0])
	fmt.Printf("World:     %.1f x %.1f\n", m.Width, m.Height)
	fmt.Printf("Vertices:  %d\n", m.VertexCount())
	fmt.Printf("Edges:     %d (%d boundary)\n", m.EdgeCount(), boundaryEdges)
	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	fmt.Println()
	fmt.Println("Triangles by terrain:")
	for code := mesh.TerrainFairway; code <= mesh.TerrainOutOfBounds; code++ {
		if n := terrainCount[code]; n > 0 {
			fmt.Printf("  %-12s %d\n", code, n)
		}
	}
}

func cmdValidate(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool validate <mesh.json>")
		os.Exit(1)
	}
	m := loadMesh(args[0])

	if err := m.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "INVALID:\n%v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK")
}

func cmdStamp(args []string) {
	fs := flag.NewFlagSet("stamp", flag.ExitOnError)
	shape := fs.String("shape", "circle", "Stamp shape: circle, oval, rectangle, kidney")
	x := fs.Float64("x", 0, "Stamp center X")
	z := fs.Float64("z", 0, "Stamp center Z")
	radius := fs.Float64("radius", 5, "Outer radius")
	inner := fs.Float64("inner", 0, "Inner ring radius (0 = single ring)")
	terrain := fs.String("terrain", "bunker", "Terrain inside the stamp")
	rim := fs.String("rim", "", "Terrain of the outer ring (default same as -terrain)")
	aspect := fs.Float64("aspect", 1, "Z extent relative to X for oval/rectangle")
	seed := fs.Int64("seed", 1, "Noise seed for the fill jitter")
	out := fs.String("out", "", "Output path (default overwrite input)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool stamp <mesh.json> [options]")
		os.Exit(1)
	}

	shapes := map[string]mesh.StampShape{
		"circle":    mesh.StampCircle,
		"oval":      mesh.StampOval,
		"rectangle": mesh.StampRectangle,
		"rect":      mesh.StampRectangle,
		"kidney":    mesh.StampKidney,
	}
	sh, ok := shapes[strings.ToLower(*shape)]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown shape: %s\n", *shape)
		os.Exit(1)
	}
	code, ok := terrainByName(*terrain)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown terrain: %s\n", *terrain)
		os.Exit(1)
	}

	tmpl := &mesh.StampTemplate{
		Shape:  sh,
		Aspect: float32(*aspect),
		Jitter: 0.4,
		Seed:   *seed,
	}
	if *inner > 0 && *inner < *radius {
		rimCode := code
		if *rim != "" {
			if rimCode, ok = terrainByName(*rim); !ok {
				fmt.Fprintf(os.Stderr, "Unknown terrain: %s\n", *rim)
				os.Exit(1)
			}
		}
		tmpl.Rings = []mesh.StampRing{
			{Radius: float32(*inner), Terrain: code},
			{Radius: float32(*radius), Terrain: rimCode},
		}
	} else {
		tmpl.Rings = []mesh.StampRing{{Radius: float32(*radius), Terrain: code}}
	}

	m := loadMesh(fs.Arg(0))
	res := m.InsertStamp(tmpl, math.Vec2{X: float32(*x), Y: float32(*z)}, nil)
	if res == nil {
		fmt.Fprintln(os.Stderr, "Stamp rejected (empty template or degenerate point set)")
		os.Exit(1)
	}
	if err := m.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Stamp left the mesh inconsistent:\n%v\n", err)
		os.Exit(1)
	}

	dest := fs.Arg(0)
	if *out != "" {
		dest = *out
	}
	saveMesh(m, dest)
	fmt.Printf("Stamped: %s (+%d/-%d triangles, %d new vertices)\n",
		dest, len(res.CreatedTriangles), len(res.RemovedTriangles), len(res.CreatedVertices))
}

func cmdPreview(args []string) {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	width := fs.Int("w", 1024, "Image width")
	height := fs.Int("h", 1024, "Image height")
	wire := fs.Bool("wire", false, "Stroke triangle outlines")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool preview <mesh.json> <out.png> [-w N] [-h N] [-wire]")
		os.Exit(1)
	}

	m := loadMesh(fs.Arg(0))
	opts := preview.Options{Width: *width, Height: *height, Wireframe: *wire}
	if err := preview.SaveFile(fs.Arg(1), m, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rendered: %s\n", fs.Arg(1))
}

func cmdPath(args []string) {
	fs := flag.NewFlagSet("path", flag.ExitOnError)
	from := fs.String("from", "", "Start point as x,z")
	to := fs.String("to", "", "End point as x,z")
	fs.Parse(args)

	if fs.NArg() < 1 || *from == "" || *to == "" {
		fmt.Fprintln(os.Stderr, "Usage: meshtool path <mesh.json> -from x,z -to x,z")
		os.Exit(1)
	}

	fx, fz, err := parsePoint(*from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad -from: %v\n", err)
		os.Exit(1)
	}
	tx, tz, err := parsePoint(*to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad -to: %v\n", err)
		os.Exit(1)
	}

	m := loadMesh(fs.Arg(0))
	planner := nav.New(m)
	waypoints, ok := planner.FindPath(fx, fz, tx, tz)
	if !ok {
		fmt.Fprintln(os.Stderr, "No walkable route")
		os.Exit(1)
	}
	for _, wp := range waypoints {
		fmt.Printf("%.2f %.2f %.2f\n", wp.X, wp.Y, wp.Z)
	}
	fmt.Fprintf(os.Stderr, "(%d waypoints)\n", len(waypoints))
}

func parsePoint(s string) (float32, float32, error) {
	var x, z float32
	if _, err := fmt.Sscanf(s, "%g,%g", &x, &z); err != nil {
		return 0, 0, err
	}
	return x, z, nil
}

func terrainByName(name string) (mesh.TerrainCode, bool) {
	switch strings.ToLower(name) {
	case "fairway":
		return mesh.TerrainFairway, true
	case "rough":
		return mesh.TerrainRough, true
	case "green":
		return mesh.TerrainGreen, true
	case "bunker", "sand":
		return mesh.TerrainBunker, true
	case "water":
		return mesh.TerrainWater, true
	case "tee":
		return mesh.TerrainTee, true
	case "path":
		return mesh.TerrainPath, true
	case "oob", "outofbounds":
		return mesh.TerrainOutOfBounds, true
	}
	return 0, false
}
