// Package preview renders top-down images of a terrain mesh: filled
// triangles in their terrain colors, shaded by elevation, with an optional
// wireframe overlay. It backs the meshtool preview command and the editor
// debug server.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/mazznoer/colorgrad"

	"github.com/Faultbox/fairway/internal/mesh"
)

// Options controls a render.
type Options struct {
	Width     int
	Height    int
	Wireframe bool // Stroke triangle outlines on top of the fills
}

// terrainColors maps each terrain classification to its base fill color.
var terrainColors = map[mesh.TerrainCode]color.RGBA{
	mesh.TerrainFairway:     {R: 0x4c, G: 0xa6, B: 0x4c, A: 0xff},
	mesh.TerrainRough:       {R: 0x2e, G: 0x6b, B: 0x2e, A: 0xff},
	mesh.TerrainGreen:       {R: 0x7a, G: 0xd4, B: 0x5f, A: 0xff},
	mesh.TerrainBunker:      {R: 0xe0, G: 0xc9, B: 0x7a, A: 0xff},
	mesh.TerrainWater:       {R: 0x2f, G: 0x6f, B: 0xc9, A: 0xff},
	mesh.TerrainTee:         {R: 0x8f, G: 0xdd, B: 0x8f, A: 0xff},
	mesh.TerrainPath:        {R: 0xb0, G: 0xa4, B: 0x90, A: 0xff},
	mesh.TerrainOutOfBounds: {R: 0x55, G: 0x4a, B: 0x40, A: 0xff},
}

// Render draws the mesh into a new image. The world rectangle is fitted to
// the image with a uniform scale, X mapping to the horizontal axis and Z to
// the vertical.
func Render(m *mesh.Mesh, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("preview: bad image size %dx%d", opts.Width, opts.Height)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("preview: mesh has no world extent")
	}

	shade, err := colorgrad.NewGradient().
		HtmlColors("#1c2430", "#f5f1e6").
		Domain(0, 1).
		Build()
	if err != nil {
		return nil, fmt.Errorf("preview: building elevation gradient: %w", err)
	}

	minY, maxY := elevationRange(m)

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetFillColor(color.RGBA{R: 0x10, G: 0x10, B: 0x12, A: 0xff})
	gc.Clear()

	scale := float64(opts.Width) / float64(m.Width)
	if s := float64(opts.Height) / float64(m.Height); s < scale {
		scale = s
	}
	toPx := func(x, z float32) (float64, float64) {
		return float64(x) * scale, float64(z) * scale
	}

	gc.SetLineWidth(1)
	gc.SetStrokeColor(color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff})

	for _, tid := range m.TriangleIDs() {
		tri := m.Triangle(tid)
		base, ok := terrainColors[tri.Terrain]
		if !ok {
			base = color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}
		}

		t := 0.5
		if maxY > minY {
			c := m.FaceCentroid(tid)
			t = float64((c.Y - minY) / (maxY - minY))
		}
		sh := shade.At(t)
		fill := color.RGBA{
			R: blend(base.R, sh.R),
			G: blend(base.G, sh.G),
			B: blend(base.B, sh.B),
			A: 0xff,
		}

		gc.SetFillColor(fill)
		gc.BeginPath()
		x, y := toPx(m.Vertex(tri.Vertices[0]).Position.X, m.Vertex(tri.Vertices[0]).Position.Z)
		gc.MoveTo(x, y)
		for _, v := range tri.Vertices[1:] {
			x, y = toPx(m.Vertex(v).Position.X, m.Vertex(v).Position.Z)
			gc.LineTo(x, y)
		}
		gc.Close()
		if opts.Wireframe {
			gc.FillStroke()
		} else {
			gc.Fill()
		}
	}

	return img, nil
}

// Encode renders the mesh and writes it to w as PNG.
func Encode(w io.Writer, m *mesh.Mesh, opts Options) error {
	img, err := Render(m, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("preview: encoding png: %w", err)
	}
	return nil
}

// SaveFile renders the mesh and writes it to a PNG file.
func SaveFile(path string, m *mesh.Mesh, opts Options) error {
	img, err := Render(m, opts)
	if err != nil {
		return err
	}
	if err := draw2dimg.SaveToPngFile(path, img); err != nil {
		return fmt.Errorf("preview: saving %s: %w", path, err)
	}
	return nil
}

// blend mixes a base channel with an elevation shade channel, keeping the
// terrain hue dominant.
func blend(base uint8, shade float64) uint8 {
	v := 0.65*float64(base) + 0.35*shade*255
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// elevationRange returns the lowest and highest vertex elevations.
func elevationRange(m *mesh.Mesh) (float32, float32) {
	first := true
	var lo, hi float32
	for _, id := range m.VertexIDs() {
		y := m.Vertex(id).Position.Y
		if first {
			lo, hi = y, y
			first = false
			continue
		}
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}
	return lo, hi
}
