package app

import (
	"math"

	"geoglobe/globe/graticule"
	"geoglobe/globe/markers"
	"geoglobe/quarkgl"
)

var (
	colorBackground = quarkgl.RGB(0x05, 0x07, 0x10)
	colorOcean      = quarkgl.RGB(0x0b, 0x1a, 0x33)
	colorWire       = quarkgl.RGB(0x2d, 0x5a, 0x8c)
	colorGraticule  = quarkgl.RGBA(0xff, 0xff, 0xff, 0x50)
	colorMarker     = quarkgl.RGB(0xff, 0xcc, 0x33)
	colorHovered    = quarkgl.RGB(0xff, 0x44, 0x44)
	colorBar        = quarkgl.RGBA(0x66, 0xdd, 0xff, 0xc0)
	colorAxisX      = quarkgl.RGB(0xff, 0x33, 0x33)
	colorAxisY      = quarkgl.RGB(0x33, 0xff, 0x33)
	colorAxisZ      = quarkgl.RGB(0x33, 0x66, 0xff)
)

// axesScale is the axis length relative to the globe radius.
const axesScale = 2

// sceneContent owns the meshes and lines that depict the globe and its markers.
type sceneContent struct {
	scene *quarkgl.Scene
	// axes adds X/Y/Z lines from the origin on every rebuild.
	axes bool

	globeIDs  []int
	markerIDs map[string]int
	barIDs    map[string]int
	hovered   string
}

func newSceneContent(s *quarkgl.Scene) *sceneContent {
	return &sceneContent{scene: s, markerIDs: map[string]int{}, barIDs: map[string]int{}}
}

// rebuild replaces every mesh and line for the given radius. Markers must already be
// positioned for that radius.
func (c *sceneContent) rebuild(radius float64, segments int, grid *graticule.Graticule, ms []markers.Marker, markerSize float64, bars bool) {
	for _, id := range c.globeIDs {
		c.scene.RemoveMesh(id)
	}
	for _, id := range c.markerIDs {
		c.scene.RemoveMesh(id)
	}
	for _, id := range c.barIDs {
		c.scene.RemoveMesh(id)
	}
	c.globeIDs = c.globeIDs[:0]
	clear(c.markerIDs)
	clear(c.barIDs)
	c.hovered = ""

	ocean := quarkgl.NewSphereMesh(radius*0.995, segments, segments/2)
	ocean.Material.BaseColor = colorOcean
	c.globeIDs = append(c.globeIDs, c.scene.AddMesh(ocean))

	wire := quarkgl.NewSphereMesh(radius, segments, segments/2)
	wire.Mode = quarkgl.RenderWireframe
	wire.Material.BaseColor = colorWire
	c.globeIDs = append(c.globeIDs, c.scene.AddMesh(wire))

	var lines []quarkgl.Polyline
	if grid != nil {
		for _, l := range grid.Lines() {
			if l.Len() < 2 {
				continue
			}
			lines = append(lines, quarkgl.Polyline{Points: l.Points(), Color: colorGraticule})
		}
	}
	if c.axes {
		lines = append(lines, axesLines(radius*axesScale)...)
	}
	c.scene.SetPolylines(lines)

	for _, m := range ms {
		sphere := quarkgl.NewSphereMesh(markerSize, 8, 6)
		sphere.Material.BaseColor = colorMarker
		sphere.Transform = quarkgl.Mat4Translate(m.Position)
		c.markerIDs[m.ID] = c.scene.AddMesh(sphere)

		if bars && m.Payload.Value > 0 {
			bar := quarkgl.NewCylinderMesh(markerSize*0.5, m.Payload.Value, 6)
			bar.Material.BaseColor = colorBar
			bar.Material.Opacity = colorBar.A
			bar.Transform = surfaceFrame(m.Position)
			c.barIDs[m.ID] = c.scene.AddMesh(bar)
		}
	}
}

// axesLines returns the X, Y and Z axes from the origin, in that order.
func axesLines(length float64) []quarkgl.Polyline {
	o := quarkgl.V3(0, 0, 0)
	return []quarkgl.Polyline{
		{Points: []quarkgl.Vec3{o, quarkgl.V3(length, 0, 0)}, Color: colorAxisX},
		{Points: []quarkgl.Vec3{o, quarkgl.V3(0, length, 0)}, Color: colorAxisY},
		{Points: []quarkgl.Vec3{o, quarkgl.V3(0, 0, length)}, Color: colorAxisZ},
	}
}

// setHovered recolors the hovered marker and restores the previous one.
func (c *sceneContent) setHovered(id string) {
	if id == c.hovered {
		return
	}
	if prev, ok := c.markerIDs[c.hovered]; ok {
		c.scene.SetMeshColor(prev, colorMarker)
	}
	if cur, ok := c.markerIDs[id]; ok {
		c.scene.SetMeshColor(cur, colorHovered)
	}
	c.hovered = id
}

// surfaceFrame returns a transform whose +Y axis is the outward normal at p.
func surfaceFrame(p quarkgl.Vec3) quarkgl.Mat4 {
	n := quarkgl.Normalize(p)
	if n == (quarkgl.Vec3{}) {
		return quarkgl.Mat4Translate(p)
	}
	ref := quarkgl.V3(0, 1, 0)
	if math.Abs(n.Y) > 0.99 {
		ref = quarkgl.V3(1, 0, 0)
	}
	t1 := quarkgl.Normalize(quarkgl.Cross(n, ref))
	t2 := quarkgl.Cross(t1, n)
	return quarkgl.Mat4Basis(t1, n, t2, p)
}
