package quarkgl

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	w, h     int
	depthBuf []float32
}

// NewRenderer creates a renderer for a given target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:       RenderSolidFlat,
		ClearColor: RGB(0, 0, 0),
	}
	r.EnableDepth(enableDepth, w, h)
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

// Resize resizes the depth buffer for a new target size.
func (r *Renderer) Resize(w, h int) {
	r.EnableDepth(r.Depth, w, h)
}

// Size reports the size last passed to Resize or NewRenderer.
func (r *Renderer) Size() (w, h int) { return r.w, r.h }

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	r.w, r.h = w, h
	if !on || w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// Render renders a scene into the target using the scene camera's cached matrices.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil || s.Camera == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)

	if r.Depth {
		if w != r.w || h != r.h || r.depthBuf == nil {
			r.EnableDepth(true, w, h)
		}
		r.clearDepth()
	}

	viewProj := s.Camera.ViewProjection()

	s.eachMesh(func(m *Mesh) {
		if m == nil || !m.Enabled {
			return
		}
		r.renderMesh(t, w, h, viewProj, *m, s.Light)
	})
	for _, l := range s.lines {
		if !l.Enabled {
			continue
		}
		r.renderPolyline(t, w, h, viewProj, l)
	}
}

func (r *Renderer) renderMesh(t Target, w, h int, viewProj Mat4, m Mesh, light Light) {
	if len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return
	}
	if m.Transform == (Mat4{}) {
		m.Transform = Mat4Identity()
	}

	mvp := Mat4Mul(viewProj, m.Transform)
	base := m.Material.BaseColor
	if m.Material.Opacity != 0 && m.Material.Opacity != 0xFF {
		base.A = m.Material.Opacity
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0 := int(m.Indices[i+0])
		i1 := int(m.Indices[i+1])
		i2 := int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}

		v0 := m.Vertices[i0]
		v1 := m.Vertices[i1]
		v2 := m.Vertices[i2]

		ndc0, ok0 := clipToNDC(Mat4MulV4(mvp, Point(v0.Pos)))
		ndc1, ok1 := clipToNDC(Mat4MulV4(mvp, Point(v1.Pos)))
		ndc2, ok2 := clipToNDC(Mat4MulV4(mvp, Point(v2.Pos)))
		// Trivial clip: drop triangles touching the camera plane.
		if !ok0 || !ok1 || !ok2 {
			continue
		}

		x0, y0 := ndcToScreen(ndc0, w, h)
		x1, y1 := ndcToScreen(ndc1, w, h)
		x2, y2 := ndcToScreen(ndc2, w, h)

		c := base
		if light.Mode == LightAmbientDirectional {
			p0, _, _ := TransformPoint(m.Transform, v0.Pos)
			p1, _, _ := TransformPoint(m.Transform, v1.Pos)
			p2, _, _ := TransformPoint(m.Transform, v2.Pos)
			c = c.MulScalar(lightIntensity(light, triangleNormal(p0, p1, p2)))
			c.A = base.A
		}

		switch r.Mode {
		case RenderWireframe:
			r.drawLine(t, w, x0, y0, ndc0.Z, x1, y1, ndc1.Z, c)
			r.drawLine(t, w, x1, y1, ndc1.Z, x2, y2, ndc2.Z, c)
			r.drawLine(t, w, x2, y2, ndc2.Z, x0, y0, ndc0.Z, c)
		default:
			if m.Mode == RenderWireframe {
				r.drawLine(t, w, x0, y0, ndc0.Z, x1, y1, ndc1.Z, c)
				r.drawLine(t, w, x1, y1, ndc1.Z, x2, y2, ndc2.Z, c)
				r.drawLine(t, w, x2, y2, ndc2.Z, x0, y0, ndc0.Z, c)
				continue
			}
			r.fillTriangleFlat(t, w, h, x0, y0, ndc0.Z, x1, y1, ndc1.Z, x2, y2, ndc2.Z, c)
		}
	}
}

func (r *Renderer) renderPolyline(t Target, w, h int, viewProj Mat4, l Polyline) {
	if len(l.Points) < 2 {
		return
	}
	prev, prevOK := clipToNDC(Mat4MulV4(viewProj, Point(l.Points[0])))
	for _, p := range l.Points[1:] {
		cur, ok := clipToNDC(Mat4MulV4(viewProj, Point(p)))
		if ok && prevOK {
			x0, y0 := ndcToScreen(prev, w, h)
			x1, y1 := ndcToScreen(cur, w, h)
			r.drawLine(t, w, x0, y0, prev.Z, x1, y1, cur.Z, l.Color)
		}
		prev, prevOK = cur, ok
	}
}

type ndcPoint struct {
	X, Y, Z float32
}

func clipToNDC(p Vec4) (ndcPoint, bool) {
	if p.W <= 0 {
		return ndcPoint{}, false
	}
	invW := 1.0 / p.W
	return ndcPoint{
		X: float32(p.X * invW),
		Y: float32(p.Y * invW),
		Z: float32(p.Z * invW),
	}, true
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx := (p.X*0.5 + 0.5) * float32(w-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return int(sx + 0.5), int(sy + 0.5)
}

func triangleNormal(a, b, c Vec3) Vec3 {
	return Normalize(Cross(b.Sub(a), c.Sub(a)))
}

func lightIntensity(l Light, n Vec3) Scalar {
	amb := Clamp01(l.Ambient)
	dir := Clamp01(l.DirAmount)
	ld := Normalize(l.Dir)
	if ld == (Vec3{}) {
		return amb
	}
	d := Dot(n, ld.Mul(-1))
	if d < 0 {
		d = 0
	}
	return Clamp01(amb + d*dir)
}

func (r *Renderer) depthTest(w int, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is in [-1,1]. Map to [0,1].
	d := clampF32(z*0.5+0.5, 0, 1)
	if d >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = d
	return true
}

// drawLine rasterizes a segment with Bresenham, interpolating depth along the way.
func (r *Renderer) drawLine(t Target, w int, x0, y0 int, z0 float32, x1, y1 int, z1 float32, c Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	steps := dx
	if -dy > steps {
		steps = -dy
	}
	// Lines lose ties against the surfaces they sit on.
	const bias = 1e-4
	err := dx + dy
	for i := 0; ; i++ {
		z := z0
		if steps > 0 {
			z = z0 + (z1-z0)*float32(i)/float32(steps)
		}
		if r.depthTest(w, x0, y0, z-bias) {
			t.SetPixel(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (r *Renderer) fillTriangleFlat(t Target, w, h int, x0, y0 int, z0 float32, x1, y1 int, z1 float32, x2, y2 int, z2 float32, c Color) {
	minX, maxX := min3(x0, x1, x2), max3(x0, x1, x2)
	minY, maxY := min3(y0, y1, y2), max3(y0, y1, y2)
	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, w-1)
	maxY = min(maxY, h-1)
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}
	invArea := 1.0 / float32(area)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(x1, y1, x2, y2, x, y)
			w1 := edgeFn(x2, y2, x0, y0, x, y)
			w2 := edgeFn(x0, y0, x1, y1, x, y)
			// Accept either winding.
			if area > 0 && (w0|w1|w2) < 0 {
				continue
			}
			if area < 0 && (w0 > 0 || w1 > 0 || w2 > 0) {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			z := a0*z0 + a1*z1 + a2*z2
			if !r.depthTest(w, x, y, z) {
				continue
			}
			t.SetPixel(x, y, c)
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int { return min(a, b, c) }
func max3(a, b, c int) int { return max(a, b, c) }

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
