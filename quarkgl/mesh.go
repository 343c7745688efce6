package quarkgl

import "math"

// NewSphereMesh builds a UV sphere centered at the origin.
//
// widthSegments runs around the Y axis, heightSegments from pole to pole.
func NewSphereMesh(radius Scalar, widthSegments, heightSegments int) Mesh {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	cols := widthSegments + 1
	verts := make([]Vertex, 0, cols*(heightSegments+1))
	for iy := 0; iy <= heightSegments; iy++ {
		v := Scalar(iy) / Scalar(heightSegments)
		theta := v * math.Pi
		st, ct := math.Sincos(theta)
		for ix := 0; ix <= widthSegments; ix++ {
			u := Scalar(ix) / Scalar(widthSegments)
			phi := u * 2 * math.Pi
			sp, cp := math.Sincos(phi)
			verts = append(verts, Vertex{Pos: V3(radius*st*cp, radius*ct, -radius*st*sp)})
		}
	}

	idx := func(ix, iy int) uint32 { return uint32(iy*cols + ix) }
	indices := make([]uint32, 0, widthSegments*heightSegments*6)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := idx(ix, iy)
			b := idx(ix, iy+1)
			c := idx(ix+1, iy+1)
			d := idx(ix+1, iy)
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}

	return Mesh{
		Enabled:   true,
		Mode:      RenderSolidFlat,
		Vertices:  verts,
		Indices:   indices,
		Transform: Mat4Identity(),
		Material:  Material{BaseColor: RGB(0xCC, 0xCC, 0xCC), Opacity: 0xFF},
	}
}

// NewCylinderMesh builds an open-ended cylinder standing on the XZ plane from y=0 to
// y=height.
func NewCylinderMesh(radius, height Scalar, segments int) Mesh {
	if segments < 3 {
		segments = 3
	}
	verts := make([]Vertex, 0, segments*2)
	for i := 0; i < segments; i++ {
		s, c := math.Sincos(2 * math.Pi * Scalar(i) / Scalar(segments))
		verts = append(verts,
			Vertex{Pos: V3(radius*c, 0, radius*s)},
			Vertex{Pos: V3(radius*c, height, radius*s)},
		)
	}
	indices := make([]uint32, 0, segments*6)
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		b0, t0 := uint32(2*i), uint32(2*i+1)
		b1, t1 := uint32(2*j), uint32(2*j+1)
		indices = append(indices, b0, t0, t1)
		indices = append(indices, b0, t1, b1)
	}
	return Mesh{
		Enabled:   true,
		Mode:      RenderSolidFlat,
		Vertices:  verts,
		Indices:   indices,
		Transform: Mat4Identity(),
		Material:  Material{BaseColor: RGB(0xCC, 0xCC, 0xCC), Opacity: 0xFF},
	}
}
