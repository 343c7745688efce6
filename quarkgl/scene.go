package quarkgl

// Material is a minimal surface description.
type Material struct {
	BaseColor Color
	Opacity   uint8 // 0..255. 255 means opaque.
}

// LightMode defines minimal lighting options.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
)

// Light is a minimal light setup.
type Light struct {
	Mode      LightMode
	Ambient   Scalar // 0..1
	Dir       Vec3   // direction *towards* the scene
	DirAmount Scalar // 0..1
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos Vec3
}

// Mesh is a triangle mesh with an object transform.
type Mesh struct {
	Enabled bool
	Mode    RenderMode

	Vertices []Vertex
	Indices  []uint32 // triangle list

	Transform Mat4
	Material  Material
}

// Polyline is an open line strip in world space.
type Polyline struct {
	Enabled bool
	Points  []Vec3
	Color   Color
}

// Scene is a collection of objects to render.
type Scene struct {
	Camera *Camera
	Light  Light

	meshes []Mesh
	alive  []bool
	lines  []Polyline
}

// CreateScene allocates a scene with a default camera and light.
func CreateScene() *Scene {
	return &Scene{
		Camera: NewPerspectiveCamera(50, 1, 0.1, 1000),
		Light: Light{
			Mode:      LightAmbientDirectional,
			Ambient:   0.5,
			Dir:       Normalize(V3(-1, -1, -1)),
			DirAmount: 0.8,
		},
	}
}

// AddMesh adds a mesh to the scene and returns its id.
func (s *Scene) AddMesh(m Mesh) int {
	if s == nil {
		return -1
	}
	if m.Transform == (Mat4{}) {
		m.Transform = Mat4Identity()
	}
	if m.Material.Opacity == 0 {
		m.Material.Opacity = 0xFF
	}
	if m.Material.BaseColor == (Color{}) {
		m.Material.BaseColor = RGB(0xCC, 0xCC, 0xCC)
	}
	m.Enabled = true
	for i := range s.meshes {
		if !s.alive[i] {
			s.meshes[i] = m
			s.alive[i] = true
			return i
		}
	}
	s.meshes = append(s.meshes, m)
	s.alive = append(s.alive, true)
	return len(s.meshes) - 1
}

// RemoveMesh removes a mesh by id.
func (s *Scene) RemoveMesh(id int) {
	if s == nil || id < 0 || id >= len(s.meshes) {
		return
	}
	s.alive[id] = false
	s.meshes[id] = Mesh{}
}

// SetMeshEnabled enables/disables a mesh by id.
func (s *Scene) SetMeshEnabled(id int, enabled bool) {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.alive[id] {
		return
	}
	s.meshes[id].Enabled = enabled
}

// UpdateMeshTransform updates a mesh transform by id.
func (s *Scene) UpdateMeshTransform(id int, m Mat4) {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.alive[id] {
		return
	}
	s.meshes[id].Transform = m
}

// SetMeshColor replaces the base color of a mesh.
func (s *Scene) SetMeshColor(id int, c Color) {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.alive[id] {
		return
	}
	s.meshes[id].Material.BaseColor = c
}

// MeshCount reports the number of live meshes.
func (s *Scene) MeshCount() int {
	n := 0
	for _, ok := range s.alive {
		if ok {
			n++
		}
	}
	return n
}

// SetPolylines replaces every polyline in the scene.
func (s *Scene) SetPolylines(lines []Polyline) {
	if s == nil {
		return
	}
	s.lines = s.lines[:0]
	for _, l := range lines {
		l.Enabled = true
		s.lines = append(s.lines, l)
	}
}

func (s *Scene) PolylineCount() int { return len(s.lines) }

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for i := range s.meshes {
		if !s.alive[i] {
			continue
		}
		fn(&s.meshes[i])
	}
}
