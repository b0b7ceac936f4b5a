package geom

import "math"

// Vertex3D is a vertex with position, normal, and color
type Vertex3D struct {
	Pos    Vec3
	Normal Vec3
	Color  Color3
}

// Triangle3D is three vertices
type Triangle3D struct {
	V [3]Vertex3D
}

// Center returns the centroid of the triangle.
func (t Triangle3D) Center() Vec3 {
	return t.V[0].Pos.Add(t.V[1].Pos).Add(t.V[2].Pos).Scale(1.0 / 3)
}

// FaceNormal returns the unit normal implied by the winding order.
func (t Triangle3D) FaceNormal() Vec3 {
	return t.V[1].Pos.Sub(t.V[0].Pos).Cross(t.V[2].Pos.Sub(t.V[0].Pos)).Normalize()
}

// Mesh3D is a collection of triangles
type Mesh3D struct {
	Triangles []Triangle3D
}

func (m *Mesh3D) AddTriangle(v0, v1, v2 Vertex3D) {
	m.Triangles = append(m.Triangles, Triangle3D{V: [3]Vertex3D{v0, v1, v2}})
}

// AddQuad adds the quad v0 v1 v2 v3, given in winding order, as the
// triangles (v0, v1, v3) and (v2, v3, v1). The diagonal runs v1 to v3.
func (m *Mesh3D) AddQuad(v0, v1, v2, v3 Vertex3D) {
	m.AddTriangle(v0, v1, v3)
	m.AddTriangle(v2, v3, v1)
}

func (m *Mesh3D) TriangleCount() int { return len(m.Triangles) }
func (m *Mesh3D) IsEmpty() bool      { return m == nil || len(m.Triangles) == 0 }

// Transform returns a transformed copy; m is left unchanged.
func (m *Mesh3D) Transform(mat Mat4) *Mesh3D {
	out := &Mesh3D{Triangles: make([]Triangle3D, len(m.Triangles))}
	for i, tri := range m.Triangles {
		for j := 0; j < 3; j++ {
			out.Triangles[i].V[j] = tri.V[j]
			out.Triangles[i].V[j].Pos = mat.TransformPoint(tri.V[j].Pos)
			out.Triangles[i].V[j].Normal = mat.TransformDir(tri.V[j].Normal).Normalize()
		}
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the mesh.
func (m *Mesh3D) Bounds() (lo, hi Vec3) {
	if m.IsEmpty() {
		return Vec3{}, Vec3{}
	}
	lo = V3(math.Inf(1), math.Inf(1), math.Inf(1))
	hi = V3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for _, tri := range m.Triangles {
		for _, v := range tri.V {
			lo = V3(math.Min(lo.X, v.Pos.X), math.Min(lo.Y, v.Pos.Y), math.Min(lo.Z, v.Pos.Z))
			hi = V3(math.Max(hi.X, v.Pos.X), math.Max(hi.Y, v.Pos.Y), math.Max(hi.Z, v.Pos.Z))
		}
	}
	return lo, hi
}

// MakeCone builds a capped cone with its apex at +height/2 on the Y axis.
func MakeCone(radius, height float64, segments int, c Color3) *Mesh3D {
	hh := height / 2
	return Lathe([]Vec2{{0, -hh}, {radius, -hh}, {0, hh}}, segments, c)
}
