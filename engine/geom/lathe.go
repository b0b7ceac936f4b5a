package geom

import "math"

// Coincident reports whether pts holds fewer than two distinct points.
// Such a profile or polyline has zero length and cannot be drawn.
func Coincident(pts []Vec2) bool {
	if len(pts) < 2 {
		return true
	}
	for _, p := range pts[1:] {
		if p != pts[0] {
			return false
		}
	}
	return true
}

// Lathe revolves profile a full turn about the Y axis in segments angular
// steps. Profile X is the radius and Y the height; point order along the
// profile becomes the longitudinal order of the surface. Vertex i,j sits at
// (r*sin(phi), y, r*cos(phi)) with phi = 2*pi*i/segments, so the seam lies in
// the +Z half of the YZ plane. Returns nil when the profile is too short.
func Lathe(profile []Vec2, segments int, c Color3) *Mesh3D {
	if len(profile) < 2 || segments < 1 {
		return nil
	}
	normals := profileNormals(profile)

	rings := make([][]Vertex3D, segments+1)
	for i := 0; i <= segments; i++ {
		phi := 2 * math.Pi * float64(i) / float64(segments)
		sin, cos := math.Sin(phi), math.Cos(phi)
		ring := make([]Vertex3D, len(profile))
		for j, p := range profile {
			n := normals[j]
			ring[j] = Vertex3D{
				Pos:    V3(p.X*sin, p.Y, p.X*cos),
				Normal: V3(n.X*sin, n.Y, n.X*cos).Normalize(),
				Color:  c,
			}
		}
		rings[i] = ring
	}

	m := &Mesh3D{Triangles: make([]Triangle3D, 0, segments*(len(profile)-1)*2)}
	for i := 0; i < segments; i++ {
		for j := 0; j < len(profile)-1; j++ {
			m.AddQuad(rings[i][j], rings[i+1][j], rings[i+1][j+1], rings[i][j+1])
		}
	}
	return m
}

// profileNormals gives each profile point the 2D normal (dy, -dx) of its
// outgoing edge, averaged with the incoming edge for interior points.
func profileNormals(profile []Vec2) []Vec2 {
	n := len(profile)
	out := make([]Vec2, n)
	var prev Vec2
	for j := 0; j < n; j++ {
		switch j {
		case 0:
			d := profile[1].Sub(profile[0])
			prev = unit2(Vec2{d.Y, -d.X})
			out[j] = prev
		case n - 1:
			out[j] = prev
		default:
			d := profile[j+1].Sub(profile[j])
			cur := unit2(Vec2{d.Y, -d.X})
			out[j] = unit2(Vec2{cur.X + prev.X, cur.Y + prev.Y})
			prev = cur
		}
	}
	return out
}

func unit2(v Vec2) Vec2 {
	l := v.Len()
	if l < 1e-10 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}
