package scene

import (
	"math"

	"github.com/1siamBot/solids/engine/geom"
)

// Projection selects how a camera maps view space to clip space.
type Projection uint8

const (
	Orthographic Projection = iota
	Perspective
)

// Camera is an orbit camera around Target. Orthographic cameras are used
// for the flat plot (pan and zoom only); perspective cameras for the solids.
type Camera struct {
	Projection Projection

	Target   geom.Vec3
	Yaw      float64 // around +Y, 0 looks down -Z
	Pitch    float64
	Distance float64

	// Perspective
	FOV       float64 // vertical, degrees
	Near, Far float64

	// Orthographic: world units visible vertically at Zoom 1
	FrustumSize float64
	Zoom        float64

	ScreenW, ScreenH int

	// Controls
	EnableRotate bool
	EnablePan    bool
	EnableZoom   bool
	Damping      float64 // fraction of pending motion applied per tick

	yawVel, pitchVel float64
	panVel           geom.Vec3

	view     geom.Mat4
	proj     geom.Mat4
	viewProj geom.Mat4
	dirty    bool
}

const (
	minPitch    = -math.Pi/2 + 0.01
	maxPitch    = math.Pi/2 - 0.01
	minDistance = 0.5
	maxDistance = 500
	minZoom     = 0.05
	maxZoom     = 40
)

// NewPerspectiveCamera places a camera at pos looking at the origin.
func NewPerspectiveCamera(screenW, screenH int, fov float64, pos geom.Vec3) *Camera {
	c := &Camera{
		Projection:   Perspective,
		FOV:          fov,
		Near:         0.1,
		Far:          1000,
		Zoom:         1,
		ScreenW:      screenW,
		ScreenH:      screenH,
		EnableRotate: true,
		EnablePan:    true,
		EnableZoom:   true,
		Damping:      0.05,
	}
	c.placeAt(pos)
	return c
}

// NewOrthoCamera places a camera at pos looking at the origin with
// frustumSize world units visible vertically. Rotation is disabled.
func NewOrthoCamera(screenW, screenH int, frustumSize float64, pos geom.Vec3) *Camera {
	c := &Camera{
		Projection:  Orthographic,
		Near:        0.1,
		Far:         1000,
		FrustumSize: frustumSize,
		Zoom:        1,
		ScreenW:     screenW,
		ScreenH:     screenH,
		EnablePan:   true,
		EnableZoom:  true,
		Damping:     0.05,
	}
	c.placeAt(pos)
	return c
}

func (c *Camera) placeAt(pos geom.Vec3) {
	d := pos.Sub(c.Target)
	c.Distance = d.Len()
	if c.Distance < 1e-9 {
		c.Distance = 1
		return
	}
	c.Pitch = math.Asin(d.Y / c.Distance)
	c.Yaw = math.Atan2(d.X, d.Z)
	c.dirty = true
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() geom.Vec3 {
	cp := math.Cos(c.Pitch)
	return c.Target.Add(geom.V3(
		c.Distance*cp*math.Sin(c.Yaw),
		c.Distance*math.Sin(c.Pitch),
		c.Distance*cp*math.Cos(c.Yaw),
	))
}

// Resize updates the viewport size in pixels.
func (c *Camera) Resize(w, h int) {
	if w == c.ScreenW && h == c.ScreenH {
		return
	}
	c.ScreenW, c.ScreenH = w, h
	c.dirty = true
}

func (c *Camera) aspect() float64 {
	if c.ScreenH == 0 {
		return 1
	}
	return float64(c.ScreenW) / float64(c.ScreenH)
}

func (c *Camera) update() {
	if !c.dirty {
		return
	}
	c.dirty = false

	c.view = geom.Mat4LookAt(c.Eye(), c.Target, geom.V3(0, 1, 0))
	aspect := c.aspect()
	switch c.Projection {
	case Perspective:
		c.proj = geom.Mat4Perspective(c.FOV*math.Pi/180, aspect, c.Near, c.Far)
	default:
		halfH := c.FrustumSize / 2 / c.Zoom
		halfW := halfH * aspect
		c.proj = geom.Mat4Ortho(-halfW, halfW, -halfH, halfH, c.Near, c.Far)
	}
	c.viewProj = c.proj.Mul(c.view)
}

// ViewProj returns the combined view-projection matrix
func (c *Camera) ViewProj() geom.Mat4 {
	c.update()
	return c.viewProj
}

// View returns the world-to-camera matrix.
func (c *Camera) View() geom.Mat4 {
	c.update()
	return c.view
}

// ProjectNDC maps a world point to normalised device coordinates.
func (c *Camera) ProjectNDC(p geom.Vec3) geom.Vec3 {
	return c.ViewProj().TransformPoint(p)
}

// ToScreen maps a world point to pixel coordinates within the viewport.
// depth is the NDC z, in [-1, 1] for points between the clip planes.
func (c *Camera) ToScreen(p geom.Vec3) (sx, sy, depth float64) {
	ndc := c.ProjectNDC(p)
	sx = (ndc.X*0.5 + 0.5) * float64(c.ScreenW)
	sy = (-ndc.Y*0.5 + 0.5) * float64(c.ScreenH)
	return sx, sy, ndc.Z
}

// ScreenToPlane maps a pixel to the z=0 world plane.
func (c *Camera) ScreenToPlane(sx, sy float64) (float64, float64) {
	ndcX := sx/float64(c.ScreenW)*2 - 1
	ndcY := 1 - sy/float64(c.ScreenH)*2

	inv := c.ViewProj().Invert()
	near := inv.TransformPoint(geom.V3(ndcX, ndcY, -1))
	far := inv.TransformPoint(geom.V3(ndcX, ndcY, 1))

	dir := far.Sub(near)
	if math.Abs(dir.Z) < 1e-10 {
		return near.X, near.Y
	}
	t := -near.Z / dir.Z
	return near.X + dir.X*t, near.Y + dir.Y*t
}

// Rotate queues an orbit by a pixel drag.
func (c *Camera) Rotate(dx, dy float64) {
	if !c.EnableRotate || c.ScreenH == 0 {
		return
	}
	c.yawVel -= 2 * math.Pi * dx / float64(c.ScreenH)
	c.pitchVel += 2 * math.Pi * dy / float64(c.ScreenH)
}

// Pan queues a screen-space pan by a pixel drag.
func (c *Camera) Pan(dx, dy float64) {
	if !c.EnablePan || c.ScreenH == 0 {
		return
	}
	var perPixel float64
	if c.Projection == Perspective {
		perPixel = 2 * c.Distance * math.Tan(c.FOV*math.Pi/360) / float64(c.ScreenH)
	} else {
		perPixel = c.FrustumSize / c.Zoom / float64(c.ScreenH)
	}
	v := c.View()
	right := geom.V3(v[0], v[4], v[8])
	up := geom.V3(v[1], v[5], v[9])
	c.panVel = c.panVel.Add(right.Scale(-dx * perPixel)).Add(up.Scale(dy * perPixel))
}

// ZoomBy zooms in for positive steps and out for negative ones.
func (c *Camera) ZoomBy(steps float64) {
	if !c.EnableZoom || steps == 0 {
		return
	}
	scale := math.Pow(0.95, steps)
	if c.Projection == Perspective {
		c.Distance = clamp(c.Distance*scale, minDistance, maxDistance)
	} else {
		c.Zoom = clamp(c.Zoom/scale, minZoom, maxZoom)
	}
	c.dirty = true
}

// Update applies a share of the queued motion; called once per tick.
func (c *Camera) Update() {
	k := c.Damping
	if k <= 0 || k > 1 {
		k = 1
	}
	if c.yawVel != 0 || c.pitchVel != 0 {
		c.Yaw += c.yawVel * k
		c.Pitch = clamp(c.Pitch+c.pitchVel*k, minPitch, maxPitch)
		c.yawVel *= 1 - k
		c.pitchVel *= 1 - k
		c.dirty = true
	}
	if c.panVel != (geom.Vec3{}) {
		c.Target = c.Target.Add(c.panVel.Scale(k))
		c.panVel = c.panVel.Scale(1 - k)
		c.dirty = true
	}
	if math.Abs(c.yawVel)+math.Abs(c.pitchVel) < 1e-6 {
		c.yawVel, c.pitchVel = 0, 0
	}
	if c.panVel.Len() < 1e-6 {
		c.panVel = geom.Vec3{}
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
