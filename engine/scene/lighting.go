package scene

import (
	"math"

	"github.com/1siamBot/solids/engine/geom"
)

// DirectionalLight shines from Position towards the origin.
type DirectionalLight struct {
	Position  geom.Vec3
	Color     geom.Color3
	Intensity float64
}

// AmbientLight provides fill lighting
type AmbientLight struct {
	Color     geom.Color3
	Intensity float64
}

// LightingSetup contains the scene lighting
type LightingSetup struct {
	Ambient AmbientLight
	Lights  []DirectionalLight
}

// DefaultLighting is a grey ambient fill plus one white light at (5,5,5).
func DefaultLighting() LightingSetup {
	return LightingSetup{
		Ambient: AmbientLight{Color: geom.Hex(0x404040), Intensity: 3},
		Lights: []DirectionalLight{
			{Position: geom.V3(5, 5, 5), Color: geom.Color3{R: 1, G: 1, B: 1}, Intensity: 1},
		},
	}
}

// ComputeLighting calculates the lit colour of a surface with the given
// normal. Components are clamped to [0,1].
func (ls *LightingSetup) ComputeLighting(normal geom.Vec3, base geom.Color3) geom.Color3 {
	result := base.Mul(ls.Ambient.Color).Scale(ls.Ambient.Intensity)
	for _, l := range ls.Lights {
		ndotl := math.Max(0, normal.Dot(l.Position.Normalize()))
		result = result.Add(base.Mul(l.Color).Scale(ndotl * l.Intensity))
	}
	result.R = math.Min(result.R, 1.0)
	result.G = math.Min(result.G, 1.0)
	result.B = math.Min(result.B, 1.0)
	return result
}
