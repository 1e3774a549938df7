package field

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/liveheart/dna"
	"github.com/lixenwraith/liveheart/parameter"
	"github.com/lixenwraith/liveheart/vmath"
)

// Particle is one simulated point in surface coordinates; Z is synthetic depth
type Particle struct {
	Pos    vmath.Vec3F
	Vel    vmath.Vec3F
	Target vmath.Vec3F

	Size     float64
	BaseSize float64
	Color    dna.HSL
	Alpha    float64

	// T is the curve parameter; Scatter is the xy offset from the curve and Depth the home depth
	T       float64
	Scatter vmath.Vec3F
	Depth   float64

	Offset        float64
	Speed         float64
	SparkleOffset float64
}

// newParticle seeds the per-particle constants at a random spot on a w×h surface
func newParticle(r *rand.Rand, w, h float64) Particle {
	return Particle{
		Pos: vmath.Vec3F{X: r.Float64() * w, Y: r.Float64() * h},
		Vel: vmath.Vec3F{
			X: vmath.Jitter(r, parameter.InitialDriftSpan),
			Y: vmath.Jitter(r, parameter.InitialDriftSpan),
		},
		Alpha:         1,
		T:             r.Float64() * 2 * math.Pi,
		Offset:        vmath.Jitter(r, parameter.OffsetSpan),
		Speed:         parameter.SpeedMin + r.Float64()*parameter.SpeedSpan,
		SparkleOffset: r.Float64() * parameter.SparkleSpan,
	}
}

var trailColor = dna.HSL{H: parameter.TrailHue, S: parameter.TrailSaturation * 100, L: parameter.TrailLightness * 100}

// Alive reports whether a particle is still worth drawing
func (p *Particle) Alive() bool {
	return p.Size > parameter.TrailMinSize && p.Alpha > parameter.TrailMinAlpha
}
