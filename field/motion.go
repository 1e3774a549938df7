package field

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/liveheart/dna"
	"github.com/lixenwraith/liveheart/parameter"
	"github.com/lixenwraith/liveheart/vmath"
)

// motionContext carries the per-frame values shared by every particle update
type motionContext struct {
	dna    *dna.DNA
	rng    *rand.Rand
	time   float64
	frames float64 // dt in reference frames
	scale  float64
	cx, cy float64
	beat   float64
}

// motion recomputes a particle's target for the current frame
type motion func(p *Particle, m *motionContext)

// home is the particle's resting placement on the current surface
func (m *motionContext) home(p *Particle) vmath.Vec3F {
	pt := vmath.CurvePoint(p.T, m.scale, 0)
	return vmath.Vec3F{
		X: m.cx + pt.X + p.Scatter.X,
		Y: m.cy + pt.Y + p.Scatter.Y,
		Z: p.Depth,
	}
}

func homeMotion(p *Particle, m *motionContext) {
	p.Target = m.home(p)
}

func spinMotion(p *Particle, m *motionContext) {
	pt := vmath.CurvePoint(p.T, m.scale, m.time*m.dna.RotationSpeed)
	x, y := m.cx+pt.X, m.cy+pt.Y
	if m.dna.Structure.Orbits() {
		r := parameter.OrbitRadiusBase + math.Sin(m.time*2+p.T)*parameter.OrbitRadiusSwing
		a := m.time*parameter.OrbitAngularRate + p.Offset
		x += math.Cos(a) * r
		y += math.Sin(a) * r
	}
	g := m.dna.GlitchFactor
	p.Target = vmath.Vec3F{
		X: x + math.Cos(m.time+p.Offset)*g,
		Y: y + math.Sin(m.time+p.Offset)*g,
		Z: pt.Z,
	}
}

func flowMotion(p *Particle, m *motionContext) {
	p.T = math.Mod(p.T+p.Speed*m.frames, 2*math.Pi)
	pt := vmath.CurvePoint(p.T, m.scale, 0)
	r := m.rng
	g := m.dna.GlitchFactor
	p.Target = vmath.Vec3F{
		X: m.cx + pt.X + vmath.Jitter(r, g),
		Y: m.cy + pt.Y + vmath.Jitter(r, g),
		Z: pt.Z,
	}
}

// beatMotion displaces the home placement radially by amp×beat; positive amp pushes outward
func beatMotion(amp float64) motion {
	return func(p *Particle, m *motionContext) {
		h := m.home(p)
		k := amp * m.beat
		p.Target = vmath.Vec3F{
			X: h.X + (h.X-m.cx)*k,
			Y: h.Y + (h.Y-m.cy)*k,
			Z: h.Z,
		}
	}
}

var motions = map[dna.Physics]motion{
	dna.PhysicsPulse:   beatMotion(parameter.PulseAmplitude),
	dna.PhysicsBreathe: beatMotion(-parameter.BreatheAmplitude),
	dna.PhysicsFlow:    flowMotion,
	dna.PhysicsSpin:    spinMotion,
	dna.PhysicsVibrate: homeMotion,
	dna.PhysicsStill:   homeMotion,
	dna.PhysicsImplode: homeMotion,
}

var eases = map[dna.Physics]float64{
	dna.PhysicsImplode: parameter.EaseImplode,
	dna.PhysicsStill:   parameter.EaseStill,
}

// motionFor resolves the update for a (structure, physics) pair; spinning structures override physics
func motionFor(d *dna.DNA) motion {
	if d.Structure.Spins() {
		return spinMotion
	}
	if m, ok := motions[d.Physics]; ok {
		return m
	}
	return homeMotion
}

func easeFor(p dna.Physics) float64 {
	if e, ok := eases[p]; ok {
		return e
	}
	return parameter.EaseDefault
}

func scatterFor(s dna.Structure) float64 {
	switch s {
	case dna.StructureCloud:
		return parameter.ScatterCloud
	case dna.StructureNoise:
		return parameter.ScatterNoise
	case dna.StructureGalaxy:
		return parameter.ScatterGalaxy
	default:
		return parameter.ScatterDefault
	}
}
