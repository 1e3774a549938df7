// Package field owns the particle collection and its per-frame integration
package field

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/liveheart/dna"
	"github.com/lixenwraith/liveheart/parameter"
	"github.com/lixenwraith/liveheart/vmath"
)

// Frame is one advance step
type Frame struct {
	DT     float64 // seconds since last frame
	Time   float64 // animation time
	Width  float64
	Height float64
	// Dynamic enables the DNA physics dispatch; otherwise particles settle on their home placement
	Dynamic bool
}

// Field holds either decaying trail particles or one DNA's full particle set
type Field struct {
	rng       *rand.Rand
	dna       *dna.DNA
	particles []Particle
	trail     []Particle
	motion    motion
	ease      float64
	dispersed bool
}

// New creates an empty field drawing per-particle randomness from r
func New(r *rand.Rand) *Field {
	return &Field{rng: r}
}

// Particles returns the artifact particle set; callers must not retain it across Repopulate
func (f *Field) Particles() []Particle {
	return f.particles
}

// Trail returns live trail particles
func (f *Field) Trail() []Particle {
	return f.trail
}

// DNA returns the DNA the field was populated from, nil before the first Repopulate
func (f *Field) DNA() *dna.DNA {
	return f.dna
}

// Len counts every particle in the field
func (f *Field) Len() int {
	return len(f.particles) + len(f.trail)
}

// Emit appends a trail particle at a sample point
func (f *Field) Emit(x, y float64) {
	r := f.rng
	f.trail = append(f.trail, Particle{
		Pos: vmath.Vec3F{X: x, Y: y},
		Vel: vmath.Vec3F{
			X: vmath.Jitter(r, parameter.TrailDriftSpan),
			Y: vmath.Jitter(r, parameter.TrailDriftSpan),
		},
		Size:     r.Float64()*parameter.TrailSizeSpan + parameter.TrailSizeMin,
		Color:    trailColor,
		Alpha:    parameter.TrailAlpha,
	})
}

// Repopulate discards every particle and allocates d.ParticleCount new ones for a w×h surface
func (f *Field) Repopulate(d *dna.DNA, w, h float64) {
	r := f.rng
	n := d.ParticleCount
	ps := make([]Particle, n)

	scatter := scatterFor(d.Structure)
	depth := d.ScaleMode.DepthScale()
	scale := vmath.HeartScale(w, h) * d.ScaleMode.CurveScale()
	cx, cy := w/2, h/2

	for i := range ps {
		p := newParticle(r, w, h)
		p.T = 2 * math.Pi * float64(i) / float64(n)
		if d.Structure == dna.StructureSpiral {
			p.T += float64(i) * parameter.SpiralStep
		}
		p.Scatter = vmath.Vec3F{X: vmath.Jitter(r, scatter), Y: vmath.Jitter(r, scatter)}

		z := vmath.Jitter(r, parameter.DepthSpan) * depth
		p.Pos.Z = z
		p.Depth = z + vmath.Jitter(r, parameter.DepthTargetSpan)

		pt := vmath.CurvePoint(p.T, scale, 0)
		p.Target = vmath.Vec3F{X: cx + pt.X + p.Scatter.X, Y: cy + pt.Y + p.Scatter.Y, Z: p.Depth}

		p.Color = d.Palette[i%len(d.Palette)]
		p.BaseSize = d.ParticleSize + r.Float64()
		if d.ScaleMode == dna.ScaleMicro {
			p.BaseSize *= parameter.SizeMicro
		}
		if d.Structure == dna.StructureGrid {
			p.BaseSize = parameter.GridBaseSize
		}
		p.Size = 0
		ps[i] = p
	}

	f.dna = d
	f.particles = ps
	f.trail = nil
	f.motion = motionFor(d)
	f.ease = easeFor(d.Physics)
	f.dispersed = false
}

// Disperse flings every artifact particle away from the centre of a w×h surface
// From then on Advance drifts and fades particles instead of easing them to targets
func (f *Field) Disperse(w, h float64) {
	if f.dna == nil {
		return
	}
	r := f.rng
	cx, cy := w/2, h/2
	extra := f.dna.GlitchFactor * parameter.DisperseGlitch
	for i := range f.particles {
		p := &f.particles[i]
		dx, dy := p.Pos.X-cx, p.Pos.Y-cy
		dist := math.Max(1, math.Hypot(dx, dy))
		v := parameter.DisperseSpeedMin + r.Float64()*parameter.DisperseSpeedSpan + extra
		p.Vel = vmath.Vec3F{
			X: dx/dist*v + vmath.Jitter(r, parameter.DisperseJitter),
			Y: dy/dist*v + vmath.Jitter(r, parameter.DisperseJitter),
			Z: vmath.Jitter(r, parameter.DisperseDepthSpan),
		}
	}
	f.dispersed = true
}

// Dispersed reports whether Disperse has run since the last Repopulate
func (f *Field) Dispersed() bool {
	return f.dispersed
}

// Advance integrates one frame
func (f *Field) Advance(fr Frame) {
	if fr.DT <= 0 {
		return
	}
	frames := fr.DT * parameter.ReferenceFPS
	f.advanceTrail(fr.DT, frames)

	if f.dna == nil || len(f.particles) == 0 {
		return
	}
	if f.dispersed {
		f.advanceDisperse(fr.DT, frames)
		return
	}

	m := motionContext{
		dna:    f.dna,
		rng:    f.rng,
		time:   fr.Time,
		frames: frames,
		scale:  vmath.HeartScale(fr.Width, fr.Height) * f.dna.ScaleMode.CurveScale(),
		cx:     fr.Width / 2,
		cy:     fr.Height / 2,
	}
	s := math.Sin(fr.Time * parameter.BeatFrequency)
	m.beat = s * s * s * s

	update := homeMotion
	if fr.Dynamic {
		update = f.motion
	}

	grow := vmath.FrameFraction(parameter.GrowthRate, fr.DT, parameter.ReferenceFPS)
	ease := vmath.FrameFraction(f.ease, fr.DT, parameter.ReferenceFPS)
	easeZ := vmath.FrameFraction(f.ease*parameter.DepthEaseRatio, fr.DT, parameter.ReferenceFPS)

	for i := range f.particles {
		p := &f.particles[i]
		if p.Size < p.BaseSize {
			p.Size = math.Min(p.BaseSize, p.Size+(p.BaseSize-p.Size)*grow)
		}

		update(p, &m)
		p.Pos = vmath.V3FLerp(p.Pos, p.Target, ease, easeZ)

		if math.Sin(fr.Time*parameter.SparkleFrequency+p.SparkleOffset) > parameter.SparkleThreshold {
			p.Alpha = 1
		} else {
			p.Alpha = parameter.SparkleAlphaBase
		}
	}
}

func (f *Field) advanceTrail(dt, frames float64) {
	if len(f.trail) == 0 {
		return
	}
	shrink := vmath.FramePow(parameter.TrailShrink, dt, parameter.ReferenceFPS)
	live := f.trail[:0]
	for _, p := range f.trail {
		p.Pos.X += p.Vel.X * frames
		p.Pos.Y += p.Vel.Y * frames
		p.Size *= shrink
		p.Alpha -= parameter.TrailFade * frames
		if p.Alive() {
			live = append(live, p)
		}
	}
	f.trail = live
}

func (f *Field) advanceDisperse(dt, frames float64) {
	fade := vmath.FramePow(parameter.DisperseFade, dt, parameter.ReferenceFPS)
	shrink := vmath.FramePow(parameter.DisperseShrink, dt, parameter.ReferenceFPS)
	for i := range f.particles {
		p := &f.particles[i]
		p.Pos.X += p.Vel.X * parameter.DisperseGainXY * frames
		p.Pos.Y += p.Vel.Y * parameter.DisperseGainXY * frames
		p.Pos.Z += p.Vel.Z * parameter.DisperseGainZ * frames
		p.Alpha *= fade
		p.Size *= shrink
	}
}
