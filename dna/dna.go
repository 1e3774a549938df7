// Package dna describes one artifact's generation parameters and generates them
package dna

import (
	"fmt"

	"github.com/lixenwraith/liveheart/parameter"
)

// Structure is the geometric arrangement particles settle into
type Structure uint8

const (
	StructureContour Structure = iota
	StructureCloud
	StructureGrid
	StructureOrbit
	StructureRain
	StructureAtom
	StructureSpiral
	StructureNoise
	StructureGalaxy
	StructureVortex
	structureCount
)

var structureNames = [structureCount]string{
	"CONTOUR", "CLOUD", "GRID", "ORBIT", "RAIN", "ATOM", "SPIRAL", "NOISE", "GALAXY", "VORTEX",
}

// Physics is the per-frame motion law applied to artifact particles
type Physics uint8

const (
	PhysicsPulse Physics = iota
	PhysicsFlow
	PhysicsVibrate
	PhysicsStill
	PhysicsSpin
	PhysicsImplode
	PhysicsBreathe
	physicsCount
)

var physicsNames = [physicsCount]string{
	"PULSE", "FLOW", "VIBRATE", "STILL", "SPIN", "IMPLODE", "BREATHE",
}

// ScaleMode sizes the heart and its depth relative to the surface
type ScaleMode uint8

const (
	ScaleMicro ScaleMode = iota
	ScaleNormal
	ScaleMacro
	ScaleTitan
	scaleCount
)

var scaleNames = [scaleCount]string{"MICRO", "NORMAL", "MACRO", "TITAN"}

// Bounds accepted for stored and replayed DNA
const (
	MinParticleCount = 100
	MaxParticleCount = 5000
	MaxPaletteColors = 16
)

// ClampParticleCount limits n to [MinParticleCount, MaxParticleCount]
func ClampParticleCount(n int) int {
	return min(max(n, MinParticleCount), MaxParticleCount)
}

// DNA is immutable after generation; a restart replaces it wholesale
type DNA struct {
	Name          string    `json:"name"`
	Palette       []HSL     `json:"palette"`
	Structure     Structure `json:"structure"`
	Physics       Physics   `json:"physics"`
	ScaleMode     ScaleMode `json:"scaleMode"`
	ParticleCount int       `json:"particleCount"`
	ParticleSize  float64   `json:"particleSize"`
	GlitchFactor  float64   `json:"glitchFactor"`
	RotationSpeed float64   `json:"rotationSpeed"`
}

// Label is the short descriptor shown under the artifact
func (d *DNA) Label() string {
	return d.ScaleMode.String() + " // " + d.Physics.String()
}

// PaletteName recovers the palette name from the DNA name
func (d *DNA) PaletteName() string {
	suffix := " " + d.Structure.String()
	if len(d.Name) > len(suffix) && d.Name[len(d.Name)-len(suffix):] == suffix {
		return d.Name[:len(d.Name)-len(suffix)]
	}
	return d.Name
}

// Validate checks a decoded DNA before it is persisted or rendered
func (d *DNA) Validate() error {
	if d.Structure >= structureCount {
		return fmt.Errorf("structure %d out of range", d.Structure)
	}
	if d.Physics >= physicsCount {
		return fmt.Errorf("physics %d out of range", d.Physics)
	}
	if d.ScaleMode >= scaleCount {
		return fmt.Errorf("scale mode %d out of range", d.ScaleMode)
	}
	if forced := ResolvePhysics(d.Structure, d.Physics); forced != d.Physics {
		return fmt.Errorf("structure %s requires physics %s, got %s", d.Structure, forced, d.Physics)
	}
	if len(d.Palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if len(d.Palette) > MaxPaletteColors {
		return fmt.Errorf("palette has %d colors, max %d", len(d.Palette), MaxPaletteColors)
	}
	if d.ParticleCount <= 0 || d.ParticleCount > MaxParticleCount {
		return fmt.Errorf("particle count %d outside (0, %d]", d.ParticleCount, MaxParticleCount)
	}
	return nil
}

func (s Structure) String() string {
	if s < structureCount {
		return structureNames[s]
	}
	return fmt.Sprintf("Structure(%d)", s)
}

func (p Physics) String() string {
	if p < physicsCount {
		return physicsNames[p]
	}
	return fmt.Sprintf("Physics(%d)", p)
}

func (m ScaleMode) String() string {
	if m < scaleCount {
		return scaleNames[m]
	}
	return fmt.Sprintf("ScaleMode(%d)", m)
}

// CurveScale multiplies the base heart scale
func (m ScaleMode) CurveScale() float64 {
	switch m {
	case ScaleMicro:
		return parameter.ScaleMicro
	case ScaleMacro:
		return parameter.ScaleMacro
	case ScaleTitan:
		return parameter.ScaleTitan
	default:
		return parameter.ScaleNormal
	}
}

// DepthScale multiplies the synthetic depth jitter
func (m ScaleMode) DepthScale() float64 {
	switch m {
	case ScaleMicro:
		return parameter.DepthMicro
	case ScaleMacro:
		return parameter.DepthMacro
	case ScaleTitan:
		return parameter.DepthTitan
	default:
		return parameter.DepthNormal
	}
}

// Spins reports whether the structure forces rotating heart geometry
func (s Structure) Spins() bool {
	return s == StructureAtom || s == StructureGalaxy || s == StructureVortex
}

// Orbits reports whether particles circle their base point
func (s Structure) Orbits() bool {
	return s == StructureAtom || s == StructureGalaxy
}

// Structures lists every structure in declaration order
func Structures() []Structure {
	out := make([]Structure, structureCount)
	for i := range out {
		out[i] = Structure(i)
	}
	return out
}

// PhysicsValues lists every physics value in declaration order
func PhysicsValues() []Physics {
	out := make([]Physics, physicsCount)
	for i := range out {
		out[i] = Physics(i)
	}
	return out
}

// ScaleModes lists every scale mode in declaration order
func ScaleModes() []ScaleMode {
	out := make([]ScaleMode, scaleCount)
	for i := range out {
		out[i] = ScaleMode(i)
	}
	return out
}
