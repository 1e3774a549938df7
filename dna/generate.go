package dna

import (
	"math/rand/v2"
)

// scaleWeights gives NORMAL double weight
var scaleWeights = []ScaleMode{ScaleMicro, ScaleNormal, ScaleNormal, ScaleMacro, ScaleTitan}

// forcedPhysics maps structures that mandate a physics value; the mandate replaces the random pick
var forcedPhysics = map[Structure]Physics{
	StructureGrid:   PhysicsStill,
	StructureAtom:   PhysicsSpin,
	StructureGalaxy: PhysicsSpin,
	StructureVortex: PhysicsSpin,
	StructureRain:   PhysicsFlow,
}

const (
	countDefault = 1800
	countTitan   = 3000
)

// ResolvePhysics applies the structure constraint table to a candidate physics value
func ResolvePhysics(s Structure, candidate Physics) Physics {
	if forced, ok := forcedPhysics[s]; ok {
		return forced
	}
	return candidate
}

// Generate draws a new DNA from r; total, never fails
func Generate(r *rand.Rand) DNA {
	p := palettes[r.IntN(len(palettes))]
	scale := scaleWeights[r.IntN(len(scaleWeights))]
	structure := Structure(r.IntN(int(structureCount)))
	physics := ResolvePhysics(structure, Physics(r.IntN(int(physicsCount))))

	count := countDefault
	if scale == ScaleTitan {
		count = countTitan
	}

	colors := make([]HSL, len(p.Colors))
	copy(colors, p.Colors)

	return DNA{
		Name:          p.Name + " " + structure.String(),
		Palette:       colors,
		Structure:     structure,
		Physics:       physics,
		ScaleMode:     scale,
		ParticleCount: count,
		ParticleSize:  r.Float64()*2 + 0.5,
		GlitchFactor:  r.Float64() * 20,
		RotationSpeed: (r.Float64() - 0.5) * 0.05,
	}
}
