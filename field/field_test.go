package field

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/liveheart/dna"
	"github.com/lixenwraith/liveheart/vmath"
)

const (
	testW  = 1280.0
	testH  = 720.0
	testDT = 1.0 / 60
)

func testDNA(s dna.Structure, p dna.Physics, scale dna.ScaleMode) *dna.DNA {
	return &dna.DNA{
		Name:          "TEST " + s.String(),
		Palette:       []dna.HSL{{H: 320, S: 100, L: 60}, {H: 190, S: 100, L: 50}, {H: 280, S: 100, L: 60}},
		Structure:     s,
		Physics:       p,
		ScaleMode:     scale,
		ParticleCount: 1800,
		ParticleSize:  1.2,
		GlitchFactor:  7,
		RotationSpeed: 0.02,
	}
}

func frame(step int, dynamic bool) Frame {
	return Frame{DT: testDT, Time: float64(step) * testDT * 0.9, Width: testW, Height: testH, Dynamic: dynamic}
}

func TestRepopulateAllocatesFreshSet(t *testing.T) {
	f := New(rand.New(rand.NewPCG(1, 1)))
	f.Emit(10, 10)
	f.Emit(20, 20)

	d := testDNA(dna.StructureContour, dna.PhysicsPulse, dna.ScaleNormal)
	f.Repopulate(d, testW, testH)

	if got := len(f.Particles()); got != d.ParticleCount {
		t.Fatalf("len(Particles) = %d, want %d", got, d.ParticleCount)
	}
	if got := len(f.Trail()); got != 0 {
		t.Errorf("len(Trail) = %d after Repopulate, want 0", got)
	}
	for i, p := range f.Particles() {
		if p.Size != 0 {
			t.Fatalf("particle %d size = %v, want 0", i, p.Size)
		}
		if p.Color != d.Palette[i%len(d.Palette)] {
			t.Fatalf("particle %d color = %v, want %v", i, p.Color, d.Palette[i%3])
		}
	}

	// A second DNA replaces rather than extends
	d2 := testDNA(dna.StructureGrid, dna.PhysicsStill, dna.ScaleTitan)
	d2.ParticleCount = 3000
	f.Repopulate(d2, testW, testH)
	if got := len(f.Particles()); got != 3000 {
		t.Errorf("len(Particles) = %d after second Repopulate, want 3000", got)
	}
	if f.DNA() != d2 {
		t.Error("DNA() not replaced")
	}
}

func TestRepopulateBaseSize(t *testing.T) {
	tests := []struct {
		name      string
		structure dna.Structure
		scale     dna.ScaleMode
		lo, hi    float64
	}{
		{"normal", dna.StructureContour, dna.ScaleNormal, 1.2, 2.2},
		{"micro", dna.StructureCloud, dna.ScaleMicro, 1.2 * 0.6, 2.2 * 0.6},
		{"grid", dna.StructureGrid, dna.ScaleMicro, 1.5, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(rand.New(rand.NewPCG(3, 4)))
			f.Repopulate(testDNA(tt.structure, dna.PhysicsStill, tt.scale), testW, testH)
			for _, p := range f.Particles() {
				if p.BaseSize < tt.lo-1e-9 || p.BaseSize > tt.hi+1e-9 {
					t.Fatalf("BaseSize = %v, want [%v, %v]", p.BaseSize, tt.lo, tt.hi)
				}
			}
		})
	}
}

func TestSizeApproachesBaseSizeMonotonically(t *testing.T) {
	for _, physics := range dna.PhysicsValues() {
		t.Run(physics.String(), func(t *testing.T) {
			f := New(rand.New(rand.NewPCG(5, 6)))
			f.Repopulate(testDNA(dna.StructureOrbit, physics, dna.ScaleNormal), testW, testH)

			prev := make([]float64, len(f.Particles()))
			for step := 1; step <= 120; step++ {
				f.Advance(frame(step, step > 60))
				for i, p := range f.Particles() {
					gap := p.BaseSize - p.Size
					if gap < 0 {
						t.Fatalf("step %d particle %d overshot: size %v > base %v", step, i, p.Size, p.BaseSize)
					}
					if p.Size < prev[i] {
						t.Fatalf("step %d particle %d shrank: %v -> %v", step, i, prev[i], p.Size)
					}
					prev[i] = p.Size
				}
			}
			for i, p := range f.Particles() {
				if p.BaseSize-p.Size > 0.01*p.BaseSize {
					t.Fatalf("particle %d size %v still far from base %v", i, p.Size, p.BaseSize)
				}
			}
		})
	}
}

// Two fields built from the same seed and fed the same frames stay identical
func TestAdvanceDeterministic(t *testing.T) {
	for _, physics := range []dna.Physics{dna.PhysicsFlow, dna.PhysicsSpin, dna.PhysicsBreathe} {
		t.Run(physics.String(), func(t *testing.T) {
			d := testDNA(dna.StructureGalaxy, physics, dna.ScaleMacro)
			if physics != dna.PhysicsSpin {
				d.Structure = dna.StructureNoise
			}
			a := New(rand.New(rand.NewPCG(11, 12)))
			b := New(rand.New(rand.NewPCG(11, 12)))
			a.Repopulate(d, testW, testH)
			b.Repopulate(d, testW, testH)

			for step := 1; step <= 90; step++ {
				a.Advance(frame(step, true))
				b.Advance(frame(step, true))
			}
			pa, pb := a.Particles(), b.Particles()
			for i := range pa {
				if pa[i].Pos != pb[i].Pos {
					t.Fatalf("particle %d diverged: %+v vs %+v", i, pa[i].Pos, pb[i].Pos)
				}
			}
		})
	}
}

func TestStillSettlesOnHome(t *testing.T) {
	f := New(rand.New(rand.NewPCG(8, 8)))
	d := testDNA(dna.StructureContour, dna.PhysicsStill, dna.ScaleNormal)
	f.Repopulate(d, testW, testH)
	for step := 1; step <= 600; step++ {
		f.Advance(frame(step, true))
	}

	scale := vmath.HeartScale(testW, testH)
	for i, p := range f.Particles() {
		pt := vmath.CurvePoint(p.T, scale, 0)
		hx, hy := testW/2+pt.X+p.Scatter.X, testH/2+pt.Y+p.Scatter.Y
		if math.Abs(p.Pos.X-hx) > 0.01 || math.Abs(p.Pos.Y-hy) > 0.01 {
			t.Fatalf("particle %d at (%v,%v), want home (%v,%v)", i, p.Pos.X, p.Pos.Y, hx, hy)
		}
		if math.Abs(p.Pos.Z-p.Depth) > 0.01 {
			t.Fatalf("particle %d depth %v, want %v", i, p.Pos.Z, p.Depth)
		}
	}
}

// Beat physics displace targets from home without accumulating drift
func TestBeatMotionDoesNotDrift(t *testing.T) {
	tests := []struct {
		physics dna.Physics
		outward bool
	}{
		{dna.PhysicsPulse, true},
		{dna.PhysicsBreathe, false},
	}
	for _, tt := range tests {
		t.Run(tt.physics.String(), func(t *testing.T) {
			f := New(rand.New(rand.NewPCG(2, 9)))
			d := testDNA(dna.StructureContour, tt.physics, dna.ScaleNormal)
			f.Repopulate(d, testW, testH)

			// sin(time*3)^4 peaks at time = π/6
			peak := Frame{DT: testDT, Time: math.Pi / 6, Width: testW, Height: testH, Dynamic: true}
			f.Advance(peak)
			p := f.Particles()[0]
			m := motionContext{scale: vmath.HeartScale(testW, testH), cx: testW / 2, cy: testH / 2}
			home := m.home(&p)

			rHome := math.Hypot(home.X-m.cx, home.Y-m.cy)
			rTarget := math.Hypot(p.Target.X-m.cx, p.Target.Y-m.cy)
			if tt.outward && rTarget <= rHome {
				t.Errorf("target radius %v, want > home %v", rTarget, rHome)
			}
			if !tt.outward && rTarget >= rHome {
				t.Errorf("target radius %v, want < home %v", rTarget, rHome)
			}

			// Many beats later, at a zero crossing the target is back home
			for step := 0; step < 1000; step++ {
				f.Advance(peak)
			}
			rest := Frame{DT: testDT, Time: math.Pi / 3, Width: testW, Height: testH, Dynamic: true}
			f.Advance(rest)
			p = f.Particles()[0]
			if math.Abs(p.Target.X-home.X) > 1e-6 || math.Abs(p.Target.Y-home.Y) > 1e-6 {
				t.Errorf("rest target (%v,%v), want home (%v,%v)", p.Target.X, p.Target.Y, home.X, home.Y)
			}
		})
	}
}

func TestSpinStructureOverridesPhysics(t *testing.T) {
	d := testDNA(dna.StructureVortex, dna.PhysicsStill, dna.ScaleNormal)
	f := New(rand.New(rand.NewPCG(1, 2)))
	f.Repopulate(d, testW, testH)
	f.Advance(Frame{DT: testDT, Time: 10, Width: testW, Height: testH, Dynamic: true})

	p := f.Particles()[100]
	pt := vmath.CurvePoint(p.T, vmath.HeartScale(testW, testH), 10*d.RotationSpeed)
	if math.Abs(p.Target.Z-pt.Z) > 1e-9 {
		t.Errorf("target Z = %v, want rotated curve depth %v", p.Target.Z, pt.Z)
	}
}

func TestFlowAdvancesCurveParameter(t *testing.T) {
	f := New(rand.New(rand.NewPCG(1, 3)))
	f.Repopulate(testDNA(dna.StructureRain, dna.PhysicsFlow, dna.ScaleNormal), testW, testH)
	before := f.Particles()[7].T
	f.Advance(frame(1, true))
	after := f.Particles()[7]
	if want := math.Mod(before+after.Speed, 2*math.Pi); math.Abs(after.T-want) > 1e-9 {
		t.Errorf("T = %v after one frame, want %v", after.T, want)
	}

	// Crystallizing frames keep T fixed
	f.Advance(frame(2, false))
	if f.Particles()[7].T != after.T {
		t.Errorf("T moved while not dynamic")
	}
}

func TestFlowCurveParameterWraps(t *testing.T) {
	f := New(rand.New(rand.NewPCG(2, 9)))
	f.Repopulate(testDNA(dna.StructureRain, dna.PhysicsFlow, dna.ScaleNormal), testW, testH)
	for step := 1; step <= 3000; step++ {
		f.Advance(frame(step, true))
	}
	for i, p := range f.Particles() {
		if p.T < 0 || p.T >= 2*math.Pi {
			t.Fatalf("particle %d T = %v, want within [0, 2π)", i, p.T)
		}
	}
}

func TestTrailShrinkFollowsDT(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"half frame", testDT / 2},
		{"one frame", testDT},
		{"three frames", 3 * testDT},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(rand.New(rand.NewPCG(6, 6)))
			f.Emit(100, 100)
			before := f.Trail()[0].Size
			f.Advance(Frame{DT: tt.dt, Width: testW, Height: testH})
			want := before * math.Pow(0.94, tt.dt*60)
			if got := f.Trail()[0].Size; math.Abs(got-want) > 1e-9 {
				t.Errorf("size after dt %v = %v, want %v", tt.dt, got, want)
			}
		})
	}
}

func TestTrailDecaysAndPrunes(t *testing.T) {
	f := New(rand.New(rand.NewPCG(4, 4)))
	for i := 0; i < 10; i++ {
		f.Emit(float64(i*10), 50)
	}
	if got := len(f.Trail()); got != 10 {
		t.Fatalf("len(Trail) = %d, want 10", got)
	}
	first := f.Trail()[0]
	if first.Alpha != 0.6 || first.Size < 1 || first.Size >= 5 {
		t.Errorf("trail particle alpha %v size %v, want 0.6 and [1,5)", first.Alpha, first.Size)
	}

	f.Advance(frame(1, false))
	got := f.Trail()[0]
	if math.Abs(got.Size-first.Size*0.94) > 1e-9 {
		t.Errorf("size after one frame = %v, want %v", got.Size, first.Size*0.94)
	}
	if math.Abs(got.Alpha-0.58) > 1e-9 {
		t.Errorf("alpha after one frame = %v, want 0.58", got.Alpha)
	}

	// Alpha reaches the cutoff within 30 frames
	for step := 2; step <= 31; step++ {
		f.Advance(frame(step, false))
	}
	if got := len(f.Trail()); got != 0 {
		t.Errorf("len(Trail) = %d after decay, want 0", got)
	}
}

func TestAdvanceIgnoresNonPositiveDT(t *testing.T) {
	f := New(rand.New(rand.NewPCG(1, 1)))
	f.Repopulate(testDNA(dna.StructureContour, dna.PhysicsPulse, dna.ScaleNormal), testW, testH)
	before := f.Particles()[0]
	f.Advance(Frame{DT: 0, Time: 1, Width: testW, Height: testH, Dynamic: true})
	if f.Particles()[0] != before {
		t.Error("particle changed on zero dt")
	}
}

func TestDisperseFlingsOutwardAndFades(t *testing.T) {
	f := New(rand.New(rand.NewPCG(9, 9)))
	f.Disperse(testW, testH)
	if f.Dispersed() {
		t.Fatal("Disperse on an empty field marked it dispersed")
	}

	d := testDNA(dna.StructureContour, dna.PhysicsStill, dna.ScaleNormal)
	f.Repopulate(d, testW, testH)
	for i := range 90 {
		f.Advance(frame(i, true))
	}
	before := append([]Particle(nil), f.Particles()...)

	f.Disperse(testW, testH)
	if !f.Dispersed() {
		t.Fatal("Dispersed() = false after Disperse")
	}
	f.Advance(frame(90, true))

	cx, cy := testW/2, testH/2
	for i, p := range f.Particles() {
		b := before[i]
		r0 := math.Hypot(b.Pos.X-cx, b.Pos.Y-cy)
		if r0 < 50 {
			continue
		}
		// Jitter is at most half the span on each axis, below the minimum outward speed
		if r1 := math.Hypot(p.Pos.X-cx, p.Pos.Y-cy); r1 <= r0 {
			t.Fatalf("particle %d radius %v -> %v, want outward", i, r0, r1)
		}
		if p.Alpha >= b.Alpha || p.Size >= b.Size {
			t.Fatalf("particle %d alpha %v -> %v size %v -> %v, want both to shrink", i, b.Alpha, p.Alpha, b.Size, p.Size)
		}
	}

	f.Repopulate(d, testW, testH)
	if f.Dispersed() {
		t.Error("Repopulate kept the dispersed flag")
	}
}
