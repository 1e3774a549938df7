// Package engine drives one LiveHeart session: the phase machine, its deadline and the particle arena
package engine

import (
	"log"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/liveheart/dna"
	"github.com/lixenwraith/liveheart/event"
	"github.com/lixenwraith/liveheart/field"
	"github.com/lixenwraith/liveheart/input"
	"github.com/lixenwraith/liveheart/parameter"
	"github.com/lixenwraith/liveheart/status"
)

// maxFrameDT caps one frame's integration step after stalls
const maxFrameDT = 0.1

// Config tunes a session
type Config struct {
	Threshold        float64       // collection distance, surface units
	CrystallizeDelay time.Duration // crystallizing → artifact
}

// DefaultConfig returns the reference tuning
func DefaultConfig() Config {
	return Config{
		Threshold:        parameter.CollectionThreshold,
		CrystallizeDelay: parameter.CrystallizeDelay,
	}
}

// arena is everything a restart replaces; it is swapped as one pointer
type arena struct {
	phase      Phase
	phaseStart time.Time
	acc        *input.Accumulator
	field      *field.Field
	dna        *dna.DNA
	pending    *Scheduled // crystallizing → artifact
	gen        uint64
}

// Session owns all mutable simulation state for one host
// Sample, Tick, Restart and Save are called from the host's single frame goroutine
type Session struct {
	cfg    Config
	clock  TimeProvider
	rng    *rand.Rand
	sched  *Scheduler
	events *event.Queue
	a      *arena

	width, height float64
	animTime      float64
	lastTick      time.Time
	frames        int64

	saveBusy atomic.Bool
	gw       Gateway

	stat sessionMetrics
}

type sessionMetrics struct {
	phase     *status.AtomicString
	dna       *status.AtomicString
	gen       *atomic.Int64
	progress  *status.AtomicFloat
	distance  *status.AtomicFloat
	stops     *atomic.Int64
	particles *atomic.Int64
	frames    *atomic.Int64
	frameMs   *status.AtomicFloat
	saves     *atomic.Int64
	saveErrs  *atomic.Int64
	slug      *status.AtomicString
}

// Option configures a Session
type Option func(*Session)

// WithGateway sets the save backend
func WithGateway(gw Gateway) Option {
	return func(s *Session) { s.gw = gw }
}

// WithEvents routes notifications to q instead of a private queue
func WithEvents(q *event.Queue) Option {
	return func(s *Session) { s.events = q }
}

// WithRegistry publishes diagnostics into reg
func WithRegistry(reg *status.Registry) Option {
	return func(s *Session) { s.stat = newSessionMetrics(reg) }
}

// NewSession creates an idle session; r seeds DNA and particle randomness
func NewSession(cfg Config, clock TimeProvider, r *rand.Rand, opts ...Option) *Session {
	if cfg.Threshold <= 0 {
		cfg.Threshold = parameter.CollectionThreshold
	}
	if cfg.CrystallizeDelay <= 0 {
		cfg.CrystallizeDelay = parameter.CrystallizeDelay
	}
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}

	s := &Session{
		cfg:   cfg,
		clock: clock,
		rng:   r,
		sched: NewScheduler(),
		stat:  newSessionMetrics(status.NewRegistry()),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.events == nil {
		s.events = event.NewQueue()
	}

	now := clock.Now()
	s.lastTick = now
	s.a = s.newArena(PhaseIdle, now)
	s.publishArena()
	return s
}

func newSessionMetrics(reg *status.Registry) sessionMetrics {
	return sessionMetrics{
		phase:     reg.Strings.Get(status.KeyPhase),
		dna:       reg.Strings.Get(status.KeyDNA),
		gen:       reg.Ints.Get(status.KeyGeneration),
		progress:  reg.Floats.Get(status.KeyProgress),
		distance:  reg.Floats.Get(status.KeyDistance),
		stops:     reg.Ints.Get(status.KeyStops),
		particles: reg.Ints.Get(status.KeyParticles),
		frames:    reg.Ints.Get(status.KeyFrames),
		frameMs:   reg.Floats.Get(status.KeyFrameMs),
		saves:     reg.Ints.Get(status.KeySaves),
		saveErrs:  reg.Ints.Get(status.KeySaveErrors),
		slug:      reg.Strings.Get(status.KeyLastSlug),
	}
}

func (s *Session) newArena(phase Phase, now time.Time) *arena {
	return &arena{
		phase:      phase,
		phaseStart: now,
		acc:        input.NewAccumulator(s.cfg.Threshold),
		field:      field.New(s.rng),
		gen:        s.sched.Generation(),
	}
}

// Events returns the notification queue the host drains each frame
func (s *Session) Events() *event.Queue {
	return s.events
}

// Resize records the surface size; geometry picks it up on the next Tick
func (s *Session) Resize(w, h float64) {
	s.width, s.height = w, h
}

// Size returns the last recorded surface size
func (s *Session) Size() (w, h float64) {
	return s.width, s.height
}

// Phase returns the current phase
func (s *Session) Phase() Phase {
	return s.a.phase
}

// Snapshot returns a consistent view of phase state
func (s *Session) Snapshot() PhaseSnapshot {
	a := s.a
	now := s.clock.Now()
	return PhaseSnapshot{
		Phase:     a.phase,
		StartTime: a.phaseStart,
		Duration:  now.Sub(a.phaseStart),
		Progress:  a.acc.Progress(),
		Gen:       a.gen,
	}
}

// DNA returns the current artifact DNA, nil outside crystallizing and artifact
func (s *Session) DNA() *dna.DNA {
	return s.a.dna
}

// Field returns the current particle field; it is replaced on restart
func (s *Session) Field() *field.Field {
	return s.a.field
}

// Accumulator returns the current collection accumulator
func (s *Session) Accumulator() *input.Accumulator {
	return s.a.acc
}

// Progress returns collection progress in percent
func (s *Session) Progress() float64 {
	return s.a.acc.Progress()
}

// Time returns animation time
func (s *Session) Time() float64 {
	return s.animTime
}

// PendingTransition reports whether the crystallize deadline is outstanding
func (s *Session) PendingTransition() bool {
	return s.a.pending.Pending()
}

// Sample feeds one pointer position; ignored outside idle and collecting
func (s *Session) Sample(x, y float64) input.Result {
	a := s.a
	if !a.phase.AcceptsInput() {
		return input.Result{Progress: a.acc.Progress()}
	}

	res := a.acc.Sample(x, y)
	if res.Started && a.phase == PhaseIdle {
		s.transition(a, PhaseCollecting)
	}
	if res.Moved {
		a.field.Emit(res.X, res.Y)
		s.events.Push(event.SessionEvent{Type: event.EventCollectTick, Payload: &event.ProgressPayload{Progress: res.Progress}})
	}
	if res.Complete {
		s.crystallize(a)
	}

	s.stat.progress.Set(res.Progress)
	s.stat.distance.Set(a.acc.Total())
	s.stat.stops.Store(int64(a.acc.Stops()))
	return res
}

// crystallize runs synchronously on the completing sample
func (s *Session) crystallize(a *arena) {
	if !s.transition(a, PhaseCrystallizing) {
		return
	}

	d := dna.Generate(s.rng)
	a.dna = &d
	a.field.Repopulate(a.dna, s.width, s.height)

	deadline := a.phaseStart.Add(s.cfg.CrystallizeDelay)
	a.pending = s.sched.At(deadline, func() {
		// Generation already checked by the scheduler; phase guards a manual transition
		if s.a == a && a.phase == PhaseCrystallizing {
			s.transition(a, PhaseArtifact)
		}
	})

	log.Printf("crystallize: %s (%s, %d particles)", d.Name, d.Label(), d.ParticleCount)
	s.events.Push(event.SessionEvent{Type: event.EventCrystallize, Payload: &event.CrystallizePayload{
		Name:  d.Name,
		Label: d.Label(),
		Count: d.ParticleCount,
	}})
	s.stat.dna.Store(d.Name)
	s.stat.particles.Store(int64(a.field.Len()))
}

func (s *Session) transition(a *arena, to Phase) bool {
	from := a.phase
	if !CanTransition(from, to) {
		log.Printf("phase: rejected %s -> %s", from, to)
		return false
	}
	a.phase = to
	a.phaseStart = s.clock.Now()
	s.stat.phase.Store(to.String())
	log.Printf("phase: %s -> %s (gen %d)", from, to, a.gen)
	s.events.Push(event.SessionEvent{Type: event.EventPhaseChange, Payload: &event.PhasePayload{From: from.String(), To: to.String()}})
	return true
}

// Tick fires due deadlines and advances the field by the time since the previous Tick
// Returns the integrated dt in seconds
func (s *Session) Tick() float64 {
	now := s.clock.Now()
	dt := now.Sub(s.lastTick).Seconds()
	s.lastTick = now
	if dt < 0 {
		dt = 0
	}
	if dt > maxFrameDT {
		dt = maxFrameDT
	}

	s.sched.Poll(now)

	a := s.a
	s.animTime += dt * parameter.TimeRate
	a.field.Advance(field.Frame{
		DT:      dt,
		Time:    s.animTime,
		Width:   s.width,
		Height:  s.height,
		Dynamic: a.phase == PhaseArtifact,
	})

	s.frames++
	s.stat.frames.Store(s.frames)
	s.stat.frameMs.Smooth(dt*1000, 0.1)
	s.stat.particles.Store(int64(a.field.Len()))
	return dt
}

// Restart discards the artifact and starts a fresh collecting session
// Valid from crystallizing and artifact; any pending deadline is cancelled before the swap
func (s *Session) Restart() error {
	old := s.a
	if !CanTransition(old.phase, PhaseCollecting) || old.phase == PhaseIdle {
		return ErrInvalidTransition
	}

	old.pending.Cancel()
	s.sched.Bump()

	fresh := s.newArena(PhaseCollecting, s.clock.Now())
	s.a = fresh

	log.Printf("phase: %s -> %s (restart, gen %d)", old.phase, PhaseCollecting, fresh.gen)
	s.events.Push(event.SessionEvent{Type: event.EventRestart})
	s.events.Push(event.SessionEvent{Type: event.EventPhaseChange, Payload: &event.PhasePayload{
		From: old.phase.String(),
		To:   PhaseCollecting.String(),
	}})
	s.publishArena()
	return nil
}

// Close cancels any pending deadline; the session must not be used afterwards
func (s *Session) Close() {
	s.a.pending.Cancel()
	s.sched.Bump()
}

func (s *Session) publishArena() {
	a := s.a
	s.stat.phase.Store(a.phase.String())
	s.stat.gen.Store(int64(a.gen))
	s.stat.progress.Set(a.acc.Progress())
	s.stat.distance.Set(0)
	s.stat.stops.Store(0)
	s.stat.particles.Store(int64(a.field.Len()))
	s.stat.dna.Store("")
}
