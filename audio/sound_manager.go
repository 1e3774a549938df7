// Package audio plays short synthesized cues for session events
package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/liveheart/event"
	"github.com/lixenwraith/liveheart/parameter"
	"github.com/lixenwraith/liveheart/status"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager mixes cues onto the speaker
// Every method is a no-op until Initialize succeeds, so hosts run unchanged without an audio device
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	lastTick    time.Time
	now         func() time.Time

	muted   atomic.Bool
	enabled *atomic.Bool
}

// NewSoundManager creates an uninitialized manager; reg may be nil
func NewSoundManager(reg *status.Registry) *SoundManager {
	sm := &SoundManager{
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
	if reg != nil {
		sm.enabled = reg.Bools.Get(status.KeyAudio)
	} else {
		sm.enabled = &atomic.Bool{}
	}
	return sm
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.enabled.Store(!sm.muted.Load())
	return nil
}

// Cleanup silences the mixer; the speaker stays open for the process lifetime
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
	sm.enabled.Store(false)
}

// ToggleMute flips mute and reports the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	muted := !sm.muted.Load()
	sm.muted.Store(muted)
	sm.enabled.Store(sm.initialized && !muted)
	return muted
}

// Muted reports whether cues are suppressed by the user
func (sm *SoundManager) Muted() bool {
	return sm.muted.Load()
}

// Play queues a cue
func (sm *SoundManager) Play(c Cue) {
	sm.play(c, 0)
}

// PlayCollect queues a collecting tick pitched by progress, dropping ticks closer than CollectTickGap
func (sm *SoundManager) PlayCollect(progress float64) {
	sm.play(CueCollect, progress)
}

func (sm *SoundManager) play(c Cue, progress float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.accepts(c) {
		return
	}
	s := cueStreamer(c, progress, sampleRate)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// accepts applies mute and the tick throttle; caller holds mu
func (sm *SoundManager) accepts(c Cue) bool {
	if !sm.initialized || sm.muted.Load() {
		return false
	}
	if c == CueCollect {
		now := sm.now()
		if now.Sub(sm.lastTick) < parameter.CollectTickGap {
			return false
		}
		sm.lastTick = now
	}
	return true
}

// HandleEvent plays the cue matching a session notification
func (sm *SoundManager) HandleEvent(ev event.SessionEvent) {
	switch ev.Type {
	case event.EventCollectTick:
		if p, ok := ev.Payload.(*event.ProgressPayload); ok {
			sm.PlayCollect(p.Progress)
		}
	case event.EventCrystallize:
		sm.Play(CueCrystallize)
	case event.EventRestart:
		sm.Play(CueRestart)
	case event.EventSaveResult:
		if p, ok := ev.Payload.(*event.SavePayload); ok {
			if p.Err != nil {
				sm.Play(CueSaveError)
			} else {
				sm.Play(CueSaveOK)
			}
		}
	}
}
