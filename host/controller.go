// Package host holds the frame loop state shared by the terminal and window front ends
package host

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/liveheart/audio"
	"github.com/lixenwraith/liveheart/engine"
	"github.com/lixenwraith/liveheart/event"
	"github.com/lixenwraith/liveheart/input"
	"github.com/lixenwraith/liveheart/status"
)

// NoticeDuration is how long a status message stays visible
const NoticeDuration = 3 * time.Second

// Controller applies intents and pointer samples to a session and consumes its events
// Not safe for concurrent use; every method runs on the frame goroutine
type Controller struct {
	ctx      context.Context
	session  *engine.Session
	clock    *engine.PausableClock
	sound    *audio.SoundManager
	reg      *status.Registry
	snap     engine.Snapshotter
	showcase *engine.Showcase
	paused   *atomic.Bool

	debug       bool
	notice      string
	noticeUntil time.Time
	now         func() time.Time
}

// New creates a controller; snap supplies the image attached to saves and may be nil
func New(ctx context.Context, session *engine.Session, clock *engine.PausableClock, sound *audio.SoundManager, reg *status.Registry, snap engine.Snapshotter) *Controller {
	return &Controller{
		ctx:     ctx,
		session: session,
		clock:   clock,
		sound:   sound,
		reg:     reg,
		snap:    snap,
		paused:  reg.Bools.Get(status.KeyPaused),
		now:     time.Now,
	}
}

// EnableShowcase hands the session to an unattended cycle; pointer input is ignored from then on
func (c *Controller) EnableShowcase(interval time.Duration) {
	c.showcase = engine.NewShowcase(c.session, interval)
}

// Session returns the driven session
func (c *Controller) Session() *engine.Session { return c.session }

// Paused reports whether the session clock is frozen
func (c *Controller) Paused() bool { return c.clock.IsPaused() }

// Debug reports whether the metrics overlay is on
func (c *Controller) Debug() bool { return c.debug }

// Sample forwards a pointer position unless paused or in showcase
func (c *Controller) Sample(x, y float64) {
	if c.clock.IsPaused() || c.showcase != nil {
		return
	}
	c.session.Sample(x, y)
}

// HandleIntent applies one intent and reports whether the host keeps running
func (c *Controller) HandleIntent(intent input.IntentType) bool {
	switch intent {
	case input.IntentQuit:
		return false
	case input.IntentRestart:
		if err := c.session.Restart(); err != nil {
			c.Say("nothing to restart")
		}
	case input.IntentSave:
		c.save()
	case input.IntentToggleMute:
		if c.sound.ToggleMute() {
			c.Say("sound off")
		} else {
			c.Say("sound on")
		}
	case input.IntentToggleDebug:
		c.debug = !c.debug
	case input.IntentPause:
		c.paused.Store(c.clock.Toggle())
	}
	return true
}

func (c *Controller) save() {
	err := c.session.SaveAsync(c.ctx, "", c.snap)
	switch {
	case err == nil:
		c.Say("saving...")
	case errors.Is(err, engine.ErrNotArtifact):
		c.Say("finish the heart before saving")
	case errors.Is(err, engine.ErrSaveInFlight):
		c.Say("save in progress")
	case errors.Is(err, engine.ErrNoGateway):
		c.Say("saving is not configured")
	default:
		c.Say("save failed: " + err.Error())
	}
}

// Say shows msg for NoticeDuration
func (c *Controller) Say(msg string) {
	c.notice = msg
	c.noticeUntil = c.now().Add(NoticeDuration)
}

// Notice returns the current status message, empty once it expired
func (c *Controller) Notice() string {
	if c.notice == "" || !c.now().Before(c.noticeUntil) {
		return ""
	}
	return c.notice
}

// Step advances showcase and session by one frame and consumes the produced events
func (c *Controller) Step() {
	if c.showcase != nil && !c.clock.IsPaused() {
		c.showcase.Step()
	}
	c.session.Tick()

	for _, ev := range c.session.Events().Consume() {
		c.sound.HandleEvent(ev)
		switch ev.Type {
		case event.EventSaveResult:
			if p, ok := ev.Payload.(*event.SavePayload); ok {
				c.Say(saveNotice(p))
			}
		case event.EventPhaseChange:
			if p, ok := ev.Payload.(*event.PhasePayload); ok {
				log.Printf("host: phase %s -> %s", p.From, p.To)
			}
		}
	}
}

func saveNotice(p *event.SavePayload) string {
	if p.Err != nil {
		return "save failed"
	}
	return fmt.Sprintf("saved as %s", p.Slug)
}
