package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/liveheart/gateway"
	"github.com/lixenwraith/liveheart/store"
)

// ReplayTimeout bounds the share lookup at startup
const ReplayTimeout = 10 * time.Second

// ErrNoBackend rejects a replay when neither a remote endpoint nor a local store is available
var ErrNoBackend = errors.New("no share backend configured")

// Replay fetches the share with slug and puts its artifact on screen
// On failure the session is left as it was and the reason is shown as a notice
func (c *Controller) Replay(f gateway.Fetcher, slug string) error {
	err := c.replay(f, slug)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		c.Say("share " + slug + " not found")
	default:
		c.Say("replay failed")
	}
	return err
}

func (c *Controller) replay(f gateway.Fetcher, slug string) error {
	if f == nil {
		return ErrNoBackend
	}
	ctx, cancel := context.WithTimeout(c.ctx, ReplayTimeout)
	defer cancel()

	sh, err := f.Fetch(ctx, slug)
	if err != nil {
		return err
	}
	if err := c.session.Load(sh.DNA); err != nil {
		return fmt.Errorf("replay %s: %w", slug, err)
	}
	c.Say(fmt.Sprintf("replaying %q", sh.Title))
	return nil
}
