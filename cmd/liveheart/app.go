package main

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/liveheart/audio"
	"github.com/lixenwraith/liveheart/engine"
	"github.com/lixenwraith/liveheart/host"
	"github.com/lixenwraith/liveheart/input"
	"github.com/lixenwraith/liveheart/render"
	"github.com/lixenwraith/liveheart/status"
)

// app owns the terminal host state; every method runs on the main goroutine
type app struct {
	screen    tcell.Screen
	session   *engine.Session
	ctl       *host.Controller
	renderer  *render.Renderer
	presenter *render.TerminalPresenter
	keys      *input.KeyTable
}

func newApp(ctx context.Context, screen tcell.Screen, session *engine.Session, clock *engine.PausableClock, sound *audio.SoundManager, reg *status.Registry) *app {
	renderer := render.NewRenderer(render.RasterUnit())
	a := &app{
		screen:    screen,
		session:   session,
		ctl:       host.New(ctx, session, clock, sound, reg, renderer),
		renderer:  renderer,
		presenter: render.NewTerminalPresenter(screen),
		keys:      input.DefaultKeyTable(),
	}
	a.resize()
	return a
}

func (a *app) resize() {
	cols, rows := a.screen.Size()
	a.session.Resize(render.SurfaceSize(cols, rows))
}

// handleEvent applies one terminal event and reports whether the host keeps running
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	case *tcell.EventMouse:
		a.ctl.Sample(render.CellToSurface(ev.Position()))
	case *tcell.EventKey:
		return a.ctl.HandleIntent(a.keys.Resolve(ev))
	}
	return true
}

// frame advances the session, reacts to its events and draws
func (a *app) frame() {
	a.ctl.Step()
	if !a.renderer.Frame(a.session) {
		return
	}
	a.presenter.Present(a.renderer.Raster())
	a.drawHUD()
	a.presenter.Show()
}
