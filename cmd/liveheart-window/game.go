package main

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/liveheart/engine"
	"github.com/lixenwraith/liveheart/host"
	"github.com/lixenwraith/liveheart/input"
	"github.com/lixenwraith/liveheart/render"
)

// Debug font metrics of ebitenutil.DebugPrintAt
const (
	glyphWidth = 6
	lineHeight = 16
)

var keyIntents = map[ebiten.Key]input.IntentType{
	ebiten.KeyEscape: input.IntentQuit,
	ebiten.KeyQ:      input.IntentQuit,
	ebiten.KeyR:      input.IntentRestart,
	ebiten.KeyS:      input.IntentSave,
	ebiten.KeyM:      input.IntentToggleMute,
	ebiten.KeyD:      input.IntentToggleDebug,
	ebiten.KeyP:      input.IntentPause,
	ebiten.KeySpace:  input.IntentPause,
}

// game renders one surface unit per window pixel
type game struct {
	session  *engine.Session
	ctl      *host.Controller
	renderer *render.Renderer

	canvas  *ebiten.Image
	pixels  []byte
	touches []ebiten.TouchID

	tracking     bool
	lastX, lastY int
	width        int
	height       int
}

func newGame(session *engine.Session, ctl *host.Controller, renderer *render.Renderer) *game {
	return &game{session: session, ctl: ctl, renderer: renderer}
}

func (g *game) Update() error {
	for key, intent := range keyIntents {
		if inpututil.IsKeyJustPressed(key) && !g.ctl.HandleIntent(intent) {
			return ebiten.Termination
		}
	}

	g.pointer()
	g.ctl.Step()
	return nil
}

// pointer samples the first touch, or the cursor, whenever it moved since the previous tick
// The first position only seeds the reference so a resting cursor never starts a session
func (g *game) pointer() {
	x, y := ebiten.CursorPosition()
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	if len(g.touches) > 0 {
		x, y = ebiten.TouchPosition(g.touches[0])
	}

	if !g.tracking {
		g.tracking = true
		g.lastX, g.lastY = x, y
		return
	}
	if x == g.lastX && y == g.lastY {
		return
	}
	g.lastX, g.lastY = x, y
	g.ctl.Sample(float64(x), float64(y))
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.renderer.Frame(g.session) {
		r := g.renderer.Raster()
		w, h := r.Width(), r.Height()
		if g.canvas == nil || g.canvas.Bounds() != image.Rect(0, 0, w, h) {
			if g.canvas != nil {
				g.canvas.Deallocate()
			}
			g.canvas = ebiten.NewImage(w, h)
			g.pixels = make([]byte, w*h*4)
		}
		r.WriteRGBA(g.pixels)
		g.canvas.WritePixels(g.pixels)
	}
	if g.canvas != nil {
		screen.DrawImage(g.canvas, nil)
	}
	g.drawHUD(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.session.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

func (g *game) drawHUD(screen *ebiten.Image) {
	o := g.ctl.Overlay()
	rows := g.height / lineHeight

	switch o.Phase {
	case engine.PhaseArtifact:
		g.centered(screen, rows-4, o.Name)
		g.centered(screen, rows-3, o.Label)
		g.centered(screen, rows-1, o.Help)
	default:
		g.centered(screen, rows-3, o.Prompt)
	}
	if o.Paused {
		g.centered(screen, 1, "paused")
	}
	if o.Notice != "" {
		g.centered(screen, rows-2, o.Notice)
	}
	for i, line := range o.Debug {
		ebitenutil.DebugPrintAt(screen, line, glyphWidth, i*lineHeight)
	}
	if o.Debug != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("tps %0.1f fps %0.1f", ebiten.ActualTPS(), ebiten.ActualFPS()), glyphWidth, len(o.Debug)*lineHeight)
	}
}

func (g *game) centered(screen *ebiten.Image, row int, s string) {
	if s == "" || row < 0 {
		return
	}
	x := (g.width - len([]rune(s))*glyphWidth) / 2
	ebitenutil.DebugPrintAt(screen, s, max(x, 0), row*lineHeight)
}
