package host

import (
	"fmt"

	"github.com/lixenwraith/liveheart/dna"
	"github.com/lixenwraith/liveheart/engine"
)

// HelpLine lists the artifact key bindings
const HelpLine = "s save  r restart  m mute  p pause  q quit"

// Overlay is the text a front end draws over the frame
type Overlay struct {
	Phase    engine.Phase
	Prompt   string  // phase hint, empty when none
	Progress float64 // collecting only
	Name     string  // artifact only
	Label    string  // artifact only
	Accent   *dna.HSL
	Help     string
	Paused   bool
	Notice   string
	Debug    []string
}

// Overlay collects the current HUD content
func (c *Controller) Overlay() Overlay {
	o := Overlay{
		Phase:  c.session.Phase(),
		Paused: c.clock.IsPaused(),
		Notice: c.Notice(),
	}
	switch o.Phase {
	case engine.PhaseIdle:
		o.Prompt = "move the pointer to gather light"
	case engine.PhaseCollecting:
		o.Progress = c.session.Progress()
		o.Prompt = fmt.Sprintf("%3.0f%%", o.Progress)
	case engine.PhaseCrystallizing:
		o.Prompt = "crystallizing"
	case engine.PhaseArtifact:
		if d := c.session.DNA(); d != nil {
			o.Name = d.Name
			o.Label = d.Label()
			if len(d.Palette) > 0 {
				accent := d.Palette[0]
				o.Accent = &accent
			}
		}
		o.Help = HelpLine
	}
	if c.debug {
		o.Debug = c.reg.Lines()
	}
	return o
}
