package main

import (
	"github.com/lixenwraith/liveheart/engine"
	"github.com/lixenwraith/liveheart/render"
)

var (
	hudDim    = render.RGB{R: 140, G: 140, B: 150}
	hudBright = render.RGB{R: 235, G: 235, B: 240}
	hudAccent = render.RGB{R: 255, G: 60, B: 140}
)

// progressBarWidth is the collecting bar length in cells
const progressBarWidth = 40

// drawHUD writes the phase prompt, progress, artifact label and notices over the frame
func (a *app) drawHUD() {
	_, rows := a.screen.Size()
	p := a.presenter
	o := a.ctl.Overlay()

	switch o.Phase {
	case engine.PhaseCollecting:
		p.ProgressBar(rows-3, progressBarWidth, o.Progress, hudAccent)
		p.CenteredText(rows-2, o.Prompt, hudDim)
	case engine.PhaseArtifact:
		if o.Name != "" {
			color := hudBright
			if o.Accent != nil {
				color = render.FromHSL(*o.Accent)
			}
			p.CenteredText(rows-4, o.Name, color)
			p.CenteredText(rows-3, o.Label, hudDim)
		}
		p.CenteredText(rows-1, o.Help, hudDim)
	default:
		p.CenteredText(rows-3, o.Prompt, hudDim)
	}

	if o.Paused {
		p.CenteredText(1, "paused", hudBright)
	}
	if o.Notice != "" {
		p.CenteredText(rows-2, o.Notice, hudBright)
	}
	for i, line := range o.Debug {
		p.Text(1, i, line, hudDim)
	}
}
