// Package input turns raw pointer samples and key presses into session signals
package input

import (
	"math"

	"github.com/lixenwraith/liveheart/parameter"
	"github.com/lixenwraith/liveheart/vmath"
)

// Result reports what one pointer sample did
type Result struct {
	Progress float64 // 0..100
	Started  bool    // first sample of the session, reference point recorded
	Moved    bool    // distance accumulated, a trail particle belongs at (X, Y)
	Complete bool    // progress reached 100 on this sample; set exactly once per session
	X, Y     float64
}

// Accumulator converts pointer travel into collection progress
// Total distance is non-decreasing; only a fresh Accumulator starts at zero
type Accumulator struct {
	threshold float64
	total     float64
	stops     int
	lastX     float64
	lastY     float64
	started   bool
	completed bool
}

// NewAccumulator creates an accumulator completing at threshold units of travel
// Non-positive thresholds fall back to the reference value
func NewAccumulator(threshold float64) *Accumulator {
	if threshold <= 0 || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		threshold = parameter.CollectionThreshold
	}
	return &Accumulator{threshold: threshold}
}

// Sample records one pointer position
func (a *Accumulator) Sample(x, y float64) Result {
	if !a.started {
		a.started = true
		a.lastX, a.lastY = x, y
		return Result{Progress: a.Progress(), Started: true, X: x, Y: y}
	}

	d := vmath.Dist2D(a.lastX, a.lastY, x, y)
	if d < parameter.StopEpsilon {
		a.stops++
		return Result{Progress: a.Progress(), X: x, Y: y}
	}

	a.total += d
	a.lastX, a.lastY = x, y

	res := Result{Progress: a.Progress(), Moved: true, X: x, Y: y}
	if !a.completed && a.total >= a.threshold {
		a.completed = true
		res.Complete = true
	}
	return res
}

// Progress is min(100, 100×total/threshold)
func (a *Accumulator) Progress() float64 {
	if a.total >= a.threshold {
		return parameter.ProgressMax
	}
	return math.Min(parameter.ProgressMax, parameter.ProgressMax*a.total/a.threshold)
}

// Total returns accumulated travel
func (a *Accumulator) Total() float64 { return a.total }

// Stops returns how many samples were too close to count as motion
func (a *Accumulator) Stops() int { return a.stops }

// Threshold returns the completion distance
func (a *Accumulator) Threshold() float64 { return a.threshold }

// Started reports whether a reference point exists
func (a *Accumulator) Started() bool { return a.started }

// Completed reports whether the completion signal has fired
func (a *Accumulator) Completed() bool { return a.completed }
