// Package app runs the engine loop: window, input, logic updates and rendering.
package app

import "time"

// Tick is the outcome of one loop iteration.
type Tick struct {
	// Render is true when input should be processed and a frame drawn.
	Render bool
	// Update is true when the logic should advance by UpdateDelta.
	Update      bool
	UpdateDelta time.Duration
}

// Pacer schedules fixed-rate updates and optionally capped rendering from a
// free-running loop. Elapsed time is accumulated per schedule and one period
// is consumed each time it fires. Updates run at most once per tick.
type Pacer struct {
	updatePeriod time.Duration
	framePeriod  time.Duration // 0 renders every tick

	deltaUpdate time.Duration
	deltaFrame  time.Duration

	last       time.Time
	lastUpdate time.Time
}

// NewPacer creates a pacer for targetUPS updates per second. targetFPS <= 0
// disables the frame cap. Timing starts at start.
func NewPacer(targetFPS, targetUPS int, start time.Time) *Pacer {
	p := &Pacer{
		updatePeriod: time.Second / time.Duration(max(targetUPS, 1)),
		last:         start,
		lastUpdate:   start,
	}
	if targetFPS > 0 {
		p.framePeriod = time.Second / time.Duration(targetFPS)
	}
	return p
}

// Advance accounts for the time since the previous call and reports what
// should run this iteration.
func (p *Pacer) Advance(now time.Time) Tick {
	elapsed := now.Sub(p.last)
	p.last = now

	p.deltaUpdate += elapsed
	p.deltaFrame += elapsed

	var t Tick
	if p.framePeriod <= 0 || p.deltaFrame >= p.framePeriod {
		t.Render = true
		p.deltaFrame -= p.framePeriod
	}
	if p.deltaUpdate >= p.updatePeriod {
		t.Update = true
		t.UpdateDelta = now.Sub(p.lastUpdate)
		p.lastUpdate = now
		p.deltaUpdate -= p.updatePeriod
	}
	return t
}
