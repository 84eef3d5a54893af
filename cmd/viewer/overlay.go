package main

import (
	"fmt"
	"time"

	"github.com/Faultbox/lumen/internal/engine/render"
	"github.com/Faultbox/lumen/internal/engine/window"
)

// statsOverlay reports frame statistics in the window title once a second.
type statsOverlay struct {
	win    *window.Window
	render *render.Renderer

	frames int
	since  time.Time
	now    func() time.Time
}

func newStatsOverlay(win *window.Window, r *render.Renderer) *statsOverlay {
	return &statsOverlay{win: win, render: r, now: time.Now, since: time.Now()}
}

func (o *statsOverlay) DrawGui() {
	o.frames++
	now := o.now()
	if now.Sub(o.since) < time.Second {
		return
	}
	o.win.SetTitle(formatStats(o.frames, now.Sub(o.since), o.render.Stats(), o.render.FXAA()))
	o.frames = 0
	o.since = now
}

func (o *statsOverlay) ConsumesInput() bool { return false }

func (o *statsOverlay) Resize(width, height int) {}

func formatStats(frames int, elapsed time.Duration, s render.Stats, fxaa bool) string {
	fps := float64(frames) / elapsed.Seconds()
	aa := "off"
	if fxaa {
		aa = "on"
	}
	return fmt.Sprintf("Lumen Viewer | %.0f fps | %d batches | %d draws | %.2f ms | fxaa %s",
		fps, s.Batches, s.Draws, float64(s.Duration.Microseconds())/1000, aa)
}
