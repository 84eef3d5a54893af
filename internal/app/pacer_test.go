package app

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestPacerUncappedRendersEveryTick(t *testing.T) {
	p := NewPacer(0, 30, epoch)
	for i := 1; i <= 5; i++ {
		tick := p.Advance(epoch.Add(time.Duration(i) * time.Millisecond))
		if !tick.Render {
			t.Fatalf("tick %d did not render", i)
		}
		if tick.Update {
			t.Fatalf("tick %d updated after %dms at 30 UPS", i, i)
		}
	}
}

func TestPacerUpdatesAtTargetRate(t *testing.T) {
	p := NewPacer(0, 10, epoch)

	updates := 0
	var deltas []time.Duration
	// One second of 10ms ticks.
	for i := 1; i <= 100; i++ {
		tick := p.Advance(epoch.Add(time.Duration(i) * 10 * time.Millisecond))
		if tick.Update {
			updates++
			deltas = append(deltas, tick.UpdateDelta)
		}
	}
	if updates != 10 {
		t.Errorf("updates = %d, want 10", updates)
	}
	for i, d := range deltas {
		if d != 100*time.Millisecond {
			t.Errorf("update %d delta = %v, want 100ms", i, d)
		}
	}
}

func TestPacerFrameCap(t *testing.T) {
	p := NewPacer(50, 10, epoch)

	frames := 0
	for i := 1; i <= 100; i++ {
		if p.Advance(epoch.Add(time.Duration(i) * 10 * time.Millisecond)).Render {
			frames++
		}
	}
	if frames != 50 {
		t.Errorf("frames = %d, want 50", frames)
	}
}

func TestPacerOneUpdatePerTick(t *testing.T) {
	p := NewPacer(0, 10, epoch)

	// A long stall owes several updates but only one runs per tick.
	tick := p.Advance(epoch.Add(350 * time.Millisecond))
	if !tick.Update || tick.UpdateDelta != 350*time.Millisecond {
		t.Fatalf("tick = %+v", tick)
	}
	tick = p.Advance(epoch.Add(351 * time.Millisecond))
	if !tick.Update {
		t.Error("backlog should be drained on the next tick")
	}
	if tick.UpdateDelta != time.Millisecond {
		t.Errorf("delta = %v, want wall time since previous update", tick.UpdateDelta)
	}
}
