package main

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/lumen/internal/config"
	"github.com/Faultbox/lumen/internal/engine/anim"
	"github.com/Faultbox/lumen/internal/engine/camera"
	"github.com/Faultbox/lumen/internal/engine/model"
	"github.com/Faultbox/lumen/internal/engine/render"
)

func TestHeldMovement(t *testing.T) {
	tests := []struct {
		name string
		keys []sdl.Scancode
		want movement
	}{
		{"idle", nil, movement{}},
		{"forward", []sdl.Scancode{sdl.SCANCODE_W}, movement{z: 1}},
		{"opposite keys cancel", []sdl.Scancode{sdl.SCANCODE_W, sdl.SCANCODE_S}, movement{}},
		{"strafe and rise", []sdl.Scancode{sdl.SCANCODE_A, sdl.SCANCODE_E}, movement{x: -1, y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			held := func(k sdl.Scancode) bool {
				for _, h := range tt.keys {
					if h == k {
						return true
					}
				}
				return false
			}
			if got := heldMovement(held); got != tt.want {
				t.Errorf("heldMovement = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMoveForwardGoesDownMinusZ(t *testing.T) {
	c := camera.New()
	move(c, movement{z: 1}, 2)
	got := c.Position()
	if d := got.Sub(mgl32.Vec3{0, 0, -2}).Len(); d > 1e-5 {
		t.Errorf("position = %v, want (0,0,-2)", got)
	}
}

func TestFormatStats(t *testing.T) {
	got := formatStats(120, 2*time.Second, render.Stats{Batches: 3, Draws: 7, Duration: 1500 * time.Microsecond}, true)
	want := "Lumen Viewer | 60 fps | 3 batches | 7 draws | 1.50 ms | fxaa on"
	if got != want {
		t.Errorf("formatStats = %q, want %q", got, want)
	}
}

func TestCtrlHeld(t *testing.T) {
	for _, k := range []sdl.Scancode{sdl.SCANCODE_LCTRL, sdl.SCANCODE_RCTRL} {
		if !ctrlHeld(func(s sdl.Scancode) bool { return s == k }) {
			t.Errorf("ctrlHeld with %v = false", k)
		}
	}
	if ctrlHeld(func(s sdl.Scancode) bool { return s == sdl.SCANCODE_S }) {
		t.Error("ctrlHeld with S alone = true")
	}
}

func TestSetInterpolation(t *testing.T) {
	animated := model.NewEntity("a", "m")
	animated.AnimationData = anim.NewAnimationData(nil)
	static := model.NewEntity("b", "m")

	setInterpolation([]*model.Entity{animated, static}, false)
	if animated.AnimationData.Interpolate {
		t.Error("interpolation still on")
	}
	if static.AnimationData != nil {
		t.Error("static entity gained animation data")
	}
}

func TestCleanupPersistsToggles(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("config directory is taken from XDG_CONFIG_HOME on linux only")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := config.Default()
	cfg.Graphics.Width = 3000 // not a toggle, must not be written
	v := newViewer(cfg, true)
	cfg.Render.FXAA = false
	cfg.Render.BypassLighting = true
	cfg.Animation.Interpolate = false
	v.Cleanup()

	saved := config.Default()
	if err := config.Update(filepath.Join(config.ConfigDir(), "config.yaml"), func(c *config.Config) { *saved = *c }); err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	if saved.Render.FXAA || !saved.Render.BypassLighting || saved.Animation.Interpolate {
		t.Errorf("toggles not persisted: %+v %+v", saved.Render, saved.Animation)
	}
	if saved.Graphics.Width != config.Default().Graphics.Width {
		t.Errorf("width %d leaked into the saved file", saved.Graphics.Width)
	}
}

func TestCleanupWithoutSaveFlagWritesNothing(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("config directory is taken from XDG_CONFIG_HOME on linux only")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	newViewer(config.Default(), false).Cleanup()

	matches, err := filepath.Glob(filepath.Join(dir, "*", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("unexpected files %v", matches)
	}
}
