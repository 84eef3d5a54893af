package main

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/app"
	"github.com/Faultbox/lumen/internal/config"
	"github.com/Faultbox/lumen/internal/engine/camera"
	"github.com/Faultbox/lumen/internal/engine/debug"
	"github.com/Faultbox/lumen/internal/engine/input"
	"github.com/Faultbox/lumen/internal/engine/model"
	"github.com/Faultbox/lumen/internal/engine/picking"
	"github.com/Faultbox/lumen/internal/logger"
)

// viewer is a free-fly scene inspector.
type viewer struct {
	moveSpeed   float32 // world units per millisecond
	sensitivity float32 // degrees per pixel

	// cfg tracks the runtime toggles; saveConfig writes them back on exit.
	cfg        *config.Config
	saveConfig bool

	screenshots *debug.Screenshot
	stats       *statsOverlay
	log         *zap.Logger
}

func newViewer(cfg *config.Config, saveConfig bool) *viewer {
	return &viewer{
		moveSpeed:   cfg.Camera.MoveSpeed,
		sensitivity: cfg.Camera.MouseSensitivity,
		cfg:         cfg,
		saveConfig:  saveConfig,
		screenshots: debug.NewScreenshot("screenshots", "lumen"),
		log:         logger.Named("viewer"),
	}
}

func (v *viewer) Init(e *app.Engine) error {
	v.stats = newStatsOverlay(e.Window, e.Render)
	e.Scene.Overlay = v.stats

	if len(e.Scene.Entities()) == 0 {
		v.log.Warn("scene is empty, pass --scene to open a scene document")
	}
	if !v.cfg.Animation.Interpolate {
		setInterpolation(e.Scene.Entities(), false)
	}
	return nil
}

func (v *viewer) Input(e *app.Engine, in *input.Input, dt time.Duration) {
	if in.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		e.Stop()
		return
	}
	v.toggles(e, in)

	if in.Consumed || ctrlHeld(in.IsKeyHeld) {
		return
	}

	step := v.moveSpeed * float32(dt.Milliseconds())
	move(e.Scene.Camera, heldMovement(in.IsKeyHeld), step)

	if in.IsButtonHeld(input.ButtonRight) {
		dx, dy := in.MouseDelta()
		e.Scene.Camera.AddRotation(
			mgl32.DegToRad(float32(dy)*v.sensitivity),
			mgl32.DegToRad(float32(dx)*v.sensitivity))
	}

	if x, y, ok := in.Clicked(input.ButtonLeft); ok {
		px, py := e.Window.ToPixels(x, y)
		if hit := picking.SelectEntity(e.Scene, px, py); hit != nil {
			v.log.Info("selected", zap.String("entity", hit.ID), zap.String("model", hit.ModelID))
		}
	}
}

func (v *viewer) toggles(e *app.Engine, in *input.Input) {
	if ctrlHeld(in.IsKeyHeld) {
		if in.IsKeyPressed(sdl.SCANCODE_S) {
			if _, err := e.SaveScene(""); err != nil {
				v.log.Error("scene save failed", zap.Error(err))
			}
		}
		return
	}
	if in.IsKeyPressed(sdl.SCANCODE_L) {
		e.Scene.LightingDisabled = !e.Scene.LightingDisabled
		v.cfg.Render.BypassLighting = e.Scene.LightingDisabled
		v.log.Info("lighting bypass", zap.Bool("on", e.Scene.BypassLighting()))
	}
	if in.IsKeyPressed(sdl.SCANCODE_F) {
		e.Render.SetFXAA(!e.Render.FXAA())
		v.cfg.Render.FXAA = e.Render.FXAA()
		v.log.Info("fxaa", zap.Bool("on", e.Render.FXAA()))
	}
	if in.IsKeyPressed(sdl.SCANCODE_SPACE) {
		v.cfg.Animation.Interpolate = !v.cfg.Animation.Interpolate
		setInterpolation(e.Scene.Entities(), v.cfg.Animation.Interpolate)
		v.log.Info("interpolation", zap.Bool("on", v.cfg.Animation.Interpolate))
	}
	if in.IsKeyPressed(sdl.SCANCODE_HOME) {
		if b := e.Scene.Bounds(); b.Valid() {
			e.Scene.Camera.FitToBounds(b.Min, b.Max)
		}
	}
	if in.IsKeyPressed(sdl.SCANCODE_F12) {
		pixels, w, h := e.Render.ReadPixels()
		if _, err := v.screenshots.CaptureFromPixels(pixels, int(w), int(h)); err != nil {
			v.log.Error("screenshot failed", zap.Error(err))
		}
	}
}

func (v *viewer) Update(e *app.Engine, dt time.Duration) {
	e.Scene.UpdateAnimations(dt.Seconds())
}

func (v *viewer) Cleanup() {
	if !v.saveConfig {
		return
	}
	path := v.cfg.Path()
	if err := config.Update(path, func(c *config.Config) { copyToggles(c, v.cfg) }); err != nil {
		v.log.Error("config save failed", zap.Error(err))
		return
	}
	v.log.Info("config saved", zap.String("path", path))
}

// copyToggles carries the settings the viewer changes at runtime.
func copyToggles(dst, src *config.Config) {
	dst.Render.FXAA = src.Render.FXAA
	dst.Render.BypassLighting = src.Render.BypassLighting
	dst.Animation.Interpolate = src.Animation.Interpolate
}

func setInterpolation(entities []*model.Entity, on bool) {
	for _, ent := range entities {
		if ad := ent.AnimationData; ad != nil {
			ad.Interpolate = on
		}
	}
}

func ctrlHeld(held func(sdl.Scancode) bool) bool {
	return held(sdl.SCANCODE_LCTRL) || held(sdl.SCANCODE_RCTRL)
}

// movement is a per-axis direction in camera space: X right, Y up, Z forward.
type movement struct {
	x, y, z int
}

func heldMovement(held func(sdl.Scancode) bool) movement {
	var m movement
	axis := func(pos, neg sdl.Scancode) int {
		d := 0
		if held(pos) {
			d++
		}
		if held(neg) {
			d--
		}
		return d
	}
	m.z = axis(sdl.SCANCODE_W, sdl.SCANCODE_S)
	m.x = axis(sdl.SCANCODE_D, sdl.SCANCODE_A)
	m.y = axis(sdl.SCANCODE_E, sdl.SCANCODE_Q)
	return m
}

func move(c *camera.Camera, m movement, step float32) {
	switch {
	case m.z > 0:
		c.MoveForward(step)
	case m.z < 0:
		c.MoveBackwards(step)
	}
	switch {
	case m.x > 0:
		c.MoveRight(step)
	case m.x < 0:
		c.MoveLeft(step)
	}
	switch {
	case m.y > 0:
		c.MoveUp(step)
	case m.y < 0:
		c.MoveDown(step)
	}
}
