// Package render implements the deferred pipeline: shadow cascades, the
// G-buffer geometry pass, the lighting pass, the sky box and FXAA.
package render

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/engine/framebuffer"
	"github.com/Faultbox/lumen/internal/engine/model"
	"github.com/Faultbox/lumen/internal/engine/scene"
	"github.com/Faultbox/lumen/internal/engine/shadow"
	"github.com/Faultbox/lumen/internal/logger"
)

// Options configures the pipeline.
type Options struct {
	ShadowMapSize int32
	FXAA          bool
	ClearColor    mgl32.Vec4
}

// DefaultOptions returns the default pipeline settings.
func DefaultOptions() Options {
	return Options{
		ShadowMapSize: shadow.DefaultResolution,
		FXAA:          true,
		ClearColor:    mgl32.Vec4{0, 0, 0, 1},
	}
}

// Stats describes the last rendered frame.
type Stats struct {
	Batches  int
	Draws    int
	Duration time.Duration
}

// Renderer sequences the passes of one frame.
type Renderer struct {
	opts Options

	gbuffer *framebuffer.GBuffer
	lit     *framebuffer.Framebuffer
	quad    *model.Mesh

	shadowRender *ShadowRender
	sceneRender  *SceneRender
	lightsRender *LightsRender
	skyBoxRender *SkyBoxRender
	fxaaRender   *FXAARender

	width  int32
	height int32
	stats  Stats
	log    *zap.Logger
}

// New allocates every pass and render target for a width x height window.
// A current GL context is required. Any failure releases what was created.
func New(opts Options, width, height int) (*Renderer, error) {
	r := &Renderer{
		opts:   opts,
		width:  int32(width),
		height: int32(height),
		log:    logger.Named("render"),
	}

	var err error
	if r.gbuffer, err = framebuffer.NewGBuffer(r.width, r.height); err != nil {
		r.Cleanup()
		return nil, err
	}
	if r.lit, err = framebuffer.New(r.width, r.height); err != nil {
		r.Cleanup()
		return nil, fmt.Errorf("creating lit target: %w", err)
	}
	if r.quad, err = newQuad(); err != nil {
		r.Cleanup()
		return nil, fmt.Errorf("creating quad: %w", err)
	}
	if r.shadowRender, err = NewShadowRender(opts.ShadowMapSize); err != nil {
		r.Cleanup()
		return nil, err
	}
	if r.sceneRender, err = NewSceneRender(); err != nil {
		r.Cleanup()
		return nil, err
	}
	if r.lightsRender, err = NewLightsRender(r.quad); err != nil {
		r.Cleanup()
		return nil, err
	}
	if r.skyBoxRender, err = NewSkyBoxRender(); err != nil {
		r.Cleanup()
		return nil, err
	}
	if r.fxaaRender, err = NewFXAARender(r.quad); err != nil {
		r.Cleanup()
		return nil, err
	}

	w, h := r.gbuffer.Size()
	r.log.Info("render pipeline ready",
		zap.Int32("width", w), zap.Int32("height", h),
		zap.Int32("shadow_map", r.shadowRender.Buffer().Resolution),
		zap.Bool("fxaa", opts.FXAA))
	return r, nil
}

// Render draws one frame of s to the default framebuffer. Passes run in a
// fixed order because each reads the targets the previous one wrote.
func (r *Renderer) Render(s *scene.Scene) {
	start := time.Now()
	batches := BuildBatches(s.Models())

	r.shadowRender.Render(s, batches)
	r.sceneRender.Render(s, r.gbuffer, batches)

	r.lit.Bind()
	c := r.opts.ClearColor
	r.lit.Clear(c[0], c[1], c[2], c[3])
	r.lightsRender.Render(s, r.gbuffer, r.shadowRender)

	r.lit.BlitDepthFrom(r.gbuffer.FBO())
	r.skyBoxRender.Render(s)

	if r.opts.FXAA {
		r.fxaaRender.Render(r.lit.ColorTexture(), r.width, r.height)
	} else {
		r.lit.BlitColorToScreen(r.width, r.height)
		gl.Viewport(0, 0, r.width, r.height)
	}

	if s.Overlay != nil {
		s.Overlay.DrawGui()
	}

	r.stats = Stats{Batches: len(batches), Draws: DrawCount(batches), Duration: time.Since(start)}
	r.log.Debug("frame", zap.Int("batches", r.stats.Batches), zap.Int("draws", r.stats.Draws),
		zap.Duration("duration", r.stats.Duration))
}

// Resize reallocates the size-dependent targets. The shadow array does not
// depend on the window and is kept.
func (r *Renderer) Resize(width, height int) error {
	changed, err := r.gbuffer.Resize(int32(width), int32(height))
	if err != nil {
		return err
	}
	if r.lit.Resize(int32(width), int32(height)) {
		changed = true
	}
	r.width, r.height = r.gbuffer.Size()
	if changed {
		r.log.Debug("render targets resized", zap.Int32("width", r.width), zap.Int32("height", r.height))
	}
	return nil
}

// SetFXAA toggles the anti-aliasing pass. When off the lit image is blitted.
func (r *Renderer) SetFXAA(on bool) { r.opts.FXAA = on }

// FXAA reports whether the anti-aliasing pass is enabled.
func (r *Renderer) FXAA() bool { return r.opts.FXAA }

// Stats returns figures for the last frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Cascades exposes the shadow cascades of the last frame.
func (r *Renderer) Cascades() *shadow.Cascades { return r.shadowRender.Cascades() }

// ReadPixels returns the composited frame before anti-aliasing as
// bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int32) {
	w, h := r.lit.Size()
	return r.lit.ReadPixels(), w, h
}

// Cleanup releases every pass and target. It is safe on a partially
// constructed renderer.
func (r *Renderer) Cleanup() {
	if r.fxaaRender != nil {
		r.fxaaRender.Cleanup()
	}
	if r.skyBoxRender != nil {
		r.skyBoxRender.Cleanup()
	}
	if r.lightsRender != nil {
		r.lightsRender.Cleanup()
	}
	if r.sceneRender != nil {
		r.sceneRender.Cleanup()
	}
	if r.shadowRender != nil {
		r.shadowRender.Cleanup()
	}
	if r.quad != nil {
		r.quad.Destroy()
	}
	if r.lit != nil {
		r.lit.Destroy()
	}
	if r.gbuffer != nil {
		r.gbuffer.Destroy()
	}
}
