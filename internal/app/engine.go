package app

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/assets"
	"github.com/Faultbox/lumen/internal/config"
	"github.com/Faultbox/lumen/internal/engine/importer"
	"github.com/Faultbox/lumen/internal/engine/input"
	"github.com/Faultbox/lumen/internal/engine/render"
	"github.com/Faultbox/lumen/internal/engine/scene"
	"github.com/Faultbox/lumen/internal/engine/texture"
	"github.com/Faultbox/lumen/internal/engine/window"
	"github.com/Faultbox/lumen/internal/logger"
	"github.com/Faultbox/lumen/internal/scenefile"
)

// Logic is the application driven by the engine loop.
type Logic interface {
	// Init runs once after the window, scene and render are ready.
	Init(e *Engine) error
	// Input runs before each rendered frame. in.Consumed is true when the
	// GUI overlay owns input.
	Input(e *Engine, in *input.Input, dt time.Duration)
	// Update runs at the fixed update rate with the wall time since the
	// previous update.
	Update(e *Engine, dt time.Duration)
	// Cleanup runs once before the engine releases its resources.
	Cleanup()
}

// Engine owns the window, input, scene and render pipeline.
type Engine struct {
	Config   *config.Config
	Window   *window.Window
	Input    *input.Input
	Scene    *scene.Scene
	Render   *render.Renderer
	Assets   *assets.Manager
	Textures *texture.Cache
	Loader   *importer.Loader

	logic      Logic
	logicReady bool
	pacer      *Pacer
	running    bool
	scenePath  string // resolved file of the loaded scene document
	log        *zap.Logger
}

// New creates the window and GL context, then the render pipeline and an
// empty scene. When the config names a scene document it is loaded.
func New(cfg *config.Config, title string, logic Logic) (*Engine, error) {
	e := &Engine{
		Config: cfg,
		logic:  logic,
		log:    logger.Named("app"),
	}

	var err error
	e.Window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	if err := render.InitGL(); err != nil {
		e.Window.Close()
		return nil, err
	}

	if err := e.init(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func (e *Engine) init() error {
	cfg := e.Config
	width, height := e.Window.Size()

	e.Input = input.New()
	e.Assets = assets.NewManager(cfg.Data.SearchPaths...)

	var err error
	if e.Textures, err = texture.NewCache(e.Assets, texture.GLUploader{}); err != nil {
		return fmt.Errorf("creating texture cache: %w", err)
	}
	e.Loader = importer.NewLoader(e.Assets, e.Textures, float64(cfg.Animation.SampleRate))

	e.Scene = scene.New(width, height, mgl32.DegToRad(cfg.Camera.FOV), cfg.Camera.Near, cfg.Camera.Far, e.Textures)
	e.Scene.LightingDisabled = cfg.Render.BypassLighting

	opts := render.DefaultOptions()
	opts.ShadowMapSize = int32(cfg.Render.ShadowMapSize)
	opts.FXAA = cfg.Render.FXAA
	opts.ClearColor = cfg.Render.ClearColor
	if e.Render, err = render.New(opts, width, height); err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	e.Window.OnResize(e.Scene.Resize)
	e.Window.OnResize(func(w, h int) {
		if err := e.Render.Resize(w, h); err != nil {
			e.log.Error("resizing render targets", zap.Error(err))
		}
	})

	if cfg.Data.Scene != "" {
		if err := e.LoadScene(cfg.Data.Scene); err != nil {
			return err
		}
	}

	if err := e.logic.Init(e); err != nil {
		return fmt.Errorf("initializing logic: %w", err)
	}
	e.logicReady = true
	return nil
}

// LoadScene replaces the scene contents with a YAML scene document. The
// document path is resolved through the asset search directories.
func (e *Engine) LoadScene(path string) error {
	file, err := e.Assets.Resolve(path)
	if err != nil {
		return fmt.Errorf("opening scene: %w", err)
	}
	doc, err := scenefile.Load(file)
	if err != nil {
		return err
	}

	e.Scene.Unload()
	if err := scenefile.Apply(doc, e.Scene, e.Loader); err != nil {
		return fmt.Errorf("applying scene %s: %w", path, err)
	}
	e.scenePath = file

	if sky := e.Scene.SkyBox; sky != nil {
		if sky.CubeMap, err = texture.LoadCubeMap(e.Assets, sky.Faces); err != nil {
			return fmt.Errorf("loading skybox: %w", err)
		}
	}

	e.log.Info("scene loaded",
		zap.String("path", path),
		zap.Int("models", len(e.Scene.Models())),
		zap.Int("entities", len(e.Scene.Entities())),
		zap.Bool("lights", e.Scene.Lights != nil))
	return nil
}

// SaveScene writes the current scene as a YAML document. An empty path
// writes back to the loaded document, or DefaultScenePath when none was
// loaded. The written file is returned.
func (e *Engine) SaveScene(path string) (string, error) {
	file := saveTarget(path, e.scenePath)
	if err := scenefile.FromScene(e.Scene).Save(file); err != nil {
		return "", fmt.Errorf("saving scene: %w", err)
	}
	e.log.Info("scene saved", zap.String("path", file), zap.Int("entities", len(e.Scene.Entities())))
	return file, nil
}

// DefaultScenePath is where SaveScene writes when no document is open.
const DefaultScenePath = "scene.yaml"

func saveTarget(path, loaded string) string {
	switch {
	case path != "":
		return path
	case loaded != "":
		return loaded
	default:
		return DefaultScenePath
	}
}

// Run drives the loop until the window closes or Stop is called.
func (e *Engine) Run() error {
	e.running = true
	start := time.Now()
	e.pacer = NewPacer(e.Config.Graphics.TargetFPS, e.Config.Graphics.TargetUPS, start)

	lastFrame := start
	frameCount := 0
	fpsTimer := start

	e.log.Info("starting engine loop")

	for e.running {
		if e.Input.Update() {
			e.running = false
			break
		}
		if _, _, ok := e.Input.Resize(); ok {
			e.Window.Resized()
		}

		now := time.Now()
		tick := e.pacer.Advance(now)

		if tick.Render {
			e.Input.Consumed = !e.Scene.WantsInput()
			e.logic.Input(e, e.Input, now.Sub(lastFrame))
		}

		if tick.Update {
			e.logic.Update(e, tick.UpdateDelta)
		}

		if tick.Render {
			e.Render.Render(e.Scene)
			e.Window.SwapBuffers()
			lastFrame = now

			frameCount++
			if now.Sub(fpsTimer) >= time.Second {
				stats := e.Render.Stats()
				e.log.Debug("fps",
					zap.Int("count", frameCount),
					zap.Int("draws", stats.Draws),
					zap.Duration("frame", stats.Duration))
				frameCount = 0
				fpsTimer = now
			}
		}
	}
	return nil
}

// Stop ends the loop after the current iteration.
func (e *Engine) Stop() {
	e.running = false
}

// Close releases the logic, scene, render pipeline and window, in that order.
func (e *Engine) Close() {
	if e.logicReady {
		e.logic.Cleanup()
	}
	if e.Scene != nil {
		e.Scene.Cleanup()
	} else if e.Textures != nil {
		e.Textures.Cleanup()
	}
	if e.Render != nil {
		e.Render.Cleanup()
	}
	if e.Assets != nil {
		e.Assets.Close()
	}
	if e.Window != nil {
		e.Window.Close()
	}
}
