// Package viewer runs a camera demo in a window: input is collected every
// frame, the rig is stepped at a fixed rate and the scene is drawn with the
// latest pose.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"github.com/YuShigurey/learn-bevy/internal/config"
	"github.com/YuShigurey/learn-bevy/internal/openglhelper"
	"github.com/YuShigurey/learn-bevy/internal/schedule"
	"github.com/YuShigurey/learn-bevy/pkg/input"
	"github.com/YuShigurey/learn-bevy/pkg/render"
	"github.com/YuShigurey/learn-bevy/pkg/scene"
)

// Viewer owns the window and everything drawn in it
type Viewer struct {
	window    *openglhelper.Window
	renderer  *render.Renderer
	collector *input.Collector
	sim       *Simulation
	scheduler *schedule.FixedStep
	scene     *scene.Scene
	logger    zerolog.Logger

	reload chan *config.Config
}

// New opens a window and prepares the demo selected by mode. It must be
// called from the locked main thread.
func New(mode Mode, cfg *config.Config, logger zerolog.Logger) (*Viewer, error) {
	sc, err := mode.Scene()
	if err != nil {
		return nil, err
	}
	rig, err := NewRig(mode, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s rig: %w", mode, err)
	}

	window, err := openglhelper.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title+" - "+string(mode), cfg.Window.VSync, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := render.NewRenderer(render.NewProjection(cfg.Window.FOV, window.Aspect()), logger)
	if err != nil {
		window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v := &Viewer{
		window:    window,
		renderer:  renderer,
		collector: input.NewCollector(input.DefaultKeymap()),
		sim:       NewSimulation(rig, logger),
		scheduler: schedule.NewFixedStep(cfg.TickInterval(), cfg.Tick.MaxSteps, logger),
		scene:     sc,
		logger:    logger,
		reload:    make(chan *config.Config, 1),
	}
	v.installCallbacks()
	return v, nil
}

func (v *Viewer) installCallbacks() {
	gw := v.window.GLFWWindow()
	gw.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		v.window.HandleGrabKey(key, action)
	})
	gw.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		v.window.HandleGrabButton(button, action)
	})
	gw.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		v.collector.OnCursorPos(xpos, ypos)
	})
	gw.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		v.collector.OnScroll(xoff, yoff)
	})
	v.window.OnResize(v.renderer.Resize)
	v.window.OnCapture(func(captured bool) {
		if captured {
			v.collector.ResetCursor()
		}
	})
}

// Reload queues cfg to be applied at the start of the next frame. It is safe
// to call from any goroutine; only the latest pending config is kept.
func (v *Viewer) Reload(cfg *config.Config) {
	for {
		select {
		case v.reload <- cfg:
			return
		default:
		}
		select {
		case <-v.reload:
		default:
		}
	}
}

func (v *Viewer) applyPending() {
	select {
	case cfg := <-v.reload:
		if err := v.sim.Apply(cfg); err != nil {
			v.logger.Error().Err(err).Msg("Failed to apply config")
			return
		}
		v.scheduler.Step = cfg.TickInterval()
		v.scheduler.MaxSteps = cfg.Tick.MaxSteps
		v.renderer.SetFOV(cfg.Window.FOV)
		v.logger.Info().Msg("Config reloaded")
	default:
	}
}

// Run drives the demo until the window closes or ctx is cancelled
func (v *Viewer) Run(ctx context.Context) error {
	defer v.cleanup()

	v.logger.Info().Msg("Click to capture the cursor, Escape to release it")

	last := glfw.GetTime()
	for !v.window.ShouldClose() {
		if err := ctx.Err(); err != nil {
			break
		}
		v.window.PollEvents()
		v.applyPending()

		now := glfw.GetTime()
		elapsed := time.Duration((now - last) * float64(time.Second))
		last = now

		v.scheduler.Advance(elapsed, func(dt float32) {
			in := v.collector.Drain(v.window.GLFWWindow(), v.window.Viewport(), v.window.IsMouseCaptured())
			v.sim.Tick(in, dt)
		})

		v.window.Clear(render.ClearColor)
		v.renderer.Draw(v.scene, v.sim.Pose())
		v.window.SwapBuffers()
	}

	v.logger.Info().Uint64("ticks", v.sim.Ticks()).Msg("Viewer stopped")
	return nil
}

func (v *Viewer) cleanup() {
	v.renderer.Cleanup()
	v.window.Close()
}
