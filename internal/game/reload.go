package game

import (
	"go.uber.org/zap"

	"github.com/Faultbox/polygon-tps/internal/config"
	"github.com/Faultbox/polygon-tps/internal/scene"
	"github.com/Faultbox/polygon-tps/pkg/math"
)

// loadLayout reads the configured layout, or the built-in range when none
// is set.
func loadLayout(path string) (*scene.Layout, error) {
	if path == "" {
		return defaultRange(), nil
	}
	return scene.LoadLayout(path)
}

// defaultRange is a small shooting range: a target dummy straight ahead, a
// crate off to the side on layer 2 and a back wall.
func defaultRange() *scene.Layout {
	return &scene.Layout{Boxes: []scene.Box{
		{Name: "back_wall", Min: math.Vec3{X: -20, Z: 30}, Max: math.Vec3{X: 20, Y: 6, Z: 31}},
		{Name: "dummy", Min: math.Vec3{X: -1, Z: 10}, Max: math.Vec3{X: 1, Y: 2, Z: 10.5}, Tag: "Target"},
		{Name: "crate", Min: math.Vec3{X: 3, Z: 6}, Max: math.Vec3{X: 4, Y: 1, Z: 7}, Layer: 2, Tag: "Crate"},
	}}
}

// pollReload applies a pending config change. It runs between ticks so the
// controller never sees settings change mid-tick.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	select {
	case path, ok := <-g.watcher.Events:
		if ok {
			g.reload(path)
		}
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.log.Warn("config watcher error", zap.Error(err))
		}
	default:
	}
}

// Reload re-reads the config file and applies the controller and camera
// tuning. Scene layout, viewport, character and tick rate are fixed for a
// run.
func (g *Game) Reload() error {
	cfg, err := config.LoadFile(g.configPath)
	if err != nil {
		return err
	}
	g.apply(cfg)
	return nil
}

func (g *Game) reload(path string) {
	if err := g.Reload(); err != nil {
		g.log.Warn("config reload failed, keeping current settings", zap.String("path", path), zap.Error(err))
	}
}

func (g *Game) apply(cfg *config.Config) {
	if err := cfg.Validate(); err != nil {
		g.log.Warn("reloaded config incomplete", zap.Error(err))
	}

	settings := cfg.Controller.Settings()
	g.controller.Reconfigure(settings)
	g.world.SetImpactRule(impactRule(settings))

	if cam := g.brain.Camera(followCamera); cam != nil {
		cam.Priority = cfg.Camera.Follow.Priority
		cam.Lens = cfg.Camera.Follow.Lens()
	}
	if cam := g.brain.Camera(aimCamera); cam != nil {
		cam.Priority = cfg.Camera.Aim.Priority
		cam.Lens = cfg.Camera.Aim.Lens()
	}
	g.brain.BlendRate = cfg.Camera.BlendRate

	// Keep what the running game was built from.
	cfg.Scene = g.cfg.Scene
	cfg.Viewport = g.cfg.Viewport
	cfg.Character = g.cfg.Character
	cfg.Sim.TickRate = g.cfg.Sim.TickRate
	g.cfg = cfg
	g.stats.Reloads++
}
