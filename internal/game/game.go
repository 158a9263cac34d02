// Package game runs the aim controller headlessly in a fixed-step loop
// against the reference scene, camera rig and locomotion body.
package game

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/polygon-tps/internal/aim"
	"github.com/Faultbox/polygon-tps/internal/config"
	"github.com/Faultbox/polygon-tps/internal/engine/animation"
	"github.com/Faultbox/polygon-tps/internal/engine/camera"
	"github.com/Faultbox/polygon-tps/internal/engine/input"
	"github.com/Faultbox/polygon-tps/internal/locomotion"
	"github.com/Faultbox/polygon-tps/internal/logger"
	"github.com/Faultbox/polygon-tps/internal/scene"
)

const (
	followCamera = "follow"
	aimCamera    = "aim"
	animLayers   = 2
)

// Option customises a Game.
type Option func(*Game)

// WithLogger sets the game's logger.
func WithLogger(log *zap.Logger) Option {
	return func(g *Game) {
		if log != nil {
			g.log = log
		}
	}
}

// WithConfigPath records the file cfg was loaded from, enabling reloads.
func WithConfigPath(path string) Option {
	return func(g *Game) {
		g.configPath = path
	}
}

// WithScript drives input from a compiled script instead of Push.
func WithScript(s *input.Script) Option {
	return func(g *Game) {
		g.script = s
	}
}

// Game is the headless host.
type Game struct {
	cfg        *config.Config
	configPath string
	log        *zap.Logger

	world     *scene.World
	rig       *camera.ThirdPersonCamera
	brain     *camera.Brain
	animator  *animation.Animator
	aimRig    *animation.Rig
	body      *locomotion.Character
	crosshair *Crosshair

	input  *input.State
	script *input.Script

	controller *aim.Controller
	watcher    *Watcher

	tick  int
	stats Stats
}

// New builds the scene, rig, body and controller from cfg.
func New(cfg *config.Config, opts ...Option) (*Game, error) {
	g := &Game{
		cfg:       cfg,
		log:       logger.Named("game"),
		crosshair: &Crosshair{},
		input:     input.New(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := cfg.Validate(); err != nil {
		// Misconfigured templates still run; shots become no-ops.
		if !onlyMisconfigured(err) {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		g.log.Warn("config incomplete", zap.Error(err))
	}

	settings := cfg.Controller.Settings()
	g.world = scene.NewWorld(scene.DefaultCatalog(), impactRule(settings), g.log.Named("scene"))
	layout, err := loadLayout(cfg.Scene.Layout)
	if err != nil {
		return nil, err
	}
	layout.Apply(g.world)

	g.rig = camera.NewThirdPersonCamera()
	g.rig.Pitch = cfg.Camera.Pitch
	g.brain = camera.NewBrain(g.rig, cfg.Camera.BlendRate)
	g.brain.Add(camera.NewVirtualCamera(followCamera, cfg.Camera.Follow.Priority, cfg.Camera.Follow.Lens(), true))
	g.brain.Add(camera.NewVirtualCamera(aimCamera, cfg.Camera.Aim.Priority, cfg.Camera.Aim.Lens(), false))

	g.animator = animation.NewAnimator(animLayers)
	g.aimRig = &animation.Rig{}
	g.body = locomotion.New(cfg.Character.Start, cfg.Character.Facing, g.rig, locomotion.Tuning{
		MoveSpeed:    cfg.Character.MoveSpeed,
		TurnRate:     cfg.Character.TurnRate,
		MuzzleOffset: cfg.Character.MuzzleOffset,
	})
	g.body.SetGround(scene.NewGround(layout, scene.DefaultCellSize, scene.DefaultStepHeight))

	if g.script == nil && cfg.Sim.Script != "" {
		if g.script, err = input.LoadScript(cfg.Sim.Script); err != nil {
			return nil, err
		}
	}
	if g.script != nil {
		g.log.Info("input script loaded", zap.String("path", g.script.Path()))
	}

	g.controller, err = aim.New(settings, g.deps(), aim.WithLogger(g.log.Named("aim")))
	if err != nil {
		return nil, err
	}

	if cfg.Sim.Watch && g.configPath != "" {
		if g.watcher, err = NewWatcher(g.configPath); err != nil {
			return nil, fmt.Errorf("watch %s: %w", g.configPath, err)
		}
		g.log.Info("watching config", zap.String("path", g.configPath))
	}

	g.log.Info("game initialized",
		zap.Stringer("fire_mode", settings.FireMode),
		zap.Bool("require_aim", settings.RequireAimToFire),
		zap.Bool("rig", settings.UseRig),
		zap.Int("colliders", g.world.Counts().Colliders),
	)
	return g, nil
}

func (g *Game) deps() aim.Deps {
	return aim.Deps{
		Input:      g.input,
		Scene:      g.world,
		View:       g.brain,
		Viewport:   g.cfg.Viewport,
		Body:       g.body,
		Locomotion: g.body,
		AimCamera:  g.brain.Camera(aimCamera),
		Animator:   g.animator,
		Rig:        g.aimRig,
		Crosshair:  g.crosshair,
		Marker:     g.world,
		Spawner:    g.world,
		SpawnPoint: g.body.Muzzle(),
	}
}

func onlyMisconfigured(err error) bool {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return errors.Is(err, aim.ErrMisconfigured)
	}
	for _, e := range joined.Unwrap() {
		if !onlyMisconfigured(e) {
			return false
		}
	}
	return true
}

func impactRule(s aim.Settings) scene.ImpactRule {
	return scene.ImpactRule{
		TargetTag:  s.TargetTag,
		HitEffect:  s.Templates.HitEffect,
		MissEffect: s.Templates.MissEffect,
		Mask:       s.Mask,
	}
}

// Input returns the input state for pushing events directly.
func (g *Game) Input() *input.State {
	return g.input
}

// World returns the scene.
func (g *Game) World() *scene.World {
	return g.world
}

// Controller returns the aim controller.
func (g *Game) Controller() *aim.Controller {
	return g.controller
}

// Body returns the controlled character.
func (g *Game) Body() *locomotion.Character {
	return g.body
}

// Brain returns the camera brain.
func (g *Game) Brain() *camera.Brain {
	return g.brain
}

// Crosshair returns the crosshair.
func (g *Game) Crosshair() *Crosshair {
	return g.crosshair
}

// Stats returns the counters so far.
func (g *Game) Stats() Stats {
	return g.stats
}

// Step advances the simulation by one fixed tick of dt seconds.
func (g *Game) Step(dt float32) (aim.TickReport, error) {
	// 1. Sample input
	if g.script != nil {
		events, err := g.script.Poll(g.tick, dt)
		if err != nil {
			return aim.TickReport{}, err
		}
		for _, e := range events {
			g.input.Push(e)
		}
	}
	g.input.Update()

	// 2. Locomotion and camera
	look := g.input.TakeLook()
	g.body.Look(look.X, look.Y)
	move := g.input.Movement()
	g.body.Move(move.X, move.Y, dt)
	g.brain.SetFollow(g.body.Position())
	g.brain.Update(dt)

	// 3. Aim controller
	report := g.controller.Update(dt)
	g.stats.record(report)
	if report.Shot.Kind != aim.ShotNone {
		g.log.Debug("shot",
			zap.Int("tick", g.tick),
			zap.Stringer("kind", report.Shot.Kind),
			zap.Stringer("target", report.Resolution.Kind),
			logger.Vec3("point", report.Resolution.Point),
		)
	}
	if report.Err != nil && !report.Skipped {
		g.log.Debug("shot dropped", zap.Int("tick", g.tick), zap.Error(report.Err))
	}

	// 4. Scene systems
	impacts := g.world.Update(dt)
	g.stats.Impacts += len(impacts)

	// 5. Config reload at the tick boundary
	g.pollReload()

	g.tick++
	return report, nil
}

// Run steps the simulation ticks times at the configured tick rate.
func (g *Game) Run(ticks int) error {
	dt := float32(1) / float32(g.cfg.Sim.TickRate)
	g.log.Info("starting simulation", zap.Int("ticks", ticks), zap.Float32("dt", dt))

	for i := 0; i < ticks; i++ {
		if _, err := g.Step(dt); err != nil {
			return fmt.Errorf("tick %d: %w", g.tick, err)
		}
	}

	g.log.Info("simulation finished", statsField(g.stats))
	return nil
}

// Close releases the config watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.log.Info("closing game")
}
