// Package config handles simulator configuration loading and management.
package config

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/polygon-tps/internal/aim"
	"github.com/Faultbox/polygon-tps/internal/engine/camera"
	"github.com/Faultbox/polygon-tps/pkg/math"
)

// Config holds all simulator settings.
type Config struct {
	Controller ControllerConfig `yaml:"controller"`
	Viewport   ViewportConfig   `yaml:"viewport"`
	Camera     CameraConfig     `yaml:"camera"`
	Character  CharacterConfig  `yaml:"character"`
	Scene      SceneConfig      `yaml:"scene"`
	Sim        SimConfig        `yaml:"sim"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ControllerConfig holds the aim/shoot controller tuning.
type ControllerConfig struct {
	LookSensitivity float32      `yaml:"look_sensitivity"`
	AimSensitivity  float32      `yaml:"aim_sensitivity"`
	FireMode        aim.FireMode `yaml:"fire_mode"`

	Layers           []int   `yaml:"layers"` // Collision layers to aim at; empty means all
	MaxDistance      float32 `yaml:"max_distance"`
	FallbackDistance float32 `yaml:"fallback_distance"`

	FacingRate float32 `yaml:"facing_rate"`
	LayerRate  float32 `yaml:"layer_rate"`
	RigRate    float32 `yaml:"rig_rate"`
	AimLayer   int     `yaml:"aim_layer"`

	TargetTag  string `yaml:"target_tag"`
	HitEffect  string `yaml:"hit_effect"`
	MissEffect string `yaml:"miss_effect"`
	Projectile string `yaml:"projectile"`

	RequireAimToFire bool `yaml:"require_aim_to_fire"`
	UseRig           bool `yaml:"use_rig"`
}

// ViewportConfig holds the virtual screen size.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LensConfig holds one virtual camera.
type LensConfig struct {
	Priority   int     `yaml:"priority"`
	Distance   float32 `yaml:"distance"`
	Shoulder   float32 `yaml:"shoulder"`
	LookHeight float32 `yaml:"look_height"`
	FOV        float32 `yaml:"fov"` // Degrees
}

// CameraConfig holds the follow and aim cameras.
type CameraConfig struct {
	Follow    LensConfig `yaml:"follow"`
	Aim       LensConfig `yaml:"aim"`
	BlendRate float32    `yaml:"blend_rate"`
	Pitch     float32    `yaml:"pitch"` // Initial pitch, radians
}

// CharacterConfig holds the controlled body.
type CharacterConfig struct {
	Start        math.Vec3 `yaml:"start"`
	Facing       math.Vec3 `yaml:"facing"`
	MoveSpeed    float32   `yaml:"move_speed"`
	TurnRate     float32   `yaml:"turn_rate"`
	MuzzleOffset math.Vec3 `yaml:"muzzle_offset"`
}

// SceneConfig holds the scene layout.
type SceneConfig struct {
	Layout string `yaml:"layout"` // .yaml or .tmx; empty uses the built-in range
}

// SimConfig holds the headless loop settings.
type SimConfig struct {
	TickRate int    `yaml:"tick_rate"`
	Ticks    int    `yaml:"ticks"`
	Script   string `yaml:"script"` // tengo input script
	Watch    bool   `yaml:"watch"`  // Reload the config file on change
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	s := aim.DefaultSettings()
	return &Config{
		Controller: ControllerConfig{
			LookSensitivity:  s.LookSensitivity,
			AimSensitivity:   s.AimSensitivity,
			FireMode:         s.FireMode,
			MaxDistance:      s.MaxDistance,
			FallbackDistance: s.FallbackDistance,
			FacingRate:       s.FacingRate,
			LayerRate:        s.LayerRate,
			RigRate:          s.RigRate,
			AimLayer:         s.AimLayer,
			TargetTag:        s.TargetTag,
			HitEffect:        s.Templates.HitEffect,
			MissEffect:       s.Templates.MissEffect,
			Projectile:       s.Templates.Projectile,
			RequireAimToFire: s.RequireAimToFire,
			UseRig:           s.UseRig,
		},
		Viewport: ViewportConfig{
			Width:  1280,
			Height: 720,
		},
		Camera: CameraConfig{
			Follow:    LensConfig{Priority: 10, Distance: 4.5, Shoulder: 0.5, LookHeight: 1.6, FOV: 60},
			Aim:       LensConfig{Priority: 20, Distance: 1.8, Shoulder: 0.7, LookHeight: 1.6, FOV: 40},
			BlendRate: 8,
			Pitch:     0.08,
		},
		Character: CharacterConfig{
			Facing:       math.Forward,
			MoveSpeed:    4,
			TurnRate:     12,
			MuzzleOffset: math.Vec3{X: -0.3, Y: 1.4, Z: 0.6},
		},
		Sim: SimConfig{
			TickRate: 60,
			Ticks:    600,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Settings converts the controller section into controller settings.
func (c ControllerConfig) Settings() aim.Settings {
	mask := aim.AllLayers
	if len(c.Layers) > 0 {
		mask = aim.MaskOf(c.Layers...)
	}
	return aim.Settings{
		LookSensitivity:  c.LookSensitivity,
		AimSensitivity:   c.AimSensitivity,
		FireMode:         c.FireMode,
		Mask:             mask,
		MaxDistance:      c.MaxDistance,
		FallbackDistance: c.FallbackDistance,
		FacingRate:       c.FacingRate,
		LayerRate:        c.LayerRate,
		RigRate:          c.RigRate,
		AimLayer:         c.AimLayer,
		TargetTag:        c.TargetTag,
		Templates: aim.Templates{
			HitEffect:  c.HitEffect,
			MissEffect: c.MissEffect,
			Projectile: c.Projectile,
		},
		RequireAimToFire: c.RequireAimToFire,
		UseRig:           c.UseRig,
	}
}

// Size returns the viewport in pixels.
func (v ViewportConfig) Size() (width, height int) {
	return v.Width, v.Height
}

// Lens converts the config into a camera lens.
func (l LensConfig) Lens() camera.Lens {
	return camera.Lens{
		Distance:   l.Distance,
		Shoulder:   l.Shoulder,
		LookHeight: l.LookHeight,
		FOV:        l.FOV * gomath.Pi / 180,
	}
}

// Validate reports every setting the simulator cannot run with as
// configured.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Controller.Settings().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("controller: %w", err))
	}
	for _, l := range c.Controller.Layers {
		if l < 0 || l > 31 {
			errs = append(errs, fmt.Errorf("controller: layer %d out of range 0-31", l))
		}
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport: size %dx%d has no area", c.Viewport.Width, c.Viewport.Height))
	}
	if c.Camera.Follow.FOV <= 0 || c.Camera.Aim.FOV <= 0 {
		errs = append(errs, errors.New("camera: fov must be positive"))
	}
	if c.Sim.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("sim: tick rate must be positive, got %d", c.Sim.TickRate))
	}
	return errors.Join(errs...)
}
