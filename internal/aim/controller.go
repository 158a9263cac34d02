package aim

import (
	"errors"

	"go.uber.org/zap"
)

// Controller is the aim/shoot controller. It is driven by Tick from the
// host's fixed update loop and is not safe for concurrent use.
type Controller struct {
	settings Settings
	state    State
	input    InputSource

	resolver   *TargetResolver
	blender    *AimStateBlender
	dispatcher *FireDispatcher

	log *zap.Logger
}

// Option customises a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a controller. It fails only when a required collaborator is
// missing; incomplete firing setup is logged and tolerated.
func New(settings Settings, deps Deps, opts ...Option) (*Controller, error) {
	var missing []error
	if deps.Scene == nil {
		missing = append(missing, errors.New("aim: scene query is required"))
	}
	if deps.View == nil {
		missing = append(missing, errors.New("aim: view ray source is required"))
	}
	if deps.Viewport == nil {
		missing = append(missing, errors.New("aim: viewport is required"))
	}
	if deps.Body == nil {
		missing = append(missing, errors.New("aim: body is required"))
	}
	if err := errors.Join(missing...); err != nil {
		return nil, err
	}

	c := &Controller{
		settings: settings,
		input:    deps.Input,
		log:      zap.NewNop(),
	}
	c.state = State{Facing: deps.Body.Forward()}
	if deps.Animator != nil {
		c.state.LayerWeight = deps.Animator.LayerWeight(settings.AimLayer)
	}
	if deps.Rig != nil {
		c.state.RigWeight = deps.Rig.Weight()
	}
	for _, opt := range opts {
		opt(c)
	}

	c.resolver = NewTargetResolver(deps.Scene, deps.View, deps.Viewport, deps.Marker)
	c.blender = NewAimStateBlender(deps)
	c.dispatcher = NewFireDispatcher(deps.Spawner, deps.SpawnPoint, c.log)

	if err := settings.Validate(); err != nil {
		c.log.Warn("aim settings incomplete", zap.Error(err))
	}
	return c, nil
}

// Settings returns the active settings.
func (c *Controller) Settings() Settings {
	return c.settings
}

// State returns a copy of the persistent aim state.
func (c *Controller) State() State {
	return c.state
}

// Reconfigure swaps the settings. Call it between ticks only.
func (c *Controller) Reconfigure(s Settings) {
	if err := s.Validate(); err != nil {
		c.log.Warn("aim settings incomplete", zap.Error(err))
	}
	c.settings = s
	c.log.Info("aim settings reloaded", zap.Stringer("fire_mode", s.FireMode))
}

// Update ticks with the frame from the configured InputSource.
func (c *Controller) Update(dt float32) TickReport {
	var in *FrameInput
	if c.input != nil {
		in = c.input.Frame()
	}
	return c.Tick(dt, in)
}

// Tick runs target resolution, aim blending and fire dispatch in order.
// in.Fire is always false when Tick returns. When no view ray is available
// the remaining steps are skipped and the aim state is left untouched.
func (c *Controller) Tick(dt float32, in *FrameInput) TickReport {
	if in == nil {
		in = &FrameInput{}
	}
	report := TickReport{Aiming: in.Aim}

	res, err := c.resolver.Resolve(in.FocalPoint, &c.settings)
	if err != nil {
		in.Fire = false
		report.Skipped = true
		report.Err = err
		c.log.Debug("tick skipped", zap.Error(err))
		return report
	}
	report.Resolution = res

	c.blender.Blend(dt, in.Aim, res.Point, &c.state, &c.settings)

	report.Shot, report.Err = c.dispatcher.Dispatch(in, res, &c.settings)
	return report
}
