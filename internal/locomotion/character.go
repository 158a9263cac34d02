// Package locomotion moves the controlled character relative to the camera
// rig and exposes the body transform the aim controller steers.
package locomotion

import (
	"github.com/Faultbox/polygon-tps/internal/engine/camera"
	"github.com/Faultbox/polygon-tps/pkg/math"
)

// DefaultMoveSpeed is the default movement speed in world units per second.
const DefaultMoveSpeed = 4.0

// DefaultTurnRate is how fast the body turns toward its move direction,
// as a fraction of the remaining angle per second.
const DefaultTurnRate = 12.0

// Ground provides height and walkability for movement. A nil Ground is an
// infinite flat plane at the starting height.
type Ground interface {
	IsWalkable(x, z float32) bool
	Height(x, z float32) float32
}

// Tuning configures a Character.
type Tuning struct {
	MoveSpeed    float32
	TurnRate     float32
	MuzzleOffset math.Vec3 // Spawn point in body space: Z forward, Y up, X along up×forward
}

// Character is a third-person body driven by move and look input.
type Character struct {
	pos     math.Vec3
	forward math.Vec3

	rig    *camera.ThirdPersonCamera
	ground Ground
	tuning Tuning

	sensitivity  float32
	rotateOnMove bool
	moving       bool
}

// New creates a character at pos facing forward, looking through rig.
func New(pos, forward math.Vec3, rig *camera.ThirdPersonCamera, tuning Tuning) *Character {
	if tuning.MoveSpeed == 0 {
		tuning.MoveSpeed = DefaultMoveSpeed
	}
	if tuning.TurnRate == 0 {
		tuning.TurnRate = DefaultTurnRate
	}
	c := &Character{
		pos:          pos,
		forward:      math.Forward,
		rig:          rig,
		tuning:       tuning,
		sensitivity:  1,
		rotateOnMove: true,
	}
	c.SetForward(forward)
	return c
}

// SetGround sets the ground used to clamp movement.
func (c *Character) SetGround(g Ground) {
	c.ground = g
}

// Position returns the body position.
func (c *Character) Position() math.Vec3 {
	return c.pos
}

// Forward returns the horizontal unit facing.
func (c *Character) Forward() math.Vec3 {
	return c.forward
}

// SetForward sets the facing, flattened onto the ground plane. Vertical or
// zero directions are ignored.
func (c *Character) SetForward(forward math.Vec3) {
	f := forward.WithY(0).Normalize()
	if f.IsZero() {
		return
	}
	c.forward = f
}

// SetSensitivity scales look input.
func (c *Character) SetSensitivity(sensitivity float32) {
	c.sensitivity = sensitivity
}

// Sensitivity returns the current look scale.
func (c *Character) Sensitivity() float32 {
	return c.sensitivity
}

// SetRotateOnMove controls whether moving turns the body.
func (c *Character) SetRotateOnMove(enabled bool) {
	c.rotateOnMove = enabled
}

// RotateOnMove reports whether moving turns the body.
func (c *Character) RotateOnMove() bool {
	return c.rotateOnMove
}

// IsMoving reports whether the last Move changed the position.
func (c *Character) IsMoving() bool {
	return c.moving
}

// Look turns the camera rig by look input scaled by the current sensitivity.
func (c *Character) Look(dx, dy float32) {
	if c.rig == nil {
		return
	}
	c.rig.HandleLook(dx*c.sensitivity, dy*c.sensitivity)
}

// Move walks the body by stick input for dt seconds. moveZ pushes along the
// camera's forward and moveX along its right.
func (c *Character) Move(moveX, moveZ, dt float32) {
	c.moving = false

	input := math.Vec2{X: moveX, Y: moveZ}
	if l := input.Length(); l > 1 {
		input = input.Scale(1 / l)
	} else if l == 0 {
		return
	}

	fx, fz := float32(0), float32(1)
	rx, rz := float32(-1), float32(0)
	if c.rig != nil {
		fx, fz = c.rig.ForwardDirection()
		rx, rz = c.rig.RightDirection()
	}
	dir := math.Vec3{
		X: fx*input.Y + rx*input.X,
		Z: fz*input.Y + rz*input.X,
	}

	step := dir.Scale(c.tuning.MoveSpeed * dt)
	next := c.pos.Add(step)
	if c.ground != nil {
		if !c.ground.IsWalkable(next.X, next.Z) {
			return
		}
		next.Y = c.ground.Height(next.X, next.Z)
	}
	c.pos = next
	c.moving = true

	if c.rotateOnMove {
		c.turnToward(dir.Normalize(), dt)
	}
}

func (c *Character) turnToward(dir math.Vec3, dt float32) {
	c.forward = c.forward.TurnToward(dir, c.tuning.TurnRate*dt)
}

// Muzzle is the projectile spawn point attached to a character.
type Muzzle struct {
	body *Character
}

// Muzzle returns the character's projectile spawn point.
func (c *Character) Muzzle() Muzzle {
	return Muzzle{body: c}
}

// Position returns the spawn point in world space.
func (m Muzzle) Position() math.Vec3 {
	rot := math.LookRotation(m.body.forward, math.Up)
	return m.body.pos.Add(rot.Rotate(m.body.tuning.MuzzleOffset))
}
