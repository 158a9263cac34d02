// Package camera provides the third-person camera rig, its virtual cameras
// and the brain that turns screen points into view rays.
package camera

import (
	gomath "math"

	"github.com/Faultbox/polygon-tps/pkg/math"
)

// Lens describes how a virtual camera frames the follow target.
type Lens struct {
	Distance   float32 // Distance behind the look point
	Shoulder   float32 // Lateral offset along the camera's right axis
	LookHeight float32 // Height of the look point above the follow target
	FOV        float32 // Vertical field of view in radians
}

// Lerp eases every lens parameter toward other by t.
func (l Lens) Lerp(other Lens, t float32) Lens {
	return Lens{
		Distance:   math.Lerp(l.Distance, other.Distance, t),
		Shoulder:   math.Lerp(l.Shoulder, other.Shoulder, t),
		LookHeight: math.Lerp(l.LookHeight, other.LookHeight, t),
		FOV:        math.Lerp(l.FOV, other.FOV, t),
	}
}

// ThirdPersonCamera holds the orbit pose shared by all virtual cameras.
type ThirdPersonCamera struct {
	Yaw   float32 // Horizontal rotation around target (radians)
	Pitch float32 // Vertical angle (radians), positive looks down

	MinPitch float32
	MaxPitch float32

	// Radians per unit of look input, before sensitivity scaling.
	YawSensitivity   float32
	PitchSensitivity float32
}

// NewThirdPersonCamera creates a rig pose with shooter-style defaults.
func NewThirdPersonCamera() *ThirdPersonCamera {
	return &ThirdPersonCamera{
		Yaw:              0,
		Pitch:            0.15,
		MinPitch:         -1.2,
		MaxPitch:         1.4,
		YawSensitivity:   0.005,
		PitchSensitivity: 0.005,
	}
}

// LookPoint returns the point the camera looks at for the given lens.
func (c *ThirdPersonCamera) LookPoint(target math.Vec3, lens Lens) math.Vec3 {
	rx, rz := c.RightDirection()
	return math.Vec3{
		X: target.X + rx*lens.Shoulder,
		Y: target.Y + lens.LookHeight,
		Z: target.Z + rz*lens.Shoulder,
	}
}

// Position calculates camera position for the given follow target and lens.
func (c *ThirdPersonCamera) Position(target math.Vec3, lens Lens) math.Vec3 {
	look := c.LookPoint(target, lens)

	offsetY := lens.Distance * float32(gomath.Sin(float64(c.Pitch)))
	horizDist := lens.Distance * float32(gomath.Cos(float64(c.Pitch)))
	offsetX := horizDist * float32(gomath.Sin(float64(c.Yaw)))
	offsetZ := horizDist * float32(gomath.Cos(float64(c.Yaw)))

	// Behind and above the look point
	return math.Vec3{
		X: look.X - offsetX,
		Y: look.Y + offsetY,
		Z: look.Z - offsetZ,
	}
}

// ViewMatrix returns the view matrix looking from Position to LookPoint.
func (c *ThirdPersonCamera) ViewMatrix(target math.Vec3, lens Lens) math.Mat4 {
	return math.LookAt(c.Position(target, lens), c.LookPoint(target, lens), math.Up)
}

// HandleLook applies look input already scaled by the player's sensitivity.
func (c *ThirdPersonCamera) HandleLook(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.YawSensitivity
	c.Pitch += deltaY * c.PitchSensitivity

	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// ForwardDirection returns the camera's forward direction on the XZ plane.
func (c *ThirdPersonCamera) ForwardDirection() (x, z float32) {
	return float32(gomath.Sin(float64(c.Yaw))), float32(gomath.Cos(float64(c.Yaw)))
}

// RightDirection returns the camera's right direction on the XZ plane.
func (c *ThirdPersonCamera) RightDirection() (x, z float32) {
	return float32(-gomath.Cos(float64(c.Yaw))), float32(gomath.Sin(float64(c.Yaw)))
}
