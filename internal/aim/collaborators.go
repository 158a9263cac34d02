package aim

import (
	"github.com/Faultbox/polygon-tps/internal/engine/picking"
	"github.com/Faultbox/polygon-tps/pkg/math"
)

// InputSource hands out the live input snapshot. The controller clears
// Fire on it after every tick.
type InputSource interface {
	Frame() *FrameInput
}

// SceneQuery finds the nearest collider along a ray.
type SceneQuery interface {
	QueryNearestHit(ray picking.Ray, maxDistance float32, mask LayerMask) (SceneHit, bool)
}

// ViewRaySource builds the view ray through a screen point.
type ViewRaySource interface {
	ScreenPointToRay(screen math.Vec2, width, height int) (picking.Ray, error)
}

// Viewport reports the pixel size used for the default focal point.
type Viewport interface {
	Size() (width, height int)
}

// CameraSwitch turns a virtual camera on or off.
type CameraSwitch interface {
	SetActive(active bool)
}

// AnimationLayers reads and writes animator layer weights.
type AnimationLayers interface {
	LayerWeight(layer int) float32
	SetLayerWeight(layer int, weight float32)
}

// RigChannel is the rig blend weight.
type RigChannel interface {
	Weight() float32
	SetWeight(weight float32)
}

// Locomotion is the movement controller's tuning surface.
type Locomotion interface {
	SetSensitivity(sensitivity float32)
	SetRotateOnMove(enabled bool)
}

// Body is the controlled character's transform.
type Body interface {
	Position() math.Vec3
	Forward() math.Vec3
	SetForward(forward math.Vec3)
}

// Spawner instantiates templates in the scene.
type Spawner interface {
	Spawn(template string, position math.Vec3, rotation math.Quat) (EntityID, error)
}

// Marker is the debug transform that tracks the aim point.
type Marker interface {
	SetPosition(position math.Vec3)
}

// Visibility toggles a visual such as the crosshair.
type Visibility interface {
	SetVisible(visible bool)
}

// Anchor is a transform that only needs to report where it is, such as the
// projectile spawn point.
type Anchor interface {
	Position() math.Vec3
}

// Deps wires a controller to its host. Scene, View, Viewport and Body are
// required; everything else may be nil.
type Deps struct {
	Input    InputSource
	Scene    SceneQuery
	View     ViewRaySource
	Viewport Viewport
	Body     Body

	Locomotion Locomotion
	AimCamera  CameraSwitch
	Animator   AnimationLayers
	Rig        RigChannel
	Crosshair  Visibility
	Marker     Marker // Also toggled when it implements Visibility

	Spawner    Spawner
	SpawnPoint Anchor
}
