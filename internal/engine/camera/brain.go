package camera

import (
	"errors"

	"github.com/Faultbox/polygon-tps/internal/engine/picking"
	"github.com/Faultbox/polygon-tps/pkg/math"
)

var (
	// ErrNoLiveCamera is returned when no virtual camera is active.
	ErrNoLiveCamera = errors.New("camera: no live virtual camera")
	// ErrEmptyViewport is returned for a viewport without area.
	ErrEmptyViewport = errors.New("camera: viewport has no area")
)

const (
	nearPlane = 0.1
	farPlane  = 2000
)

// VirtualCamera is a named lens that can be switched on and off.
// The brain renders through the highest-priority active camera.
type VirtualCamera struct {
	Name     string
	Priority int
	Lens     Lens

	active bool
}

// NewVirtualCamera creates a virtual camera.
func NewVirtualCamera(name string, priority int, lens Lens, active bool) *VirtualCamera {
	return &VirtualCamera{Name: name, Priority: priority, Lens: lens, active: active}
}

// SetActive switches the camera on or off.
func (v *VirtualCamera) SetActive(active bool) {
	v.active = active
}

// Active reports whether the camera is switched on.
func (v *VirtualCamera) Active() bool {
	return v.active
}

// Brain picks the live virtual camera and blends the rendered lens toward it.
type Brain struct {
	Rig       *ThirdPersonCamera
	BlendRate float32 // Fraction of the lens gap closed per second

	cameras []*VirtualCamera
	follow  math.Vec3
	lens    Lens
	primed  bool
}

// NewBrain creates a brain over the given rig.
func NewBrain(rig *ThirdPersonCamera, blendRate float32) *Brain {
	return &Brain{Rig: rig, BlendRate: blendRate}
}

// Add registers a virtual camera.
func (b *Brain) Add(cam *VirtualCamera) {
	b.cameras = append(b.cameras, cam)
}

// Camera returns the registered camera with the given name, or nil.
func (b *Brain) Camera(name string) *VirtualCamera {
	for _, c := range b.cameras {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Live returns the highest-priority active camera. Ties go to the camera
// registered first.
func (b *Brain) Live() *VirtualCamera {
	var live *VirtualCamera
	for _, c := range b.cameras {
		if !c.active {
			continue
		}
		if live == nil || c.Priority > live.Priority {
			live = c
		}
	}
	return live
}

// SetFollow sets the follow target position.
func (b *Brain) SetFollow(pos math.Vec3) {
	b.follow = pos
}

// Lens returns the lens currently rendered.
func (b *Brain) Lens() Lens {
	return b.lens
}

// Update blends the rendered lens toward the live camera.
func (b *Brain) Update(dt float32) {
	live := b.Live()
	if live == nil {
		return
	}
	if !b.primed {
		b.lens = live.Lens
		b.primed = true
		return
	}
	b.lens = b.lens.Lerp(live.Lens, b.BlendRate*dt)
}

// Position returns the world position of the rendered camera.
func (b *Brain) Position() math.Vec3 {
	return b.Rig.Position(b.follow, b.lens)
}

// ScreenPointToRay builds the view ray through a screen point using the
// rendered lens. It fails when no camera is live or the viewport is empty.
func (b *Brain) ScreenPointToRay(screen math.Vec2, w, h int) (picking.Ray, error) {
	if !b.primed || b.Live() == nil {
		return picking.Ray{}, ErrNoLiveCamera
	}
	if w <= 0 || h <= 0 {
		return picking.Ray{}, ErrEmptyViewport
	}

	proj := math.Perspective(b.lens.FOV, float32(w)/float32(h), nearPlane, farPlane)
	view := b.Rig.ViewMatrix(b.follow, b.lens)
	inv := proj.Mul(view).Inverse()

	return picking.ScreenToRay(screen.X, screen.Y, float32(w), float32(h), inv), nil
}
