package aim

import (
	"errors"

	"github.com/Faultbox/polygon-tps/pkg/math"
)

var (
	// ErrNoViewRay means no view ray could be built this tick, typically
	// because no camera is live yet. The tick is skipped.
	ErrNoViewRay = errors.New("aim: no view ray")
	// ErrMisconfigured marks a shot that could not be spawned because a
	// template or the spawn point is missing.
	ErrMisconfigured = errors.New("aim: controller misconfigured")
)

// EntityID identifies an entity in the host scene.
type EntityID uint64

// EntityRef is a scene entity as seen by the controller.
type EntityRef struct {
	ID  EntityID
	Tag string
}

// SceneHit is the nearest hit reported by a scene query.
type SceneHit struct {
	Point    math.Vec3
	Distance float32
	Entity   EntityRef
}

// FrameInput is the per-tick input snapshot. Fire is a one-shot signal the
// controller clears after every tick.
type FrameInput struct {
	Aim  bool
	Fire bool

	// FocalPoint is the screen point to aim through; nil means the
	// viewport centre.
	FocalPoint *math.Vec2
}

// ResolutionKind tags a TargetResolution.
type ResolutionKind uint8

const (
	// KindMiss means the query found nothing within range.
	KindMiss ResolutionKind = iota
	// KindHit means the query hit an entity.
	KindHit
)

func (k ResolutionKind) String() string {
	if k == KindHit {
		return "hit"
	}
	return "miss"
}

// TargetResolution is either Hit(entity, point) or Miss(point). Point is
// always valid.
type TargetResolution struct {
	Kind  ResolutionKind
	Point math.Vec3

	entity EntityRef
}

// HitAt builds a hit resolution.
func HitAt(entity EntityRef, point math.Vec3) TargetResolution {
	return TargetResolution{Kind: KindHit, Point: point, entity: entity}
}

// MissAt builds a miss resolution.
func MissAt(point math.Vec3) TargetResolution {
	return TargetResolution{Kind: KindMiss, Point: point}
}

// Entity returns the hit entity; ok is false on a miss.
func (r TargetResolution) Entity() (entity EntityRef, ok bool) {
	return r.entity, r.Kind == KindHit
}

// State is the persistent aim pose owned by a controller.
type State struct {
	LayerWeight float32
	RigWeight   float32
	Facing      math.Vec3
}

// ShotKind reports what a tick's fire dispatch produced.
type ShotKind uint8

const (
	ShotNone ShotKind = iota
	ShotHitEffect
	ShotMissEffect
	ShotProjectile
)

func (k ShotKind) String() string {
	switch k {
	case ShotHitEffect:
		return "hit_effect"
	case ShotMissEffect:
		return "miss_effect"
	case ShotProjectile:
		return "projectile"
	default:
		return "none"
	}
}

// Phase is the fire dispatcher's state for a tick.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseHitScan
	PhaseProjectile
)

// Shot is the outcome of a dispatch.
type Shot struct {
	Phase  Phase // Branch taken; PhaseIdle when nothing was dispatched
	Kind   ShotKind
	Entity EntityID // Spawned entity when Kind != ShotNone
}

// TickReport summarises one controller tick.
type TickReport struct {
	Resolution TargetResolution
	Aiming     bool
	Shot       Shot

	// Skipped is set when targeting failed and the remaining steps did
	// not run.
	Skipped bool
	// Err carries the skip reason or a firing misconfiguration.
	Err error
}
