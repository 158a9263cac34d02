package aim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/polygon-tps/pkg/math"
)

// FireDispatcher consumes fire-intent and spawns the shot.
//
//	Idle -> (fire & preconditions) -> HitScan | Projectile -> Idle
//
// Fire-intent is cleared on the way back to Idle whether or not anything
// was spawned.
type FireDispatcher struct {
	spawner    Spawner
	spawnPoint Anchor
	log        *zap.Logger
}

// NewFireDispatcher creates a dispatcher. spawner and spawnPoint may be nil;
// shots that need them become logged no-ops.
func NewFireDispatcher(spawner Spawner, spawnPoint Anchor, log *zap.Logger) *FireDispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &FireDispatcher{spawner: spawner, spawnPoint: spawnPoint, log: log}
}

// Dispatch fires if in.Fire is set (and in.Aim when RequireAimToFire), then
// clears in.Fire. A non-nil error wraps ErrMisconfigured or a spawner
// failure; the shot is then ShotNone.
func (d *FireDispatcher) Dispatch(in *FrameInput, res TargetResolution, s *Settings) (Shot, error) {
	defer func() { in.Fire = false }()

	if !in.Fire || (s.RequireAimToFire && !in.Aim) {
		return Shot{}, nil
	}

	if s.FireMode == FireProjectile {
		return d.projectile(res, s)
	}
	return d.hitScan(res, s)
}

func (d *FireDispatcher) hitScan(res TargetResolution, s *Settings) (Shot, error) {
	shot := Shot{Phase: PhaseHitScan}

	entity, ok := res.Entity()
	if !ok {
		// Empty space: nothing to mark.
		return shot, nil
	}

	kind, template := ShotMissEffect, s.Templates.MissEffect
	if s.TargetTag != "" && entity.Tag == s.TargetTag {
		kind, template = ShotHitEffect, s.Templates.HitEffect
	}

	if template == "" || d.spawner == nil {
		return shot, d.misconfigured("hit-scan effect template or spawner missing",
			zap.Stringer("effect", kind))
	}

	id, err := d.spawner.Spawn(template, res.Point, math.QuatIdentity())
	if err != nil {
		d.log.Warn("hit effect spawn failed", zap.String("template", template), zap.Error(err))
		return shot, fmt.Errorf("spawn %s: %w", template, err)
	}

	d.log.Debug("hit-scan shot",
		zap.Stringer("effect", kind),
		zap.Uint64("target", uint64(entity.ID)),
		zap.String("tag", entity.Tag),
	)
	shot.Kind = kind
	shot.Entity = id
	return shot, nil
}

func (d *FireDispatcher) projectile(res TargetResolution, s *Settings) (Shot, error) {
	shot := Shot{Phase: PhaseProjectile}

	if d.spawnPoint == nil {
		return shot, d.misconfigured("projectile spawn point missing")
	}
	if s.Templates.Projectile == "" || d.spawner == nil {
		return shot, d.misconfigured("projectile template or spawner missing")
	}

	origin := d.spawnPoint.Position()
	dir := res.Point.Sub(origin).Normalize()
	rot := math.LookRotation(dir, math.Up)

	id, err := d.spawner.Spawn(s.Templates.Projectile, origin, rot)
	if err != nil {
		d.log.Warn("projectile spawn failed", zap.String("template", s.Templates.Projectile), zap.Error(err))
		return shot, fmt.Errorf("spawn %s: %w", s.Templates.Projectile, err)
	}

	d.log.Debug("projectile shot",
		zap.Stringer("target", res.Kind),
		zap.Float32("dir_x", dir.X),
		zap.Float32("dir_y", dir.Y),
		zap.Float32("dir_z", dir.Z),
	)
	shot.Kind = ShotProjectile
	shot.Entity = id
	return shot, nil
}

func (d *FireDispatcher) misconfigured(reason string, fields ...zap.Field) error {
	d.log.Warn("shot dropped: "+reason, fields...)
	return fmt.Errorf("%w: %s", ErrMisconfigured, reason)
}
