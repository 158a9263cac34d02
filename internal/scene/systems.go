package scene

import (
	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"github.com/Faultbox/polygon-tps/internal/aim"
	"github.com/Faultbox/polygon-tps/internal/engine/picking"
)

// Impact is a projectile reaching a collider.
type Impact struct {
	Projectile aim.EntityID
	Hit        aim.SceneHit
	Effect     aim.EntityID // Zero when no effect could be spawned
	Range      float32      // Distance flown from the spawn point to the hit
}

// Update advances projectiles and effects by dt seconds and returns the
// impacts that happened during the step.
func (w *World) Update(dt float32) []Impact {
	impacts := w.updateProjectiles(dt)
	w.updateEffects(dt)
	return impacts
}

func (w *World) updateProjectiles(dt float32) []Impact {
	var (
		impacts []Impact
		done    []aim.EntityID
	)

	type flight struct {
		id        aim.EntityID
		ray       picking.Ray
		step      float32
		travelled float32
	}
	var moving []flight

	Projectile.Each(w.world, func(e *donburi.Entry) {
		p := Projectile.Get(e)
		id := Identity.Get(e).ID
		p.Remaining -= dt
		if p.Remaining <= 0 {
			done = append(done, id)
			return
		}
		tr := Transform.Get(e)
		dir := tr.Rotation.Forward()
		moving = append(moving, flight{
			id:        id,
			ray:       picking.NewRay(tr.Position, dir),
			step:      p.Speed * dt,
			travelled: p.Travelled,
		})
	})

	// Queries run outside Each so impacts can spawn entities.
	for _, f := range moving {
		hit, ok := w.QueryNearestHit(f.ray, f.step, w.impactMask())
		if !ok {
			entry := w.world.Entry(w.ids[f.id])
			Transform.Get(entry).Position = f.ray.GetPoint(f.step)
			Projectile.Get(entry).Travelled += f.step
			continue
		}

		impact := Impact{Projectile: f.id, Hit: hit, Range: f.travelled + hit.Distance}
		if tmpl := w.impact.Effect(hit.Entity.Tag); tmpl != "" {
			id, err := w.Spawn(tmpl, hit.Point, Transform.Get(w.world.Entry(w.ids[f.id])).Rotation.Normalize())
			if err != nil {
				w.log.Warn("impact effect spawn failed", zap.String("template", tmpl), zap.Error(err))
			} else {
				impact.Effect = id
			}
		}
		w.log.Debug("projectile impact",
			zap.Uint64("projectile", uint64(f.id)),
			zap.Uint64("target", uint64(hit.Entity.ID)),
			zap.String("tag", hit.Entity.Tag),
			zap.Float32("range", impact.Range),
		)
		impacts = append(impacts, impact)
		done = append(done, f.id)
	}

	for _, id := range done {
		w.Remove(id)
	}
	return impacts
}

func (w *World) impactMask() aim.LayerMask {
	if w.impact.Mask == 0 {
		return aim.AllLayers
	}
	return w.impact.Mask
}

func (w *World) updateEffects(dt float32) {
	var expired []aim.EntityID
	Effect.Each(w.world, func(e *donburi.Entry) {
		fx := Effect.Get(e)
		alpha, finished := fx.Fade.Update(dt)
		fx.Alpha = alpha
		if finished {
			expired = append(expired, Identity.Get(e).ID)
		}
	})
	for _, id := range expired {
		w.Remove(id)
	}
}
