// Package scene is a small donburi world of static colliders, the aim
// marker and spawned effects and projectiles. It answers the aim
// controller's nearest-hit queries and spawns its shots.
package scene

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"github.com/Faultbox/polygon-tps/internal/aim"
	"github.com/Faultbox/polygon-tps/internal/engine/picking"
	"github.com/Faultbox/polygon-tps/pkg/math"
)

// ImpactRule picks the effect a projectile leaves on what it hits, using
// the same tag rule as hit-scan shots.
type ImpactRule struct {
	TargetTag  string
	HitEffect  string
	MissEffect string
	Mask       aim.LayerMask // Layers projectiles collide with; zero means all
}

// Effect returns the template for hitting an entity with tag.
func (r ImpactRule) Effect(tag string) string {
	if r.TargetTag != "" && tag == r.TargetTag {
		return r.HitEffect
	}
	return r.MissEffect
}

// World wraps a donburi world with the queries the controller needs.
type World struct {
	world   donburi.World
	catalog Catalog
	impact  ImpactRule
	log     *zap.Logger

	ids    map[aim.EntityID]donburi.Entity
	nextID aim.EntityID
	marker donburi.Entity
}

// NewWorld creates an empty world with the aim marker already spawned.
func NewWorld(catalog Catalog, impact ImpactRule, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	w := &World{
		world:   donburi.NewWorld(),
		catalog: catalog,
		impact:  impact,
		log:     log,
		ids:     make(map[aim.EntityID]donburi.Entity),
	}
	entry := w.create("aim_marker", MarkerTag, Identity, Transform, Marker)
	Transform.SetValue(entry, TransformData{Rotation: math.QuatIdentity()})
	w.marker = entry.Entity()
	return w
}

func (w *World) create(name string, cs ...donburi.IComponentType) *donburi.Entry {
	entry := w.world.Entry(w.world.Create(cs...))
	w.nextID++
	Identity.SetValue(entry, IdentityData{ID: w.nextID, Name: name})
	w.ids[w.nextID] = entry.Entity()
	return entry
}

// SetImpactRule replaces the projectile impact rule.
func (w *World) SetImpactRule(r ImpactRule) {
	w.impact = r
}

// AddCollider adds a static box. tag may be empty.
func (w *World) AddCollider(name string, box picking.AABB, layer int, tag string) aim.EntityID {
	entry := w.create(name, StaticTag, Identity, Transform, Collider, Label)
	Transform.SetValue(entry, TransformData{Position: box.Center(), Rotation: math.QuatIdentity()})
	Collider.SetValue(entry, ColliderData{Box: box, Layer: layer})
	Label.SetValue(entry, LabelData{Tag: tag})
	return Identity.Get(entry).ID
}

// QueryNearestHit returns the closest collider on a layer in mask whose
// entry point lies within maxDistance of the ray origin. Colliders that
// contain the origin are not reported.
func (w *World) QueryNearestHit(ray picking.Ray, maxDistance float32, mask aim.LayerMask) (aim.SceneHit, bool) {
	var (
		best  aim.SceneHit
		found bool
	)
	Collider.Each(w.world, func(e *donburi.Entry) {
		c := Collider.Get(e)
		if !mask.Has(c.Layer) || c.Box.Contains(ray.Origin) {
			return
		}
		t, ok := ray.IntersectAABB(c.Box)
		if !ok || t > maxDistance || (found && t >= best.Distance) {
			return
		}
		best = aim.SceneHit{
			Point:    ray.GetPoint(t),
			Distance: t,
			Entity: aim.EntityRef{
				ID:  Identity.Get(e).ID,
				Tag: Label.Get(e).Tag,
			},
		}
		found = true
	})
	return best, found
}

// Spawn instantiates a catalog template at position with rotation.
func (w *World) Spawn(template string, position math.Vec3, rotation math.Quat) (aim.EntityID, error) {
	t, err := w.catalog.lookup(template)
	if err != nil {
		return 0, err
	}

	var entry *donburi.Entry
	switch t.Kind {
	case KindEffect:
		entry = w.create(template, EffectTag, Identity, Transform, Effect)
		Effect.SetValue(entry, EffectData{
			Template: template,
			Alpha:    1,
			Fade:     gween.New(1, 0, t.Lifetime, t.Easing),
		})
	case KindProjectile:
		entry = w.create(template, ProjectileTag, Identity, Transform, Projectile)
		Projectile.SetValue(entry, ProjectileData{
			Template:  template,
			Speed:     t.Speed,
			Remaining: t.Lifetime,
		})
	default:
		return 0, fmt.Errorf("scene: template %q has unknown kind %d", template, t.Kind)
	}
	Transform.SetValue(entry, TransformData{Position: position, Rotation: rotation})

	id := Identity.Get(entry).ID
	w.log.Debug("spawned",
		zap.String("template", template),
		zap.Uint64("id", uint64(id)),
		zap.Float32("x", position.X),
		zap.Float32("y", position.Y),
		zap.Float32("z", position.Z),
	)
	return id, nil
}

// Remove deletes an entity. Unknown IDs are ignored.
func (w *World) Remove(id aim.EntityID) {
	e, ok := w.ids[id]
	if !ok || e == w.marker {
		return
	}
	delete(w.ids, id)
	if w.world.Valid(e) {
		w.world.Remove(e)
	}
}

// Exists reports whether id is still alive.
func (w *World) Exists(id aim.EntityID) bool {
	e, ok := w.ids[id]
	return ok && w.world.Valid(e)
}

// Position returns an entity's position.
func (w *World) Position(id aim.EntityID) (math.Vec3, bool) {
	e, ok := w.ids[id]
	if !ok || !w.world.Valid(e) {
		return math.Vec3{}, false
	}
	return Transform.Get(w.world.Entry(e)).Position, true
}

// Rotation returns an entity's rotation.
func (w *World) Rotation(id aim.EntityID) (math.Quat, bool) {
	e, ok := w.ids[id]
	if !ok || !w.world.Valid(e) {
		return math.Quat{}, false
	}
	return Transform.Get(w.world.Entry(e)).Rotation, true
}

// Name returns the name or template an entity was created with.
func (w *World) Name(id aim.EntityID) string {
	e, ok := w.ids[id]
	if !ok || !w.world.Valid(e) {
		return ""
	}
	return Identity.Get(w.world.Entry(e)).Name
}

// Alpha returns an effect's current opacity.
func (w *World) Alpha(id aim.EntityID) (float32, bool) {
	e, ok := w.ids[id]
	if !ok || !w.world.Valid(e) {
		return 0, false
	}
	entry := w.world.Entry(e)
	if !entry.HasComponent(Effect) {
		return 0, false
	}
	return Effect.Get(entry).Alpha, true
}

// SetPosition moves the aim marker.
func (w *World) SetPosition(position math.Vec3) {
	Transform.Get(w.world.Entry(w.marker)).Position = position
}

// SetVisible shows or hides the aim marker.
func (w *World) SetVisible(visible bool) {
	Marker.Get(w.world.Entry(w.marker)).Visible = visible
}

// MarkerPosition returns where the aim marker is.
func (w *World) MarkerPosition() math.Vec3 {
	return Transform.Get(w.world.Entry(w.marker)).Position
}

// MarkerVisible reports whether the aim marker is shown.
func (w *World) MarkerVisible() bool {
	return Marker.Get(w.world.Entry(w.marker)).Visible
}

// Counts reports live entities by kind.
type Counts struct {
	Colliders   int
	Effects     int
	Projectiles int
}

// Counts returns the number of live entities by kind.
func (w *World) Counts() Counts {
	var c Counts
	Collider.Each(w.world, func(*donburi.Entry) { c.Colliders++ })
	Effect.Each(w.world, func(*donburi.Entry) { c.Effects++ })
	Projectile.Each(w.world, func(*donburi.Entry) { c.Projectiles++ })
	return c
}
