package scene

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"

	"github.com/Faultbox/polygon-tps/internal/aim"
	"github.com/Faultbox/polygon-tps/internal/engine/picking"
	"github.com/Faultbox/polygon-tps/pkg/math"
)

// IdentityData maps a donburi entity to the stable ID handed to the
// controller.
type IdentityData struct {
	ID   aim.EntityID
	Name string
}

// TransformData is an entity's world placement.
type TransformData struct {
	Position math.Vec3
	Rotation math.Quat
}

// ColliderData is a static box the scene query can hit.
type ColliderData struct {
	Box   picking.AABB
	Layer int
}

// LabelData is the gameplay tag compared against the target tag.
type LabelData struct {
	Tag string
}

// EffectData is a spawned visual that fades out and is then removed.
type EffectData struct {
	Template string
	Alpha    float32
	Fade     *gween.Tween
}

// ProjectileData is a spawned projectile in flight.
type ProjectileData struct {
	Template  string
	Speed     float32
	Remaining float32 // Seconds left before it expires
	Travelled float32
}

// MarkerData is the aim marker's visibility.
type MarkerData struct {
	Visible bool
}

var (
	Identity   = donburi.NewComponentType[IdentityData]()
	Transform  = donburi.NewComponentType[TransformData]()
	Collider   = donburi.NewComponentType[ColliderData]()
	Label      = donburi.NewComponentType[LabelData]()
	Effect     = donburi.NewComponentType[EffectData]()
	Projectile = donburi.NewComponentType[ProjectileData]()
	Marker     = donburi.NewComponentType[MarkerData]()
)

var (
	StaticTag     = donburi.NewTag().SetName("Static")
	EffectTag     = donburi.NewTag().SetName("Effect")
	ProjectileTag = donburi.NewTag().SetName("Projectile")
	MarkerTag     = donburi.NewTag().SetName("Marker")
)
