package scene

import (
	"fmt"

	"github.com/tanema/gween/ease"

	"github.com/Faultbox/polygon-tps/internal/aim"
)

// TemplateKind says what a template spawns.
type TemplateKind int

const (
	KindEffect TemplateKind = iota
	KindProjectile
)

// Template describes something the world can spawn by name.
type Template struct {
	Kind     TemplateKind
	Lifetime float32 // Seconds; effects fade over it, projectiles expire after it
	Speed    float32 // Projectiles only, units per second
	Easing   ease.TweenFunc
}

// Catalog maps template names to templates.
type Catalog map[string]Template

// DefaultCatalog holds the stock hit markers and bullet.
func DefaultCatalog() Catalog {
	return Catalog{
		"vfx_hit_green":     {Kind: KindEffect, Lifetime: 1, Easing: ease.OutQuad},
		"vfx_hit_red":       {Kind: KindEffect, Lifetime: 1, Easing: ease.OutQuad},
		"bullet_projectile": {Kind: KindProjectile, Lifetime: 3, Speed: 60},
	}
}

// ErrUnknownTemplate is returned by Spawn for names missing from the catalog.
// A shot naming one is a controller misconfiguration.
var ErrUnknownTemplate = fmt.Errorf("%w: unknown template", aim.ErrMisconfigured)

func (c Catalog) lookup(name string) (Template, error) {
	t, ok := c[name]
	if !ok {
		return Template{}, fmt.Errorf("%w %q", ErrUnknownTemplate, name)
	}
	if t.Easing == nil {
		t.Easing = ease.Linear
	}
	return t, nil
}
