// Package aim implements the third-person aim/shoot controller: each tick it
// resolves the aim target under the focal point, blends the aiming pose and
// camera, and dispatches hit-scan or projectile fire.
package aim

import (
	"errors"
	"fmt"
	"strings"
)

// FireMode selects how a shot is resolved.
type FireMode int

const (
	// FireHitScan resolves the shot instantly from the target query.
	FireHitScan FireMode = iota
	// FireProjectile spawns a projectile toward the target point.
	FireProjectile
)

// String returns the config name of the mode.
func (m FireMode) String() string {
	switch m {
	case FireHitScan:
		return "hitscan"
	case FireProjectile:
		return "projectile"
	default:
		return fmt.Sprintf("FireMode(%d)", int(m))
	}
}

// ParseFireMode parses "hitscan" or "projectile".
func ParseFireMode(s string) (FireMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hitscan", "hit-scan", "hit_scan":
		return FireHitScan, nil
	case "projectile":
		return FireProjectile, nil
	}
	return 0, fmt.Errorf("unknown fire mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m FireMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *FireMode) UnmarshalText(text []byte) error {
	mode, err := ParseFireMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// LayerMask selects which collision layers the target query considers.
type LayerMask uint32

// AllLayers matches every layer.
const AllLayers = ^LayerMask(0)

// MaskOf builds a mask from layer indices in [0, 32).
func MaskOf(layers ...int) LayerMask {
	var m LayerMask
	for _, l := range layers {
		if l >= 0 && l < 32 {
			m |= 1 << uint(l)
		}
	}
	return m
}

// Has reports whether layer is part of the mask.
func (m LayerMask) Has(layer int) bool {
	if layer < 0 || layer >= 32 {
		return false
	}
	return m&(1<<uint(layer)) != 0
}

// Templates names the spawnable templates used when firing.
type Templates struct {
	HitEffect  string // Spawned when a hit-scan shot lands on a tagged target
	MissEffect string // Spawned when a hit-scan shot lands on anything else
	Projectile string
}

// Settings is the immutable per-controller configuration.
type Settings struct {
	LookSensitivity float32
	AimSensitivity  float32
	FireMode        FireMode

	Mask             LayerMask
	MaxDistance      float32 // Longest target query
	FallbackDistance float32 // Aim point distance along the ray on a miss

	FacingRate float32 // Facing easing per second
	LayerRate  float32 // Aim animation layer easing per second
	RigRate    float32 // Rig weight easing per second

	AimLayer  int    // Animator layer holding the aim pose
	TargetTag string // Tag that marks a valid target for hit-scan effects

	Templates Templates

	// RequireAimToFire only lets fire-intent dispatch while aiming.
	RequireAimToFire bool
	// UseRig enables the rig blend and crosshair/marker visibility channels.
	UseRig bool
}

// DefaultSettings returns the stock shooter tuning.
func DefaultSettings() Settings {
	return Settings{
		LookSensitivity:  1,
		AimSensitivity:   0.5,
		FireMode:         FireHitScan,
		Mask:             AllLayers,
		MaxDistance:      999,
		FallbackDistance: 20,
		FacingRate:       20,
		LayerRate:        10,
		RigRate:          20,
		AimLayer:         1,
		TargetTag:        "Target",
		UseRig:           true,
		Templates: Templates{
			HitEffect:  "vfx_hit_green",
			MissEffect: "vfx_hit_red",
			Projectile: "bullet_projectile",
		},
	}
}

// Validate reports every setting that would stop the controller from
// behaving as configured. Missing templates are reported but a controller
// built with them still runs; its shots become no-ops.
func (s Settings) Validate() error {
	var errs []error
	if s.MaxDistance <= 0 {
		errs = append(errs, fmt.Errorf("max distance must be positive, got %v", s.MaxDistance))
	}
	if s.FallbackDistance <= 0 {
		errs = append(errs, fmt.Errorf("fallback distance must be positive, got %v", s.FallbackDistance))
	}
	if s.FacingRate < 0 || s.LayerRate < 0 || s.RigRate < 0 {
		errs = append(errs, errors.New("easing rates must not be negative"))
	}
	if s.AimLayer < 1 {
		errs = append(errs, fmt.Errorf("aim layer must be above the base layer, got %d", s.AimLayer))
	}
	switch s.FireMode {
	case FireHitScan:
		if s.Templates.HitEffect == "" || s.Templates.MissEffect == "" {
			errs = append(errs, fmt.Errorf("%w: hit-scan needs hit and miss effect templates", ErrMisconfigured))
		}
	case FireProjectile:
		if s.Templates.Projectile == "" {
			errs = append(errs, fmt.Errorf("%w: projectile mode needs a projectile template", ErrMisconfigured))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown fire mode %d", int(s.FireMode)))
	}
	return errors.Join(errs...)
}
