package aim

import (
	"fmt"

	"github.com/Faultbox/polygon-tps/pkg/math"
)

// TargetResolver turns the screen focal point into a world aim point.
type TargetResolver struct {
	scene    SceneQuery
	view     ViewRaySource
	viewport Viewport
	marker   Marker
}

// NewTargetResolver creates a resolver. marker may be nil.
func NewTargetResolver(scene SceneQuery, view ViewRaySource, viewport Viewport, marker Marker) *TargetResolver {
	return &TargetResolver{scene: scene, view: view, viewport: viewport, marker: marker}
}

// Resolve casts one nearest-hit query through focal (the viewport centre
// when nil). A miss is not an error: the aim point falls back to
// FallbackDistance along the ray. The only error is ErrNoViewRay.
func (r *TargetResolver) Resolve(focal *math.Vec2, s *Settings) (TargetResolution, error) {
	w, h := r.viewport.Size()
	screen := math.Vec2{X: float32(w) / 2, Y: float32(h) / 2}
	if focal != nil {
		screen = *focal
	}

	ray, err := r.view.ScreenPointToRay(screen, w, h)
	if err != nil {
		return TargetResolution{}, fmt.Errorf("%w: %w", ErrNoViewRay, err)
	}

	var res TargetResolution
	if hit, ok := r.scene.QueryNearestHit(ray, s.MaxDistance, s.Mask); ok {
		res = HitAt(hit.Entity, hit.Point)
	} else {
		res = MissAt(ray.GetPoint(s.FallbackDistance))
	}

	if r.marker != nil {
		r.marker.SetPosition(res.Point)
	}
	return res, nil
}
