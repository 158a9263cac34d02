package aim

import "github.com/Faultbox/polygon-tps/pkg/math"

// AimStateBlender eases the aim pose between the default and aiming
// profiles. Every eased value moves by rate*dt of its remaining distance,
// so it never overshoots while rate*dt <= 1.
type AimStateBlender struct {
	camera     CameraSwitch
	locomotion Locomotion
	animator   AnimationLayers
	rig        RigChannel
	crosshair  Visibility
	marker     Visibility
	body       Body
}

// NewAimStateBlender creates a blender from the optional channels in deps.
func NewAimStateBlender(deps Deps) *AimStateBlender {
	b := &AimStateBlender{
		camera:     deps.AimCamera,
		locomotion: deps.Locomotion,
		animator:   deps.Animator,
		rig:        deps.Rig,
		crosshair:  deps.Crosshair,
		body:       deps.Body,
	}
	if v, ok := deps.Marker.(Visibility); ok {
		b.marker = v
	}
	return b
}

// Blend applies the aiming profile when aiming is set and the default
// profile otherwise. target is the resolved world aim point.
func (b *AimStateBlender) Blend(dt float32, aiming bool, target math.Vec3, st *State, s *Settings) {
	b.applyProfile(aiming, s)

	goal := float32(0)
	if aiming {
		goal = 1
	}

	st.LayerWeight = math.Clamp01(math.Lerp(st.LayerWeight, goal, s.LayerRate*dt))
	if b.animator != nil {
		b.animator.SetLayerWeight(s.AimLayer, st.LayerWeight)
	}

	if s.UseRig {
		st.RigWeight = math.Clamp01(math.Lerp(st.RigWeight, goal, s.RigRate*dt))
		if b.rig != nil {
			b.rig.SetWeight(st.RigWeight)
		}
	}

	if !aiming {
		// Facing belongs to locomotion outside of aiming.
		st.Facing = b.body.Forward()
		return
	}

	pos := b.body.Position()
	dir := target.WithY(pos.Y).Sub(pos).Normalize()
	if dir.IsZero() {
		return
	}
	facing := dir
	if !st.Facing.IsZero() {
		facing = st.Facing.TurnToward(dir, s.FacingRate*dt)
	}
	st.Facing = facing
	b.body.SetForward(facing)
}

func (b *AimStateBlender) applyProfile(aiming bool, s *Settings) {
	if b.camera != nil {
		b.camera.SetActive(aiming)
	}
	if s.UseRig {
		if b.crosshair != nil {
			b.crosshair.SetVisible(aiming)
		}
		if b.marker != nil {
			b.marker.SetVisible(aiming)
		}
	}
	if b.locomotion != nil {
		if aiming {
			b.locomotion.SetSensitivity(s.AimSensitivity)
		} else {
			b.locomotion.SetSensitivity(s.LookSensitivity)
		}
		b.locomotion.SetRotateOnMove(!aiming)
	}
}
