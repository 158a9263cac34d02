package aim

import (
	"testing"

	"github.com/Faultbox/polygon-tps/pkg/math"
)

func TestBlendWeightsConvergeMonotonically(t *testing.T) {
	tests := []struct {
		name   string
		aiming bool
		start  float32
		goal   float32
		dt     float32
	}{
		{"aim in", true, 0, 1, 1.0 / 60},
		{"aim out", false, 1, 0, 1.0 / 60},
		{"large step clamps", true, 0, 1, 1},
		{"from the middle", true, 0.4, 1, 1.0 / 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig()
			s := DefaultSettings()
			s.UseRig = true
			b := NewAimStateBlender(r.deps())
			st := State{LayerWeight: tt.start, RigWeight: tt.start, Facing: r.body.forward}

			prevLayer, prevRig := st.LayerWeight, st.RigWeight
			for i := 0; i < 300; i++ {
				b.Blend(tt.dt, tt.aiming, math.Vec3{Z: 10}, &st, &s)
				for _, w := range []float32{st.LayerWeight, st.RigWeight} {
					if w < 0 || w > 1 {
						t.Fatalf("tick %d: weight %v outside [0,1]", i, w)
					}
				}
				if abs32(tt.goal-st.LayerWeight) > abs32(tt.goal-prevLayer) {
					t.Fatalf("tick %d: layer weight moved away from %v", i, tt.goal)
				}
				if abs32(tt.goal-st.RigWeight) > abs32(tt.goal-prevRig) {
					t.Fatalf("tick %d: rig weight moved away from %v", i, tt.goal)
				}
				prevLayer, prevRig = st.LayerWeight, st.RigWeight
			}
			if !approx(st.LayerWeight, tt.goal) || !approx(st.RigWeight, tt.goal) {
				t.Errorf("weights = %v/%v, want %v", st.LayerWeight, st.RigWeight, tt.goal)
			}
			if got := r.layers.weights[s.AimLayer]; got != st.LayerWeight {
				t.Errorf("animator layer weight = %v, want %v", got, st.LayerWeight)
			}
			if r.rigCh.weight != st.RigWeight {
				t.Errorf("rig weight = %v, want %v", r.rigCh.weight, st.RigWeight)
			}
		})
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestBlendProfiles(t *testing.T) {
	r := newRig()
	s := DefaultSettings()
	s.UseRig = true
	b := NewAimStateBlender(r.deps())
	st := State{Facing: r.body.forward}

	b.Blend(0.016, true, math.Vec3{Z: 10}, &st, &s)
	if !r.camera.active || !r.crosshair.visible || !r.marker.visible {
		t.Error("aiming should activate camera, crosshair and marker")
	}
	if r.loco.sensitivity != s.AimSensitivity || r.loco.rotateOnMove {
		t.Errorf("aiming locomotion = %+v", *r.loco)
	}

	b.Blend(0.016, false, math.Vec3{Z: 10}, &st, &s)
	if r.camera.active || r.crosshair.visible || r.marker.visible {
		t.Error("default profile should deactivate camera, crosshair and marker")
	}
	if r.loco.sensitivity != s.LookSensitivity || !r.loco.rotateOnMove {
		t.Errorf("default locomotion = %+v", *r.loco)
	}
}

func TestBlendWithoutRig(t *testing.T) {
	r := newRig()
	r.crosshair.visible = true
	s := DefaultSettings()
	s.UseRig = false
	b := NewAimStateBlender(r.deps())
	st := State{Facing: r.body.forward}

	b.Blend(0.1, true, math.Vec3{Z: 10}, &st, &s)
	if st.RigWeight != 0 || r.rigCh.weight != 0 {
		t.Errorf("rig weight = %v, want untouched", st.RigWeight)
	}
	if !r.crosshair.visible {
		t.Error("crosshair toggled without rig")
	}
	if !r.camera.active {
		t.Error("aim camera should still switch without rig")
	}
	if st.LayerWeight <= 0 {
		t.Error("layer weight should still ease without rig")
	}
}

func TestBlendFacingIsHorizontal(t *testing.T) {
	r := newRig()
	r.body.pos = math.Vec3{Y: 1}
	r.body.forward = math.Vec3{X: 1}
	s := DefaultSettings()
	b := NewAimStateBlender(r.deps())
	st := State{Facing: r.body.forward}

	target := math.Vec3{Y: 8, Z: 10}
	want := math.Vec3{Z: 1}
	prev := st.Facing.Dot(want)
	for i := 0; i < 60; i++ {
		b.Blend(1.0/60, true, target, &st, &s)
		if !approx(st.Facing.Y, 0) {
			t.Fatalf("tick %d: facing %v has vertical component", i, st.Facing)
		}
		if !approx(st.Facing.Length(), 1) {
			t.Fatalf("tick %d: facing %v not unit length", i, st.Facing)
		}
		if d := st.Facing.Dot(want); d < prev-1e-5 {
			t.Fatalf("tick %d: facing turned away from target", i)
		} else {
			prev = d
		}
	}
	if !approxVec(st.Facing, want) {
		t.Errorf("facing = %v, want %v", st.Facing, want)
	}
	if r.body.forward != st.Facing {
		t.Errorf("body forward = %v, want %v", r.body.forward, st.Facing)
	}
}

func TestBlendDefaultFollowsBody(t *testing.T) {
	r := newRig()
	s := DefaultSettings()
	b := NewAimStateBlender(r.deps())
	st := State{Facing: math.Vec3{X: 1}}

	r.body.forward = math.Vec3{X: -1}
	b.Blend(0.016, false, math.Vec3{Z: 10}, &st, &s)
	if st.Facing != r.body.forward {
		t.Errorf("facing = %v, want body forward %v", st.Facing, r.body.forward)
	}
}

func TestBlendTargetAtBody(t *testing.T) {
	r := newRig()
	s := DefaultSettings()
	b := NewAimStateBlender(r.deps())
	st := State{Facing: r.body.forward}

	b.Blend(0.016, true, r.body.pos.Add(math.Vec3{Y: 3}), &st, &s)
	if st.Facing != (math.Vec3{X: 1}) {
		t.Errorf("facing = %v, want unchanged", st.Facing)
	}
}

func TestBlendFacingTurnsFromOpposite(t *testing.T) {
	r := newRig()
	r.body.pos = math.Vec3{}
	r.body.forward = math.Vec3{Z: -1}
	s := DefaultSettings()
	b := NewAimStateBlender(r.deps())
	st := State{Facing: r.body.forward}

	target := math.Vec3{Z: 10}
	b.Blend(1.0/60, true, target, &st, &s)
	if approxVec(st.Facing, math.Vec3{Z: -1}) {
		t.Fatalf("facing = %v after one tick, want it to start turning", st.Facing)
	}
	for i := 1; i < 600; i++ {
		b.Blend(1.0/60, true, target, &st, &s)
	}
	if want := (math.Vec3{Z: 1}); !approxVec(st.Facing, want) {
		t.Errorf("facing = %v, want %v", st.Facing, want)
	}
}
