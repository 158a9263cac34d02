package aim

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/polygon-tps/pkg/math"
)

type fakeInput struct{ frame FrameInput }

func (i *fakeInput) Frame() *FrameInput { return &i.frame }

func newController(t *testing.T, r *rig, s Settings) *Controller {
	t.Helper()
	c, err := New(s, r.deps())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(DefaultSettings(), Deps{})
	if err == nil {
		t.Fatal("New() with no deps should fail")
	}
	for _, want := range []string{"scene", "view ray", "viewport", "body"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestNewSeedsStateFromHost(t *testing.T) {
	r := newRig()
	r.layers.weights[1] = 0.25
	r.rigCh.weight = 0.75
	r.body.forward = math.Vec3{Z: -1}

	c := newController(t, r, DefaultSettings())
	want := State{LayerWeight: 0.25, RigWeight: 0.75, Facing: math.Vec3{Z: -1}}
	if got := c.State(); got != want {
		t.Errorf("State() = %+v, want %+v", got, want)
	}
}

func TestNewLogsIncompleteSettings(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := DefaultSettings()
	s.Templates = Templates{}

	if _, err := New(s, newRig().deps(), WithLogger(zap.New(core))); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if logs.FilterMessage("aim settings incomplete").Len() != 1 {
		t.Errorf("expected one settings warning, got %v", logs.All())
	}
}

func TestTickFireAlwaysCleared(t *testing.T) {
	tests := []struct {
		name   string
		mode   FireMode
		in     FrameInput
		hit    *SceneHit
		noView bool
		want   ShotKind
	}{
		{"hit-scan on target", FireHitScan, FrameInput{Aim: true, Fire: true}, &SceneHit{Entity: EntityRef{Tag: "Target"}}, false, ShotHitEffect},
		{"hit-scan on wall", FireHitScan, FrameInput{Fire: true}, &SceneHit{Entity: EntityRef{Tag: "Wall"}}, false, ShotMissEffect},
		{"hit-scan into nothing", FireHitScan, FrameInput{Fire: true}, nil, false, ShotNone},
		{"projectile", FireProjectile, FrameInput{Fire: true}, nil, false, ShotProjectile},
		{"no fire", FireProjectile, FrameInput{Aim: true}, nil, false, ShotNone},
		{"no camera", FireProjectile, FrameInput{Fire: true}, nil, true, ShotNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig()
			r.scene.hit = tt.hit
			if tt.noView {
				r.view.err = errNoCamera
			}
			s := DefaultSettings()
			s.FireMode = tt.mode
			c := newController(t, r, s)

			in := tt.in
			report := c.Tick(1.0/60, &in)
			if in.Fire {
				t.Error("fire-intent still set after tick")
			}
			if report.Shot.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", report.Shot.Kind, tt.want)
			}
			spawns := len(r.spawner.spawns)
			if (tt.want == ShotNone) != (spawns == 0) || spawns > 1 {
				t.Errorf("spawned %d for %v", spawns, tt.want)
			}
		})
	}
}

func TestTickSkipsWithoutViewRay(t *testing.T) {
	r := newRig()
	r.view.err = errNoCamera
	r.layers.weights[1] = 0.5
	c := newController(t, r, DefaultSettings())
	before := c.State()

	report := c.Tick(1.0/60, &FrameInput{Aim: true, Fire: true})
	if !report.Skipped || !errors.Is(report.Err, ErrNoViewRay) {
		t.Errorf("report = %+v, want skipped with ErrNoViewRay", report)
	}
	if c.State() != before {
		t.Errorf("State changed on a skipped tick: %+v", c.State())
	}
	if r.camera.active || r.marker.moves != 0 {
		t.Error("collaborators touched on a skipped tick")
	}
}

func TestTickNilInput(t *testing.T) {
	r := newRig()
	c := newController(t, r, DefaultSettings())

	report := c.Tick(1.0/60, nil)
	if report.Skipped || report.Aiming || report.Shot.Kind != ShotNone {
		t.Errorf("report = %+v", report)
	}
	if report.Resolution.Kind != KindMiss {
		t.Errorf("Resolution = %v, want miss", report.Resolution.Kind)
	}
}

func TestUpdateReadsInputSource(t *testing.T) {
	r := newRig()
	src := &fakeInput{frame: FrameInput{Fire: true}}
	deps := r.deps()
	deps.Input = src
	s := DefaultSettings()
	s.FireMode = FireProjectile
	c, err := New(s, deps)
	if err != nil {
		t.Fatal(err)
	}

	if report := c.Update(1.0 / 60); report.Shot.Kind != ShotProjectile {
		t.Errorf("Kind = %v, want projectile", report.Shot.Kind)
	}
	if src.frame.Fire {
		t.Error("Update did not clear fire on the input source")
	}
	if report := c.Update(1.0 / 60); report.Shot.Kind != ShotNone {
		t.Errorf("second Update fired again: %v", report.Shot.Kind)
	}
}

func TestReconfigureKeepsState(t *testing.T) {
	r := newRig()
	c := newController(t, r, DefaultSettings())
	for i := 0; i < 5; i++ {
		c.Tick(1.0/60, &FrameInput{Aim: true})
	}
	before := c.State()

	s := DefaultSettings()
	s.FireMode = FireProjectile
	c.Reconfigure(s)
	if c.State() != before {
		t.Error("Reconfigure reset the aim state")
	}
	if c.Settings().FireMode != FireProjectile {
		t.Error("Reconfigure did not apply settings")
	}
}

func TestScenarioProjectileFromHip(t *testing.T) {
	r := newRig()
	s := DefaultSettings()
	s.FireMode = FireProjectile
	c := newController(t, r, s)

	report := c.Tick(1.0/60, &FrameInput{Aim: false, Fire: true})
	if report.Shot.Kind != ShotProjectile {
		t.Fatalf("Kind = %v, want projectile", report.Shot.Kind)
	}

	fallback := r.view.ray.GetPoint(20)
	if !approxVec(report.Resolution.Point, fallback) {
		t.Errorf("aim point = %v, want fallback %v", report.Resolution.Point, fallback)
	}
	got := r.spawner.spawns[0]
	if got.pos != r.muzzle.pos {
		t.Errorf("spawned at %v, want muzzle %v", got.pos, r.muzzle.pos)
	}
	want := fallback.Sub(r.muzzle.pos).Normalize()
	if fwd := got.rot.Forward(); !approxVec(fwd, want) {
		t.Errorf("projectile forward = %v, want %v", fwd, want)
	}
	if r.camera.active {
		t.Error("aim camera active while not aiming")
	}
	if r.loco.sensitivity != s.LookSensitivity {
		t.Errorf("sensitivity = %v, want look sensitivity %v", r.loco.sensitivity, s.LookSensitivity)
	}
}

func TestScenarioAimedHitScanOnTarget(t *testing.T) {
	r := newRig()
	r.body.pos = math.Vec3{Y: 0}
	r.body.forward = math.Vec3{X: 1}
	hitPoint := math.Vec3{X: 3, Y: 2, Z: 10}
	r.scene.hit = &SceneHit{Point: hitPoint, Distance: 15, Entity: EntityRef{ID: 9, Tag: "Target"}}
	s := DefaultSettings()
	s.UseRig = true
	c := newController(t, r, s)
	before := c.State()

	report := c.Tick(1.0/60, &FrameInput{Aim: true, Fire: true})
	if report.Shot.Kind != ShotHitEffect {
		t.Fatalf("Kind = %v, want hit effect", report.Shot.Kind)
	}
	got := r.spawner.spawns[0]
	if got.template != "vfx_hit_green" || got.pos != hitPoint {
		t.Errorf("spawn = %+v", got)
	}

	after := c.State()
	if after.LayerWeight <= before.LayerWeight || after.RigWeight <= before.RigWeight {
		t.Errorf("weights did not ease toward 1: %+v -> %+v", before, after)
	}
	dir := hitPoint.WithY(0).Normalize()
	if after.Facing.Dot(dir) <= before.Facing.Dot(dir) {
		t.Errorf("facing %v did not turn toward %v", after.Facing, dir)
	}
	if !approx(after.Facing.Y, 0) {
		t.Errorf("facing %v not horizontal", after.Facing)
	}
	if !r.camera.active {
		t.Error("aim camera inactive while aiming")
	}
}
