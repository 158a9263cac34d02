package aim

import (
	"errors"
	stdmath "math"

	"github.com/Faultbox/polygon-tps/internal/engine/picking"
	"github.com/Faultbox/polygon-tps/pkg/math"
)

func approx(a, b float32) bool {
	return stdmath.Abs(float64(a-b)) < 1e-4
}

func approxVec(a, b math.Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

type fakeScene struct {
	hit     *SceneHit
	queries int
	lastRay picking.Ray
	lastMax float32
}

func (s *fakeScene) QueryNearestHit(ray picking.Ray, maxDistance float32, mask LayerMask) (SceneHit, bool) {
	s.queries++
	s.lastRay = ray
	s.lastMax = maxDistance
	if s.hit == nil {
		return SceneHit{}, false
	}
	return *s.hit, true
}

type fakeView struct {
	ray        picking.Ray
	err        error
	lastScreen math.Vec2
}

func (v *fakeView) ScreenPointToRay(screen math.Vec2, w, h int) (picking.Ray, error) {
	v.lastScreen = screen
	return v.ray, v.err
}

type fakeViewport struct{ w, h int }

func (v fakeViewport) Size() (int, int) { return v.w, v.h }

type fakeSwitch struct{ active bool }

func (s *fakeSwitch) SetActive(active bool) { s.active = active }

type fakeLayers struct{ weights map[int]float32 }

func newFakeLayers() *fakeLayers { return &fakeLayers{weights: map[int]float32{}} }

func (l *fakeLayers) LayerWeight(layer int) float32 { return l.weights[layer] }

func (l *fakeLayers) SetLayerWeight(layer int, w float32) { l.weights[layer] = w }

type fakeRig struct{ weight float32 }

func (r *fakeRig) Weight() float32     { return r.weight }
func (r *fakeRig) SetWeight(w float32) { r.weight = w }

type fakeLocomotion struct {
	sensitivity  float32
	rotateOnMove bool
}

func (l *fakeLocomotion) SetSensitivity(s float32) { l.sensitivity = s }
func (l *fakeLocomotion) SetRotateOnMove(on bool)  { l.rotateOnMove = on }

type fakeBody struct {
	pos     math.Vec3
	forward math.Vec3
}

func (b *fakeBody) Position() math.Vec3          { return b.pos }
func (b *fakeBody) Forward() math.Vec3           { return b.forward }
func (b *fakeBody) SetForward(forward math.Vec3) { b.forward = forward }

type spawned struct {
	template string
	pos      math.Vec3
	rot      math.Quat
}

type fakeSpawner struct {
	spawns []spawned
	err    error
}

func (s *fakeSpawner) Spawn(template string, pos math.Vec3, rot math.Quat) (EntityID, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.spawns = append(s.spawns, spawned{template, pos, rot})
	return EntityID(100 + len(s.spawns)), nil
}

type fakeMarker struct {
	pos     math.Vec3
	moves   int
	visible bool
}

func (m *fakeMarker) SetPosition(p math.Vec3) { m.pos = p; m.moves++ }
func (m *fakeMarker) SetVisible(v bool)       { m.visible = v }

type fakeVisibility struct{ visible bool }

func (v *fakeVisibility) SetVisible(visible bool) { v.visible = visible }

type fakeAnchor struct{ pos math.Vec3 }

func (a fakeAnchor) Position() math.Vec3 { return a.pos }

// rig bundles one of every collaborator so tests can inspect them.
type rig struct {
	scene     *fakeScene
	view      *fakeView
	camera    *fakeSwitch
	layers    *fakeLayers
	rigCh     *fakeRig
	loco      *fakeLocomotion
	body      *fakeBody
	spawner   *fakeSpawner
	marker    *fakeMarker
	crosshair *fakeVisibility
	muzzle    *fakeAnchor
}

func newRig() *rig {
	return &rig{
		scene: &fakeScene{},
		view: &fakeView{ray: picking.NewRay(
			math.Vec3{X: 0, Y: 2, Z: -5},
			math.Vec3{X: 0, Y: 0, Z: 1},
		)},
		camera:    &fakeSwitch{},
		layers:    newFakeLayers(),
		rigCh:     &fakeRig{},
		loco:      &fakeLocomotion{},
		body:      &fakeBody{pos: math.Vec3{}, forward: math.Vec3{X: 1}},
		spawner:   &fakeSpawner{},
		marker:    &fakeMarker{},
		crosshair: &fakeVisibility{},
		muzzle:    &fakeAnchor{pos: math.Vec3{X: 0.3, Y: 1.5, Z: 0.5}},
	}
}

func (r *rig) deps() Deps {
	return Deps{
		Scene:      r.scene,
		View:       r.view,
		Viewport:   fakeViewport{w: 800, h: 600},
		Body:       r.body,
		Locomotion: r.loco,
		AimCamera:  r.camera,
		Animator:   r.layers,
		Rig:        r.rigCh,
		Crosshair:  r.crosshair,
		Marker:     r.marker,
		Spawner:    r.spawner,
		SpawnPoint: r.muzzle,
	}
}

var errNoCamera = errors.New("no live camera")
