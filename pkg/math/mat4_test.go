package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{3, 4, -5}
	view := LookAt(eye, Vec3{0, 1, 0}, Up)

	got := view.TransformVec3(eye)
	if !approxVec(got, Vec3{}) {
		t.Errorf("eye in view space = %v, want origin", got)
	}
}

func TestLookAtForwardIsNegativeZ(t *testing.T) {
	eye := Vec3{0, 0, 0}
	center := Vec3{0, 0, 10}
	view := LookAt(eye, center, Up)

	got := view.TransformVec3(center)
	if !approx(got.X, 0) || !approx(got.Y, 0) || !approx(got.Z, -10) {
		t.Errorf("center in view space = %v, want (0,0,-10)", got)
	}
}

func TestInverse(t *testing.T) {
	proj := Perspective(float32(math.Pi/3), 16.0/9.0, 0.1, 1000)
	view := LookAt(Vec3{1, 2, 3}, Vec3{0, 0, 0}, Up)
	m := proj.Mul(view)

	result := m.Mul(m.Inverse())
	id := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(result[i]-id[i])) > 1e-3 {
			t.Errorf("M * M^-1 element %d: got %f, want %f", i, result[i], id[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	var zero Mat4
	if got := zero.Inverse(); got != Identity() {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}
