package math

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func approxVec(a, b Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); !got.IsZero() {
		t.Errorf("Normalize of zero vector = %v, want zero", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, -4, 2}

	tests := []struct {
		t    float32
		want Vec3
	}{
		{0, a},
		{1, b},
		{0.5, Vec3{5, -2, 1}},
	}
	for _, tt := range tests {
		if got := a.Lerp(b, tt.t); !approxVec(got, tt.want) {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestVec3TurnToward(t *testing.T) {
	tests := []struct {
		name   string
		from   Vec3
		target Vec3
		t      float32
		want   Vec3
	}{
		{"quarter turn halfway", Vec3{X: 1}, Vec3{Z: 1}, 0.5, Vec3{X: 0.70710677, Z: 0.70710677}},
		{"full step", Vec3{X: 1}, Vec3{Z: 1}, 1, Vec3{Z: 1}},
		{"no step", Vec3{X: 1}, Vec3{Z: 1}, 0, Vec3{X: 1}},
		{"opposite turns", Vec3{Z: -1}, Vec3{Z: 1}, 0.5, Vec3{X: -1}},
		{"shorter way across the seam", Vec3{X: -0.70710677, Z: -0.70710677}, Vec3{X: 0.70710677, Z: -0.70710677}, 0.5, Vec3{Z: -1}},
		{"ignores height", Vec3{X: 1, Y: 3}, Vec3{Z: 2, Y: -1}, 1, Vec3{Z: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.TurnToward(tt.target, tt.t); !approxVec(got, tt.want) {
				t.Errorf("TurnToward() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3TurnTowardFromOpposite(t *testing.T) {
	v := Vec3{Z: -1}
	for i := 0; i < 120; i++ {
		v = v.TurnToward(Forward, 0.2)
	}
	if !approxVec(v, Forward) {
		t.Errorf("after turning, v = %v, want %v", v, Forward)
	}
}

func TestVec3WithY(t *testing.T) {
	got := Vec3{1, 2, 3}.WithY(9)
	if got != (Vec3{1, 9, 3}) {
		t.Errorf("WithY() = %v", got)
	}
}

func TestLerpClampsT(t *testing.T) {
	tests := []struct {
		a, b, t, want float32
	}{
		{0, 1, 0.25, 0.25},
		{0, 1, 2, 1},
		{1, 0, -1, 1},
		{0.5, 0, 0.5, 0.25},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); !approx(got, tt.want) {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
}
