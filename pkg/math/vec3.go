// Package math provides the vector, quaternion and matrix types shared by
// the aim controller and its engine collaborators.
package math

import "math"

// Vec3 is a 3D vector. Y is up.
type Vec3 struct {
	X, Y, Z float32
}

// Commonly used axes.
var (
	Up      = Vec3{0, 1, 0}
	Forward = Vec3{0, 0, 1}
)

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Normalize returns a unit vector, or the zero vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// Lerp moves v toward other by t. t is not clamped.
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return Vec3{
		v.X + (other.X-v.X)*t,
		v.Y + (other.Y-v.Y)*t,
		v.Z + (other.Z-v.Z)*t,
	}
}

// Yaw returns the heading of v on the XZ plane in radians, 0 along +Z and
// increasing toward +X.
func (v Vec3) Yaw() float32 {
	return float32(math.Atan2(float64(v.X), float64(v.Z)))
}

// YawDir returns the horizontal unit direction for a heading.
func YawDir(yaw float32) Vec3 {
	return Vec3{X: float32(math.Sin(float64(yaw))), Z: float32(math.Cos(float64(yaw)))}
}

// TurnToward turns the horizontal heading of v toward target by the
// fraction t of the shorter angle between them and returns the result as a
// horizontal unit vector. Opposite headings turn through the positive yaw
// side.
func (v Vec3) TurnToward(target Vec3, t float32) Vec3 {
	from := v.Yaw()
	delta := target.Yaw() - from
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	for delta <= -math.Pi {
		delta += 2 * math.Pi
	}
	return YawDir(from + delta*Clamp01(t))
}

// WithY returns v with its Y component replaced.
func (v Vec3) WithY(y float32) Vec3 {
	return Vec3{v.X, y, v.Z}
}

// IsZero reports whether all components are zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// XZ returns the horizontal components as Vec2.
func (v Vec3) XZ() Vec2 {
	return Vec2{v.X, v.Z}
}

// Clamp01 limits f to [0, 1].
func Clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Lerp interpolates a toward b by t clamped to [0, 1].
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*Clamp01(t)
}
