package math

import "math"

// Quat represents a rotation. W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	s := float32(math.Sin(float64(angle / 2)))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(angle / 2))),
	}
}

// LookRotation returns the rotation whose forward (+Z) axis points along
// forward and whose up axis is as close to up as possible.
// A zero forward yields the identity rotation. When forward is parallel to
// up, +X is used as the right axis.
func LookRotation(forward, up Vec3) Quat {
	f := forward.Normalize()
	if f.IsZero() {
		return QuatIdentity()
	}
	r := up.Cross(f).Normalize()
	if r.IsZero() {
		r = Vec3{1, 0, 0}
	}
	u := f.Cross(r)

	// Columns of the rotation matrix are r, u, f.
	m00, m01, m02 := r.X, u.X, f.X
	m10, m11, m12 := r.Y, u.Y, f.Y
	m20, m21, m22 := r.Z, u.Z, f.Z

	var q Quat
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := sqrt32(trace+1) * 2
		q = Quat{W: 0.25 * s, X: (m21 - m12) / s, Y: (m02 - m20) / s, Z: (m10 - m01) / s}
	case m00 > m11 && m00 > m22:
		s := sqrt32(1+m00-m11-m22) * 2
		q = Quat{W: (m21 - m12) / s, X: 0.25 * s, Y: (m01 + m10) / s, Z: (m02 + m20) / s}
	case m11 > m22:
		s := sqrt32(1+m11-m00-m22) * 2
		q = Quat{W: (m02 - m20) / s, X: (m01 + m10) / s, Y: 0.25 * s, Z: (m12 + m21) / s}
	default:
		s := sqrt32(1+m22-m00-m11) * 2
		q = Quat{W: (m10 - m01) / s, X: (m02 + m20) / s, Y: (m12 + m21) / s, Z: 0.25 * s}
	}
	return q.Normalize()
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := sqrt32(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if length < 0.0001 {
		return QuatIdentity()
	}
	inv := 1 / length
	return Quat{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	axis := Vec3{q.X, q.Y, q.Z}
	t := axis.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(axis.Cross(t))
}

// Forward returns the rotated +Z axis.
func (q Quat) Forward() Vec3 {
	return q.Rotate(Forward)
}

func sqrt32(f float32) float32 {
	return float32(math.Sqrt(float64(f)))
}
