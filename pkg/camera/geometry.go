// Package camera implements the per-tick camera rigs used by the crafthouse
// demos: an orbit rig that turns an arm around a focus point and a free-fly
// rig driven by movement keys and mouse look.
//
// Everything here is pure math over mgl32 values. Callers hand in a state, an
// InputFrame and a time step and receive the next state back; nothing blocks
// and nothing logs.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const parallelEpsilon = 1e-6

// NormalizeDirection converts a yaw/pitch pair (radians) into a unit forward
// vector. Yaw is measured from +X toward +Z, pitch toward +Y.
//
// The result is not finite when pitch is at ±π/2; callers must clamp first
// (see ClampPitch).
func NormalizeDirection(yaw, pitch float32) mgl32.Vec3 {
	t := math.Tan(float64(pitch))
	scale := math.Sqrt(1 + t*t)
	return mgl32.Vec3{
		float32(math.Cos(float64(yaw)) / scale),
		float32(t / scale),
		float32(math.Sin(float64(yaw)) / scale),
	}
}

// ClampPitch keeps p within [-π/2+eps, π/2-eps]
func ClampPitch(p, eps float32) float32 {
	limit := float32(math.Pi/2) - eps
	return mgl32.Clamp(p, -limit, limit)
}

// ApplyYawPitch rotates q by yaw around the global Y axis first and then by
// pitch around its own (already yawed) local X axis.
func ApplyYawPitch(q mgl32.Quat, yaw, pitch float32) mgl32.Quat {
	yawRot := mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0})
	pitchRot := mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0})
	return yawRot.Mul(q).Mul(pitchRot).Normalize()
}

// LocalUp returns the +Y axis of orientation q in world space
func LocalUp(q mgl32.Quat) mgl32.Vec3 {
	return q.Rotate(mgl32.Vec3{0, 1, 0})
}

// LocalRight returns the +X axis of orientation q in world space
func LocalRight(q mgl32.Quat) mgl32.Vec3 {
	return q.Rotate(mgl32.Vec3{1, 0, 0})
}

// LocalForward returns the viewing direction (-Z) of orientation q
func LocalForward(q mgl32.Quat) mgl32.Vec3 {
	return q.Rotate(mgl32.Vec3{0, 0, -1})
}

// LookRotation builds the orientation whose -Z axis points along forward and
// whose +Y axis is as close to up as possible.
//
// When forward is parallel to up the cross product vanishes and the rotation
// is undefined. Another reference axis is substituted in that case so the
// result stays a valid unit quaternion.
func LookRotation(forward, up mgl32.Vec3) mgl32.Quat {
	if forward.Len() < parallelEpsilon {
		return mgl32.QuatIdent()
	}
	back := forward.Normalize().Mul(-1)

	right := up.Cross(back)
	if right.Len() < parallelEpsilon {
		right = fallbackReference(back).Cross(back)
	}
	right = right.Normalize()
	trueUp := back.Cross(right)

	m := mgl32.Mat4FromCols(
		right.Vec4(0),
		trueUp.Vec4(0),
		back.Vec4(0),
		mgl32.Vec4{0, 0, 0, 1},
	)
	return mgl32.Mat4ToQuat(m).Normalize()
}

// fallbackReference picks an axis that is not parallel to v
func fallbackReference(v mgl32.Vec3) mgl32.Vec3 {
	if mgl32.Abs(v.Z()) < 0.9 {
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{1, 0, 0}
}

// LookAngleFromDirection recovers the yaw/pitch pair that NormalizeDirection
// maps to dir. The pitch is clamped with eps.
func LookAngleFromDirection(dir mgl32.Vec3, eps float32) LookAngle {
	d := dir.Normalize()
	yaw := float32(math.Atan2(float64(d.Z()), float64(d.X())))
	pitch := float32(math.Asin(float64(mgl32.Clamp(d.Y(), -1, 1))))
	return LookAngle{Yaw: yaw, Pitch: ClampPitch(pitch, eps)}
}
