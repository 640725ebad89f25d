package camera

import "github.com/go-gl/mathgl/mgl32"

// Pose is the transform a rig hands back to the host each tick
type Pose struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// Forward returns the direction the camera is looking
func (p Pose) Forward() mgl32.Vec3 {
	return LocalForward(p.Orientation)
}

// Up returns the camera's local up vector in world space
func (p Pose) Up() mgl32.Vec3 {
	return LocalUp(p.Orientation)
}

// ViewMatrix returns the world-to-camera matrix for this pose
func (p Pose) ViewMatrix() mgl32.Mat4 {
	rot := p.Orientation.Conjugate().Mat4()
	return rot.Mul4(mgl32.Translate3D(-p.Position.X(), -p.Position.Y(), -p.Position.Z()))
}

// ApproxEqual compares two poses with a per-component tolerance
func (p Pose) ApproxEqual(other Pose, eps float32) bool {
	if !p.Position.ApproxEqualThreshold(other.Position, eps) {
		return false
	}
	// q and -q describe the same rotation
	return p.Orientation.ApproxEqualThreshold(other.Orientation, eps) ||
		p.Orientation.ApproxEqualThreshold(other.Orientation.Scale(-1), eps)
}
