package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Projection defaults
const (
	DefaultFOV  = 45.0
	DefaultNear = 0.1
	DefaultFar  = 100.0
)

// Projection is a perspective projection
type Projection struct {
	FOV    float32 // vertical, degrees
	Near   float32
	Far    float32
	Aspect float32
}

// NewProjection returns a perspective projection for the given aspect ratio
func NewProjection(fov, aspect float32) Projection {
	return Projection{
		FOV:    fov,
		Near:   DefaultNear,
		Far:    DefaultFar,
		Aspect: aspect,
	}
}

// Resize updates the aspect ratio from a framebuffer size. A zero height
// (minimized window) keeps the previous ratio.
func (p *Projection) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.Aspect = float32(width) / float32(height)
}

// Matrix returns the projection matrix
func (p Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), p.Aspect, p.Near, p.Far)
}
