// Package scene describes the static rooms the camera demos fly around in.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shape is the primitive mesh an object is drawn with
type Shape uint8

const (
	// Plane is a square in the XZ plane facing +Y
	Plane Shape = iota
	// Cube is an axis-aligned box centered on its origin
	Cube
)

func (s Shape) String() string {
	switch s {
	case Plane:
		return "plane"
	case Cube:
		return "cube"
	}
	return "unknown"
}

// Transform places an object in the world
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       float32
}

// At returns an unrotated transform at position p
func At(x, y, z float32) Transform {
	return Transform{
		Translation: mgl32.Vec3{x, y, z},
		Rotation:    mgl32.QuatIdent(),
		Scale:       1,
	}
}

// Rotated returns t with rotation q applied
func (t Transform) Rotated(q mgl32.Quat) Transform {
	t.Rotation = q
	return t
}

// Sized returns t with a uniform scale
func (t Transform) Sized(s float32) Transform {
	t.Scale = s
	return t
}

// Matrix returns translation * rotation * scale
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale, t.Scale, t.Scale))
}

// Object is one drawable item
type Object struct {
	Name      string
	Shape     Shape
	Transform Transform
	Color     mgl32.Vec4 // RGBA, alpha < 1 is drawn blended
}

// Transparent reports whether the object needs blending
func (o Object) Transparent() bool {
	return o.Color.W() < 1
}

// PointLight is an omnidirectional light
type PointLight struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// Scene is a static set of objects lit by one point light
type Scene struct {
	Name    string
	Objects []Object
	Light   PointLight
}

// Opaque returns the objects drawn without blending, in scene order
func (s *Scene) Opaque() []Object {
	var out []Object
	for _, o := range s.Objects {
		if !o.Transparent() {
			out = append(out, o)
		}
	}
	return out
}

// Transparent returns the blended objects sorted back to front as seen from eye
func (s *Scene) Transparent(eye mgl32.Vec3) []Object {
	var out []Object
	for _, o := range s.Objects {
		if o.Transparent() {
			out = append(out, o)
		}
	}
	dist := func(o Object) float32 {
		return o.Transform.Translation.Sub(eye).LenSqr()
	}
	// insertion sort, scenes hold a handful of objects
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && dist(out[j]) > dist(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

const (
	roomSize     = 5
	ceilingLevel = 3
	wallOffset   = 2
	wallCenter   = 0.5
	pillarOffset = 1.5
)

var (
	floorColor   = mgl32.Vec4{0.3, 0.5, 0.3, 1}
	ceilingColor = mgl32.Vec4{0.8, 0.5, 0.8, 1}
	wallColor    = mgl32.Vec4{0.8, 0.9, 0.8, 1}
	pillarColor  = mgl32.Vec4{0.8, 0.7, 0.6, 1}
	lightColor   = mgl32.Vec3{1, 1, 1}
)

// room builds the floor, ceiling, four walls and four pillars shared by both demos
func room(name string) *Scene {
	plane := func(name string, t Transform, c mgl32.Vec4) Object {
		return Object{Name: name, Shape: Plane, Transform: t.Sized(roomSize), Color: c}
	}
	pillar := func(name string, x, z float32) Object {
		return Object{Name: name, Shape: Cube, Transform: At(x, 0.5, z), Color: pillarColor}
	}

	return &Scene{
		Name: name,
		Objects: []Object{
			plane("floor", At(0, 0, 0), floorColor),
			plane("ceiling", At(0, ceilingLevel, 0).Rotated(mgl32.QuatRotate(math.Pi, mgl32.Vec3{1, 0, 0})), ceilingColor),
			plane("wall-west", At(-wallOffset, wallCenter, 0).Rotated(mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{0, 0, 1})), wallColor),
			plane("wall-east", At(wallOffset, wallCenter, 0).Rotated(mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 0, 1})), wallColor),
			plane("wall-north", At(0, wallCenter, -wallOffset).Rotated(mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{1, 0, 0})), wallColor),
			plane("wall-south", At(0, wallCenter, wallOffset).Rotated(mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{1, 0, 0})), wallColor),
			pillar("pillar-se", pillarOffset, pillarOffset),
			pillar("pillar-ne", pillarOffset, -pillarOffset),
			pillar("pillar-sw", -pillarOffset, pillarOffset),
			pillar("pillar-nw", -pillarOffset, -pillarOffset),
		},
		Light: PointLight{
			Position: mgl32.Vec3{3, 8, 5},
			Color:    lightColor,
		},
	}
}

// Shooter is the closed room used by the free-fly demo
func Shooter() *Scene {
	return room("shooter")
}

// Editor is the same room with a see-through floor and one ghosted pillar
func Editor() *Scene {
	s := room("editor")
	for i := range s.Objects {
		switch s.Objects[i].Name {
		case "floor":
			s.Objects[i].Color[3] = 0.5
		case "pillar-se":
			s.Objects[i].Color[3] = 0.1
		}
	}
	return s
}
