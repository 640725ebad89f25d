package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func find(t *testing.T, s *Scene, name string) Object {
	t.Helper()
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	require.Failf(t, "object not found", "%s", name)
	return Object{}
}

func TestShooterLayout(t *testing.T) {
	s := Shooter()
	require.Len(t, s.Objects, 10)
	assert.Equal(t, mgl32.Vec3{3, 8, 5}, s.Light.Position)
	assert.Empty(t, s.Transparent(mgl32.Vec3{}))
	assert.Len(t, s.Opaque(), 10)

	ceiling := find(t, s, "ceiling")
	assert.Equal(t, float32(3), ceiling.Transform.Translation.Y())

	pillar := find(t, s, "pillar-nw")
	assert.Equal(t, Cube, pillar.Shape)
	assert.Equal(t, mgl32.Vec3{-1.5, 0.5, -1.5}, pillar.Transform.Translation)
}

func TestRoomSurfacesFaceInward(t *testing.T) {
	s := Shooter()
	for _, o := range s.Objects {
		if o.Shape != Plane {
			continue
		}
		normal := o.Transform.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
		toCenter := mgl32.Vec3{0, 1.5, 0}.Sub(o.Transform.Translation)
		assert.Greater(t, normal.Dot(toCenter), float32(0), o.Name)
	}
}

func TestEditorTransparency(t *testing.T) {
	s := Editor()
	assert.Len(t, s.Opaque(), 8)

	eye := mgl32.Vec3{2, 1, 2}
	blended := s.Transparent(eye)
	require.Len(t, blended, 2)
	// farthest first
	assert.Equal(t, "floor", blended[0].Name)
	assert.Equal(t, "pillar-se", blended[1].Name)
	assert.InDelta(t, 0.1, blended[1].Color.W(), 1e-6)

	// the shooter room is untouched
	assert.Empty(t, Shooter().Transparent(eye))
}

func TestTransformMatrix(t *testing.T) {
	tr := At(1, 2, 3).Rotated(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})).Sized(2)
	p := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 1, p.X(), 1e-5)
	assert.InDelta(t, 2, p.Y(), 1e-5)
	assert.InDelta(t, 1, p.Z(), 1e-5)
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "plane", Plane.String())
	assert.Equal(t, "cube", Cube.String())
	assert.Equal(t, "unknown", Shape(9).String())
}
