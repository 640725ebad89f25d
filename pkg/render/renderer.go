// Package render draws a static scene from a camera pose.
package render

import (
	"embed"
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"github.com/YuShigurey/learn-bevy/internal/openglhelper"
	"github.com/YuShigurey/learn-bevy/pkg/camera"
	"github.com/YuShigurey/learn-bevy/pkg/scene"
)

//go:embed shaders
var shaderFS embed.FS

// ClearColor is the dark blue background
var ClearColor = mgl32.Vec4{0.05, 0.05, 0.1, 1.0}

// Renderer owns the GPU resources for drawing scenes
type Renderer struct {
	shader     *openglhelper.Shader
	meshes     map[scene.Shape]*openglhelper.Mesh
	projection Projection
	logger     zerolog.Logger
}

// NewRenderer compiles the scene shader and uploads the primitive meshes.
// A GL context must be current.
func NewRenderer(projection Projection, logger zerolog.Logger) (*Renderer, error) {
	shader, err := openglhelper.LoadShaderFS(shaderFS, "shaders/scene.vert", "shaders/scene.frag")
	if err != nil {
		return nil, fmt.Errorf("failed to load shader: %w", err)
	}

	r := &Renderer{
		shader: shader,
		meshes: map[scene.Shape]*openglhelper.Mesh{
			scene.Plane: openglhelper.NewMesh(openglhelper.PlaneGeometry()),
			scene.Cube:  openglhelper.NewMesh(openglhelper.CubeGeometry()),
		},
		projection: projection,
		logger:     logger,
	}
	logger.Debug().Int("meshes", len(r.meshes)).Msg("Renderer initialized")
	return r, nil
}

// Resize adapts the projection to a new framebuffer size
func (r *Renderer) Resize(width, height int) {
	r.projection.Resize(width, height)
}

// SetFOV changes the vertical field of view in degrees
func (r *Renderer) SetFOV(fov float32) {
	r.projection.FOV = fov
}

// Projection returns the current projection
func (r *Renderer) Projection() Projection {
	return r.projection
}

// Draw renders s as seen from pose. Opaque objects go first, then blended
// objects back to front with depth writes disabled.
func (r *Renderer) Draw(s *scene.Scene, pose camera.Pose) {
	r.shader.Use()
	r.shader.SetMat4("view", pose.ViewMatrix())
	r.shader.SetMat4("projection", r.projection.Matrix())
	r.shader.SetVec3("viewPos", pose.Position)
	r.shader.SetVec3("lightPos", s.Light.Position)
	r.shader.SetVec3("lightColor", s.Light.Color)

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for _, o := range s.Opaque() {
		r.drawObject(o)
	}

	blended := s.Transparent(pose.Position)
	if len(blended) == 0 {
		return
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	for _, o := range blended {
		r.drawObject(o)
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

func (r *Renderer) drawObject(o scene.Object) {
	mesh, ok := r.meshes[o.Shape]
	if !ok {
		r.logger.Warn().Str("object", o.Name).Stringer("shape", o.Shape).Msg("No mesh for shape")
		return
	}
	r.shader.SetMat4("model", o.Transform.Matrix())
	r.shader.SetVec4("objectColor", o.Color)
	mesh.Draw()
}

// Cleanup frees all GPU resources
func (r *Renderer) Cleanup() {
	for _, m := range r.meshes {
		m.Delete()
	}
	r.shader.Delete()
}
