package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
)

// FloatsPerVertex is the interleaved layout: position (3), normal (3)
const FloatsPerVertex = 6

// Geometry is CPU-side mesh data ready for upload
type Geometry struct {
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of interleaved vertices
func (g Geometry) VertexCount() int {
	return len(g.Vertices) / FloatsPerVertex
}

// Mesh is an uploaded Geometry
type Mesh struct {
	vao        *VertexArrayObject
	vbo        *BufferObject
	ebo        *BufferObject
	indexCount int32
}

// NewMesh uploads g and configures the position/normal attributes
func NewMesh(g Geometry) *Mesh {
	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(g.Vertices)
	ebo := NewEBO(g.Indices)

	stride := int32(FloatsPerVertex * 4)
	vao.SetVertexAttribPointer(0, 3, gl.FLOAT, false, stride, 0)
	vao.SetVertexAttribPointer(1, 3, gl.FLOAT, false, stride, 3*4)

	vao.Unbind()

	return &Mesh{
		vao:        vao,
		vbo:        vbo,
		ebo:        ebo,
		indexCount: int32(len(g.Indices)),
	}
}

// Draw renders the mesh with whatever shader is in use
func (m *Mesh) Draw() {
	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	m.vao.Unbind()
}

// Delete releases all resources
func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}

// PlaneGeometry is a unit square in the XZ plane facing +Y, wound
// counter-clockwise when seen from above.
func PlaneGeometry() Geometry {
	return Geometry{
		Vertices: []float32{
			-0.5, 0, 0.5, 0, 1, 0,
			0.5, 0, 0.5, 0, 1, 0,
			0.5, 0, -0.5, 0, 1, 0,
			-0.5, 0, -0.5, 0, 1, 0,
		},
		Indices: []uint32{0, 1, 2, 2, 3, 0},
	}
}

// CubeGeometry is a unit cube centered on the origin with one quad per face
func CubeGeometry() Geometry {
	vertices := []float32{
		// Front face
		-0.5, -0.5, 0.5, 0, 0, 1,
		0.5, -0.5, 0.5, 0, 0, 1,
		0.5, 0.5, 0.5, 0, 0, 1,
		-0.5, 0.5, 0.5, 0, 0, 1,

		// Back face
		-0.5, -0.5, -0.5, 0, 0, -1,
		-0.5, 0.5, -0.5, 0, 0, -1,
		0.5, 0.5, -0.5, 0, 0, -1,
		0.5, -0.5, -0.5, 0, 0, -1,

		// Top face
		-0.5, 0.5, -0.5, 0, 1, 0,
		-0.5, 0.5, 0.5, 0, 1, 0,
		0.5, 0.5, 0.5, 0, 1, 0,
		0.5, 0.5, -0.5, 0, 1, 0,

		// Bottom face
		-0.5, -0.5, -0.5, 0, -1, 0,
		0.5, -0.5, -0.5, 0, -1, 0,
		0.5, -0.5, 0.5, 0, -1, 0,
		-0.5, -0.5, 0.5, 0, -1, 0,

		// Right face
		0.5, -0.5, -0.5, 1, 0, 0,
		0.5, 0.5, -0.5, 1, 0, 0,
		0.5, 0.5, 0.5, 1, 0, 0,
		0.5, -0.5, 0.5, 1, 0, 0,

		// Left face
		-0.5, -0.5, -0.5, -1, 0, 0,
		-0.5, -0.5, 0.5, -1, 0, 0,
		-0.5, 0.5, 0.5, -1, 0, 0,
		-0.5, 0.5, -0.5, -1, 0, 0,
	}

	indices := make([]uint32, 0, 36)
	for face := uint32(0); face < 6; face++ {
		base := face * 4
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	return Geometry{Vertices: vertices, Indices: indices}
}
