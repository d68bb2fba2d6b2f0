package render

import (
	"github.com/e2McNuts/three-sixty-media/sphere"
)

// SphereMesh owns the GPU buffers of a sphere.Mesh.
type SphereMesh struct {
	gl   GL
	mesh *sphere.Mesh

	uploaded bool
	position Buffer
	texcoord Buffer
	index    Buffer
}

func NewSphereMesh(gl GL, m *sphere.Mesh) *SphereMesh {
	return &SphereMesh{gl: gl, mesh: m}
}

func (s *SphereMesh) Mesh() *sphere.Mesh {
	return s.mesh
}

func (s *SphereMesh) upload() {
	s.position = s.gl.CreateBuffer()
	s.gl.BindBuffer(ArrayBuffer, s.position)
	s.gl.BufferFloat32(ArrayBuffer, s.mesh.Positions)

	s.texcoord = s.gl.CreateBuffer()
	s.gl.BindBuffer(ArrayBuffer, s.texcoord)
	s.gl.BufferFloat32(ArrayBuffer, s.mesh.TexCoords)

	s.index = s.gl.CreateBuffer()
	s.gl.BindBuffer(ElementArrayBuffer, s.index)
	s.gl.BufferUint16(ElementArrayBuffer, s.mesh.Indices)

	s.uploaded = true
}

// Draw binds both attribute streams, draws every index and unbinds them.
func (s *SphereMesh) Draw(aPos, aTex int) {
	if !s.uploaded {
		s.upload()
	}

	s.gl.BindBuffer(ArrayBuffer, s.position)
	s.gl.VertexAttribPointer(aPos, 3)
	s.gl.EnableVertexAttribArray(aPos)

	s.gl.BindBuffer(ArrayBuffer, s.texcoord)
	s.gl.VertexAttribPointer(aTex, 2)
	s.gl.EnableVertexAttribArray(aTex)

	s.gl.BindBuffer(ElementArrayBuffer, s.index)
	s.gl.DrawTriangles(s.mesh.IndexCount())

	s.gl.DisableVertexAttribArray(aPos)
	s.gl.DisableVertexAttribArray(aTex)
}

// Release deletes the GPU buffers. The mesh uploads again on the next Draw.
func (s *SphereMesh) Release() {
	if !s.uploaded {
		return
	}
	s.gl.DeleteBuffer(s.position)
	s.gl.DeleteBuffer(s.texcoord)
	s.gl.DeleteBuffer(s.index)
	s.position, s.texcoord, s.index = 0, 0, 0
	s.uploaded = false
}
