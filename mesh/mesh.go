// SPDX-License-Identifier: GPL-2.0-or-later

// Package mesh turns vertex buffers into draw calls.
package mesh

import (
	"goglobe/bounds"
	"goglobe/frame"
	"goglobe/glstate"
	"goglobe/gpu"

	"github.com/go-gl/mathgl/mgl64"
)

type RenderType int

const (
	Regular RenderType = iota
	// DepthOnly fills the depth buffer without visible color.
	DepthOnly
)

type Mesh interface {
	VertexCount() int
	// Vertex returns vertex i in world coordinates.
	Vertex(i int) mgl64.Vec3
	// BoundingVolume is computed on first use and cached until
	// InvalidateBoundingVolume.
	BoundingVolume() bounds.Volume
	InvalidateBoundingVolume()
	IsTransparent(rc *frame.RenderContext) bool
	Render(rc *frame.RenderContext, parent *glstate.State)
	ZRender(rc *frame.RenderContext, parent *glstate.State)
	Close()
}

// VertexSource is a vertex buffer together with who is responsible for
// releasing it.
type VertexSource struct {
	buf   *gpu.FloatBuffer
	owned bool
}

// Owned hands buf over to the mesh. The mesh releases it on Close.
func Owned(buf *gpu.FloatBuffer) VertexSource {
	return VertexSource{buf: buf, owned: true}
}

// Borrowed lets the mesh read buf without releasing it. buf must outlive
// the mesh.
func Borrowed(buf *gpu.FloatBuffer) VertexSource {
	return VertexSource{buf: buf}
}

func (v VertexSource) Buffer() *gpu.FloatBuffer { return v.buf }
func (v VertexSource) IsOwned() bool            { return v.owned }

// Params are fixed once a mesh is created. Vertices hold xyz triples
// relative to Center.
type Params struct {
	Primitive gpu.Primitive
	Center    mgl64.Vec3
	Vertices  VertexSource
	LineWidth float32
	PointSize float32
	DepthTest bool
	// Color is the flat color, white if nil.
	Color *gpu.Color
}
