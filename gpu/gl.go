// SPDX-License-Identifier: GPL-2.0-or-later

// Package gpu describes the graphics capability the rest of goglobe draws
// against. Nothing in here talks to a driver; see package glh for the OpenGL
// implementation.
package gpu

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

type ProgramID uint32

type TextureID uint32

type Primitive int

const (
	Points Primitive = iota
	Lines
	LineStrip
	LineLoop
	Triangles
	TriangleStrip
	TriangleFan
)

func (p Primitive) String() string {
	switch p {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case LineStrip:
		return "line-strip"
	case LineLoop:
		return "line-loop"
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle-strip"
	case TriangleFan:
		return "triangle-fan"
	}
	return "unknown"
}

type CullFace int

const (
	CullBack CullFace = iota
	CullFront
	CullFrontAndBack
)

// ShaderSource is the input to GL.CompileProgram.
type ShaderSource struct {
	Name     string
	Vertex   string
	Fragment string
}

// GL is the only way the core reaches the graphics driver. All methods must be
// called from the render thread.
//
// Vertex attribute bindings belong to the program in use: binding a program
// again restores the attributes it had, whatever other programs bound at the
// same locations in between.
type GL interface {
	ClearScreen(c Color)
	Viewport(width, height int)

	EnableDepthTest()
	DisableDepthTest()
	EnableCullFace(face CullFace)
	DisableCullFace()
	LineWidth(w float32)

	CompileProgram(src ShaderSource) (ProgramID, []Variable, error)
	DeleteProgram(id ProgramID)
	UseProgram(id ProgramID)

	UniformBool(location int32, b bool)
	UniformFloat(location int32, f float32)
	UniformVec2(location int32, v mgl32.Vec2)
	UniformVec4(location int32, v mgl32.Vec4)
	UniformMatrix4(location int32, m mgl32.Mat4)

	// VertexAttribute binds buf to the attribute at location and enables it.
	// index is the first float of buf the attribute reads.
	VertexAttribute(location int32, buf *FloatBuffer, size, index int, normalized bool, stride int)
	DisableVertexAttribute(location int32)

	DrawArrays(mode Primitive, first, count int)
	DrawElements(mode Primitive, indices *ShortBuffer)

	UploadTexture(name string, img image.Image, mipmap bool) (TextureID, error)
	// BindTexture makes id the texture sampled by texture unit 0.
	BindTexture(id TextureID)
	DeleteTexture(id TextureID)
}
