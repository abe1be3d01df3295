// SPDX-License-Identifier: GPL-2.0-or-later

// Package shaders holds the GLSL programs goglobe ships with.
package shaders

import (
	"goglobe/gpu"
)

const (
	FlatColorMesh    = "FlatColorMesh"
	BusyQuad         = "BusyQuad"
	TexturedBusyQuad = "TexturedBusyQuad"
)

// Variable names shared by the programs below.
const (
	Projection = "Projection"
	ModelView  = "ModelView"
	Model      = "Model"
	FlatColor  = "FlatColor"
	PointSize  = "PointSize"
	Position   = "Position"
	TexCoord   = "TexCoord"
	// Texture samples unit 0.
	Texture = "Texture"
)

const (
	vertexFlatColorSource = `
#version 330
in vec3 Position;
uniform mat4 Projection;
uniform mat4 ModelView;
uniform mat4 Model;
uniform float PointSize;

void main() {
	gl_Position = Projection * ModelView * Model * vec4(Position, 1.0);
	gl_PointSize = PointSize;
}
` + "\x00"

	fragmentFlatColorSource = `
#version 330
out vec4 frag_color;
uniform vec4 FlatColor;

void main() {
	frag_color = FlatColor;
}
` + "\x00"

	vertexBusyQuadSource = `
#version 330
in vec3 Position;
uniform mat4 Projection;
uniform mat4 Model;

void main() {
	gl_Position = Projection * Model * vec4(Position, 1.0);
}
` + "\x00"

	vertexTexturedQuadSource = `
#version 330
in vec3 Position;
in vec2 TexCoord;
uniform mat4 Projection;
uniform mat4 Model;
out vec2 uv;

void main() {
	gl_Position = Projection * Model * vec4(Position, 1.0);
	uv = TexCoord;
}
` + "\x00"

	fragmentTexturedQuadSource = `
#version 330
in vec2 uv;
out vec4 frag_color;
uniform vec4 FlatColor;
uniform sampler2D Texture;

void main() {
	frag_color = texture(Texture, uv) * FlatColor;
}
` + "\x00"
)

// All returns every shipped program source.
func All() []gpu.ShaderSource {
	return []gpu.ShaderSource{
		{Name: FlatColorMesh, Vertex: vertexFlatColorSource, Fragment: fragmentFlatColorSource},
		{Name: BusyQuad, Vertex: vertexBusyQuadSource, Fragment: fragmentFlatColorSource},
		{Name: TexturedBusyQuad, Vertex: vertexTexturedQuadSource, Fragment: fragmentTexturedQuadSource},
	}
}
