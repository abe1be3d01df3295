// SPDX-License-Identifier: GPL-2.0-or-later

// Package glh implements gpu.GL on OpenGL 4.6 core. Every method must be
// called on the thread owning the GL context.
package glh

import (
	"fmt"
	"strings"

	"goglobe/gpu"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"
)

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(src)
	defer free()
	length := int32(len(src))
	gl.ShaderSource(shader, 1, csource, &length)
	gl.CompileShader(shader)
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("Failed to compile shader: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func linkProgram(src gpu.ShaderSource) (uint32, error) {
	vert, err := compileShader(src.Vertex, gl.VERTEX_SHADER)
	if err != nil {
		return 0, errors.Wrap(err, "vertex shader")
	}
	frag, err := compileShader(src.Fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, errors.Wrap(err, "fragment shader")
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, errors.Errorf("Failed to link program: %v", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}

func valueType(t uint32) gpu.ValueType {
	switch t {
	case gl.BOOL:
		return gpu.TypeBool
	case gl.FLOAT:
		return gpu.TypeFloat
	case gl.FLOAT_VEC2:
		return gpu.TypeVec2
	case gl.FLOAT_VEC3:
		return gpu.TypeVec3
	case gl.FLOAT_VEC4:
		return gpu.TypeVec4
	case gl.FLOAT_MAT4:
		return gpu.TypeMatrix4
	case gl.SAMPLER_2D:
		return gpu.TypeSampler2D
	}
	return gpu.TypeUnknown
}

func primitive(p gpu.Primitive) uint32 {
	switch p {
	case gpu.Points:
		return gl.POINTS
	case gpu.Lines:
		return gl.LINES
	case gpu.LineStrip:
		return gl.LINE_STRIP
	case gpu.LineLoop:
		return gl.LINE_LOOP
	case gpu.Triangles:
		return gl.TRIANGLES
	case gpu.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case gpu.TriangleFan:
		return gl.TRIANGLE_FAN
	}
	panic(fmt.Sprintf("glh: unknown primitive %v", p))
}

func cullFace(f gpu.CullFace) uint32 {
	switch f {
	case gpu.CullFront:
		return gl.FRONT
	case gpu.CullFrontAndBack:
		return gl.FRONT_AND_BACK
	}
	return gl.BACK
}

type activeFunc func(program, index uint32, bufSize int32, length *int32, size *int32, xtype *uint32, name *uint8)
type locationFunc func(program uint32, name *uint8) int32

// variables lists the active uniforms or attributes of prog.
func variables(prog uint32, kind gpu.VariableKind) []gpu.Variable {
	countParam, lengthParam := uint32(gl.ACTIVE_UNIFORMS), uint32(gl.ACTIVE_UNIFORM_MAX_LENGTH)
	var active activeFunc = gl.GetActiveUniform
	var location locationFunc = gl.GetUniformLocation
	if kind == gpu.Attribute {
		countParam, lengthParam = gl.ACTIVE_ATTRIBUTES, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH
		active = gl.GetActiveAttrib
		location = gl.GetAttribLocation
	}
	var count, maxLength int32
	gl.GetProgramiv(prog, countParam, &count)
	gl.GetProgramiv(prog, lengthParam, &maxLength)

	vars := make([]gpu.Variable, 0, count)
	for i := uint32(0); i < uint32(count); i++ {
		buf := make([]uint8, maxLength+1)
		var length, size int32
		var xtype uint32
		active(prog, i, maxLength+1, &length, &size, &xtype, &buf[0])
		name := string(buf[:length])
		vars = append(vars, gpu.Variable{
			Name:     name,
			Kind:     kind,
			Location: location(prog, gl.Str(name+"\x00")),
			Type:     valueType(xtype),
		})
	}
	return vars
}
