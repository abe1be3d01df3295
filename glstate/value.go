// SPDX-License-Identifier: GPL-2.0-or-later

package glstate

import (
	"fmt"

	"goglobe/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformValue is an immutable uniform payload. Values are replaced, never
// modified.
type UniformValue interface {
	Type() gpu.ValueType
	// Equals compares kind and payload, never identity.
	Equals(o UniformValue) bool
	apply(g gpu.GL, location int32)
	fmt.Stringer
}

type boolValue struct{ v bool }
type floatValue struct{ v float32 }
type vec2Value struct{ v mgl32.Vec2 }
type vec4Value struct{ v mgl32.Vec4 }
type matrix4Value struct{ v mgl32.Mat4 }

func Bool(b bool) UniformValue                 { return boolValue{b} }
func Float(f float32) UniformValue             { return floatValue{f} }
func Vec2(x, y float32) UniformValue           { return vec2Value{mgl32.Vec2{x, y}} }
func Vec4(x, y, z, w float32) UniformValue     { return vec4Value{mgl32.Vec4{x, y, z, w}} }
func Matrix4(m mgl32.Mat4) UniformValue        { return matrix4Value{m} }
func ColorValue(c gpu.Color) UniformValue      { return vec4Value{mgl32.Vec4{c.R, c.G, c.B, c.A}} }
func (boolValue) Type() gpu.ValueType          { return gpu.TypeBool }
func (floatValue) Type() gpu.ValueType         { return gpu.TypeFloat }
func (vec2Value) Type() gpu.ValueType          { return gpu.TypeVec2 }
func (vec4Value) Type() gpu.ValueType          { return gpu.TypeVec4 }
func (matrix4Value) Type() gpu.ValueType       { return gpu.TypeMatrix4 }
func (v boolValue) String() string             { return fmt.Sprintf("bool(%v)", v.v) }
func (v floatValue) String() string            { return fmt.Sprintf("float(%v)", v.v) }
func (v vec2Value) String() string             { return fmt.Sprintf("vec2%v", v.v) }
func (v vec4Value) String() string             { return fmt.Sprintf("vec4%v", v.v) }
func (v matrix4Value) String() string          { return fmt.Sprintf("mat4%v", v.v) }
func (v boolValue) apply(g gpu.GL, l int32)    { g.UniformBool(l, v.v) }
func (v floatValue) apply(g gpu.GL, l int32)   { g.UniformFloat(l, v.v) }
func (v vec2Value) apply(g gpu.GL, l int32)    { g.UniformVec2(l, v.v) }
func (v vec4Value) apply(g gpu.GL, l int32)    { g.UniformVec4(l, v.v) }
func (v matrix4Value) apply(g gpu.GL, l int32) { g.UniformMatrix4(l, v.v) }

func (v boolValue) Equals(o UniformValue) bool {
	ov, ok := o.(boolValue)
	return ok && ov.v == v.v
}

func (v floatValue) Equals(o UniformValue) bool {
	ov, ok := o.(floatValue)
	return ok && ov.v == v.v
}

func (v vec2Value) Equals(o UniformValue) bool {
	ov, ok := o.(vec2Value)
	return ok && ov.v == v.v
}

func (v vec4Value) Equals(o UniformValue) bool {
	ov, ok := o.(vec4Value)
	return ok && ov.v == v.v
}

func (v matrix4Value) Equals(o UniformValue) bool {
	ov, ok := o.(matrix4Value)
	return ok && ov.v == v.v
}

// AttributeValue binds a float buffer to a vertex attribute. The binding
// parameters always travel together with the buffer.
type AttributeValue struct {
	buf        *gpu.FloatBuffer
	size       int
	index      int
	normalized bool
	stride     int
}

func Attribute(buf *gpu.FloatBuffer, size, index int, normalized bool, stride int) AttributeValue {
	return AttributeValue{
		buf:        buf,
		size:       size,
		index:      index,
		normalized: normalized,
		stride:     stride,
	}
}

func (a AttributeValue) Buffer() *gpu.FloatBuffer { return a.buf }
func (a AttributeValue) Size() int                { return a.size }
func (a AttributeValue) Index() int               { return a.index }
func (a AttributeValue) Normalized() bool         { return a.normalized }
func (a AttributeValue) Stride() int              { return a.stride }

func (a AttributeValue) String() string {
	return fmt.Sprintf("attribute(buffer %d v%d, size %d, index %d, normalized %v, stride %d)",
		a.buf.ID(), a.buf.Version(), a.size, a.index, a.normalized, a.stride)
}

// attributeSnapshot is what a program remembers about an applied attribute.
// The buffer version is captured so rewritten buffers get rebound.
type attributeSnapshot struct {
	id         uint64
	version    uint64
	size       int
	index      int
	normalized bool
	stride     int
}

func (a AttributeValue) snapshot() attributeSnapshot {
	return attributeSnapshot{
		id:         a.buf.ID(),
		version:    a.buf.Version(),
		size:       a.size,
		index:      a.index,
		normalized: a.normalized,
		stride:     a.stride,
	}
}

func (a AttributeValue) apply(g gpu.GL, location int32) {
	g.VertexAttribute(location, a.buf, a.size, a.index, a.normalized, a.stride)
}
