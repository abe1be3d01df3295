// SPDX-License-Identifier: GPL-2.0-or-later

// Package glstate holds layered GPU program state and applies only what
// changed since the last draw.
package glstate

import (
	"maps"
	"slices"

	"goglobe/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

type boolFlag struct {
	set bool
	v   bool
}

type floatFlag struct {
	set bool
	v   float32
}

// State is one layer of named uniform and attribute values plus the global
// flags a draw needs. The parent is fixed at construction and not owned, so a
// parent can never reference one of its descendants.
type State struct {
	parent     *State
	uniforms   map[string]UniformValue
	attributes map[string]AttributeValue
	depthTest  boolFlag
	lineWidth  floatFlag
}

func NewState(parent *State) *State {
	return &State{
		parent:     parent,
		uniforms:   make(map[string]UniformValue),
		attributes: make(map[string]AttributeValue),
	}
}

func (s *State) Parent() *State { return s.parent }

// SetUniform records v for name, replacing any earlier value in this layer.
// Names the program does not declare are accepted and ignored at apply time.
func (s *State) SetUniform(name string, v UniformValue) {
	s.uniforms[name] = v
}

func (s *State) SetBool(name string, b bool)          { s.SetUniform(name, Bool(b)) }
func (s *State) SetFloat(name string, f float32)      { s.SetUniform(name, Float(f)) }
func (s *State) SetVec2(name string, x, y float32)    { s.SetUniform(name, Vec2(x, y)) }
func (s *State) SetMatrix4(name string, m mgl32.Mat4) { s.SetUniform(name, Matrix4(m)) }
func (s *State) SetColor(name string, c gpu.Color)    { s.SetUniform(name, ColorValue(c)) }

func (s *State) SetVec4(name string, x, y, z, w float32) {
	s.SetUniform(name, Vec4(x, y, z, w))
}

// SetAttribute records a buffer backed attribute for name.
func (s *State) SetAttribute(name string, buf *gpu.FloatBuffer, size, index int, normalized bool, stride int) {
	s.attributes[name] = Attribute(buf, size, index, normalized, stride)
}

// RemoveUniform drops the override in this layer; the parent value, if any,
// becomes effective again.
func (s *State) RemoveUniform(name string) {
	delete(s.uniforms, name)
}

func (s *State) RemoveAttribute(name string) {
	delete(s.attributes, name)
}

func (s *State) SetDepthTest(enabled bool) {
	s.depthTest = boolFlag{set: true, v: enabled}
}

func (s *State) SetLineWidth(w float32) {
	s.lineWidth = floatFlag{set: true, v: w}
}

// Uniform resolves name through the chain, nearest layer first.
func (s *State) Uniform(name string) (UniformValue, bool) {
	for st := s; st != nil; st = st.parent {
		if v, ok := st.uniforms[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Attribute resolves name through the chain, nearest layer first.
func (s *State) Attribute(name string) (AttributeValue, bool) {
	for st := s; st != nil; st = st.parent {
		if v, ok := st.attributes[name]; ok {
			return v, true
		}
	}
	return AttributeValue{}, false
}

// chain returns the layers from root to s.
func (s *State) chain() []*State {
	var c []*State
	for st := s; st != nil; st = st.parent {
		c = append(c, st)
	}
	slices.Reverse(c)
	return c
}

type effective struct {
	uniforms   map[string]UniformValue
	attributes map[string]AttributeValue
	depthTest  boolFlag
	lineWidth  floatFlag
}

func (s *State) resolve() effective {
	e := effective{
		uniforms:   make(map[string]UniformValue),
		attributes: make(map[string]AttributeValue),
	}
	for _, st := range s.chain() {
		maps.Copy(e.uniforms, st.uniforms)
		maps.Copy(e.attributes, st.attributes)
		if st.depthTest.set {
			e.depthTest = st.depthTest
		}
		if st.lineWidth.set {
			e.lineWidth = st.lineWidth
		}
	}
	return e
}

// ApplyChanges binds prog and sends every effective value that differs from
// what prog last received. It issues at most one binding call per name and
// must be called once per draw, after all setters for that draw. Attributes
// prog had enabled that no layer sets anymore are disabled.
func (s *State) ApplyChanges(d *Device, prog *Program) {
	e := s.resolve()
	d.use(prog)
	if e.depthTest.set {
		d.setDepthTest(e.depthTest.v)
	}
	if e.lineWidth.set {
		d.setLineWidth(e.lineWidth.v)
	}
	for _, name := range slices.Sorted(maps.Keys(e.uniforms)) {
		if prog.applyUniform(d.gl, name, e.uniforms[name]) {
			d.bindings++
		}
	}
	d.bindings += prog.disableMissing(d.gl, e.attributes)
	for _, name := range slices.Sorted(maps.Keys(e.attributes)) {
		if prog.applyAttribute(d.gl, name, e.attributes[name]) {
			d.bindings++
		}
	}
}
