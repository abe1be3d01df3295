// SPDX-License-Identifier: GPL-2.0-or-later

package glstate

import (
	"maps"
	"slices"

	"goglobe/gpu"
)

// Program is a linked GPU program. It keeps the values last sent to each of
// its variables, so states sharing a program never rebind an unchanged value.
type Program struct {
	name       string
	id         gpu.ProgramID
	uniforms   map[string]gpu.Variable
	attributes map[string]gpu.Variable

	appliedUniforms   map[string]UniformValue
	appliedAttributes map[string]attributeSnapshot
}

func NewProgram(name string, id gpu.ProgramID, vars []gpu.Variable) *Program {
	p := &Program{
		name:              name,
		id:                id,
		uniforms:          make(map[string]gpu.Variable),
		attributes:        make(map[string]gpu.Variable),
		appliedUniforms:   make(map[string]UniformValue),
		appliedAttributes: make(map[string]attributeSnapshot),
	}
	for _, v := range vars {
		switch v.Kind {
		case gpu.Uniform:
			p.uniforms[v.Name] = v
		case gpu.Attribute:
			p.attributes[v.Name] = v
		}
	}
	return p
}

func (p *Program) Name() string      { return p.name }
func (p *Program) ID() gpu.ProgramID { return p.id }

func (p *Program) HasUniform(name string) bool {
	_, ok := p.uniforms[name]
	return ok
}

func (p *Program) HasAttribute(name string) bool {
	_, ok := p.attributes[name]
	return ok
}

// AppliedUniform returns the value last sent for name.
func (p *Program) AppliedUniform(name string) (UniformValue, bool) {
	v, ok := p.appliedUniforms[name]
	return v, ok
}

// Forget drops every remembered value. The next ApplyChanges rebinds all.
func (p *Program) Forget() {
	clear(p.appliedUniforms)
	clear(p.appliedAttributes)
}

func (p *Program) applyUniform(g gpu.GL, name string, v UniformValue) bool {
	u, ok := p.uniforms[name]
	if !ok {
		return false
	}
	if prev, ok := p.appliedUniforms[name]; ok && prev.Equals(v) {
		return false
	}
	v.apply(g, u.Location)
	p.appliedUniforms[name] = v
	return true
}

func (p *Program) applyAttribute(g gpu.GL, name string, v AttributeValue) bool {
	a, ok := p.attributes[name]
	if !ok {
		return false
	}
	snap := v.snapshot()
	if prev, ok := p.appliedAttributes[name]; ok && prev == snap {
		return false
	}
	v.apply(g, a.Location)
	p.appliedAttributes[name] = snap
	return true
}

// disableMissing turns off every attribute prog had enabled that is not in
// effective anymore. It returns the number of disabled arrays.
func (p *Program) disableMissing(g gpu.GL, effective map[string]AttributeValue) int {
	n := 0
	for _, name := range slices.Sorted(maps.Keys(p.appliedAttributes)) {
		if _, ok := effective[name]; ok {
			continue
		}
		g.DisableVertexAttribute(p.attributes[name].Location)
		delete(p.appliedAttributes, name)
		n++
	}
	return n
}
