// SPDX-License-Identifier: GPL-2.0-or-later

package gpu

type VariableKind int

const (
	Uniform VariableKind = iota
	Attribute
)

type ValueType int

const (
	TypeBool ValueType = iota
	TypeFloat
	TypeVec2
	TypeVec3
	TypeVec4
	TypeMatrix4
	TypeSampler2D
	TypeUnknown
)

// Variable is a uniform or attribute declared by a linked program.
type Variable struct {
	Name     string
	Kind     VariableKind
	Location int32
	Type     ValueType
}
