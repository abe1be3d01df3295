// SPDX-License-Identifier: GPL-2.0-or-later

package glstate

import (
	"fmt"
	"testing"

	"goglobe/conlog"
	"goglobe/gpu"
	"goglobe/gpu/gputest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestProgramManagerCaches(t *testing.T) {
	r := gputest.New()
	r.Declare("mesh", []string{"Model"}, []string{"Position"})
	m := NewProgramManager(NewDevice(r), conlog.Nop(), gpu.ShaderSource{Name: "mesh"})

	p1, err := m.Get("mesh")
	require.NoError(t, err)
	p2, err := m.Get("mesh")
	require.NoError(t, err)
	assert.Same(t, p1, p2)
	assert.Equal(t, 1, r.Count("CompileProgram"))
	assert.True(t, p1.HasUniform("Model"))
	assert.True(t, p1.HasAttribute("Position"))

	m.Close()
	assert.Equal(t, 1, r.Count("DeleteProgram"))
}

func TestProgramManagerErrors(t *testing.T) {
	r := gputest.New()
	m := NewProgramManager(NewDevice(r), conlog.Nop(), gpu.ShaderSource{Name: "broken"})

	_, err := m.Get("missing")
	assert.Error(t, err)

	r.CompileErr = fmt.Errorf("syntax error")
	_, err = m.Get("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Contains(t, err.Error(), "syntax error")
}

func TestProgramManagerRemembersFailures(t *testing.T) {
	r := gputest.New()
	core, logs := observer.New(zapcore.ErrorLevel)
	m := NewProgramManager(NewDevice(r), conlog.New(zap.New(core)), gpu.ShaderSource{Name: "broken"})
	r.CompileErr = fmt.Errorf("syntax error")

	for range 3 {
		_, err := m.Get("broken")
		require.Error(t, err)
		_, err = m.Get("missing")
		require.Error(t, err)
	}
	assert.Equal(t, 1, r.Count("CompileProgram"))
	assert.Equal(t, 2, logs.Len())
}

func TestProgramManagerInvalidate(t *testing.T) {
	r := gputest.New()
	r.Declare("mesh", []string{"PointSize"}, []string{"Position"})
	d := NewDevice(r)
	m := NewProgramManager(d, conlog.Nop(), gpu.ShaderSource{Name: "mesh"})
	p, err := m.Get("mesh")
	require.NoError(t, err)

	s := NewState(nil)
	s.SetFloat("PointSize", 2)
	s.SetAttribute("Position", gpu.NewFloatBufferFrom(1, 2, 3), 3, 0, false, 0)
	s.ApplyChanges(d, p)
	s.ApplyChanges(d, p)
	assert.Equal(t, 1, r.Count("UseProgram"))
	assert.Equal(t, 1, r.Count("UniformFloat"))
	assert.Equal(t, 1, r.Count("VertexAttribute"))

	m.Invalidate()
	assert.Nil(t, d.Current())
	s.ApplyChanges(d, p)
	assert.Equal(t, 2, r.Count("UseProgram"))
	assert.Equal(t, 2, r.Count("UniformFloat"))
	assert.Equal(t, 2, r.Count("VertexAttribute"))
}
