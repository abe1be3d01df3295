// SPDX-License-Identifier: GPL-2.0-or-later

package glstate

import (
	"goglobe/conlog"
	"goglobe/gpu"

	"github.com/pkg/errors"
)

// ProgramManager compiles programs on first use and keeps them by name.
type ProgramManager struct {
	dev      *Device
	log      conlog.Logger
	sources  map[string]gpu.ShaderSource
	programs map[string]*Program
	failed   map[string]error
}

func NewProgramManager(d *Device, log conlog.Logger, sources ...gpu.ShaderSource) *ProgramManager {
	m := &ProgramManager{
		dev:      d,
		log:      log,
		sources:  make(map[string]gpu.ShaderSource),
		programs: make(map[string]*Program),
		failed:   make(map[string]error),
	}
	for _, s := range sources {
		m.sources[s.Name] = s
	}
	return m
}

func (m *ProgramManager) Device() *Device { return m.dev }

// Get returns the program called name, compiling it if needed. A program
// that failed once is not compiled again; its error is logged only the first
// time and returned on every call.
func (m *ProgramManager) Get(name string) (*Program, error) {
	if p, ok := m.programs[name]; ok {
		return p, nil
	}
	if err, ok := m.failed[name]; ok {
		return nil, err
	}
	p, err := m.compile(name)
	if err != nil {
		m.failed[name] = err
		m.log.Error("%v", err)
		return nil, err
	}
	return p, nil
}

func (m *ProgramManager) compile(name string) (*Program, error) {
	src, ok := m.sources[name]
	if !ok {
		return nil, errors.Errorf("unknown program %q", name)
	}
	id, vars, err := m.dev.gl.CompileProgram(src)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling program %q", name)
	}
	p := NewProgram(name, id, vars)
	m.programs[name] = p
	m.log.Info("Compiled GPU program %q (%d variables)", name, len(vars))
	return p, nil
}

// Invalidate forgets everything sent to the GL so far: the device state and
// the values remembered by every program. Needed after a context loss.
func (m *ProgramManager) Invalidate() {
	m.dev.Invalidate()
	for _, p := range m.programs {
		p.Forget()
	}
}

// Close deletes every compiled program.
func (m *ProgramManager) Close() {
	for name, p := range m.programs {
		if m.dev.current == p {
			m.dev.current = nil
		}
		m.dev.gl.DeleteProgram(p.id)
		delete(m.programs, name)
	}
}
