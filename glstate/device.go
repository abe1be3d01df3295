// SPDX-License-Identifier: GPL-2.0-or-later

package glstate

import (
	"goglobe/gpu"
)

// Device wraps the GL capability with knowledge about context wide state:
// the bound program and the global flags last pushed.
type Device struct {
	gl      gpu.GL
	current *Program

	depthTestKnown bool
	depthTest      bool
	lineWidthKnown bool
	lineWidth      float32

	bindings int
}

func NewDevice(g gpu.GL) *Device {
	return &Device{gl: g}
}

func (d *Device) GL() gpu.GL { return d.gl }

// Bindings reports how many binding calls ApplyChanges issued so far.
func (d *Device) Bindings() int { return d.bindings }

// Current returns the bound program or nil.
func (d *Device) Current() *Program { return d.current }

// Invalidate forgets the bound program and global flags after code outside
// of glstate touched them. Values remembered by programs are kept; use
// ProgramManager.Invalidate when those are stale too.
func (d *Device) Invalidate() {
	d.current = nil
	d.depthTestKnown = false
	d.lineWidthKnown = false
}

func (d *Device) use(p *Program) {
	if d.current == p {
		return
	}
	d.gl.UseProgram(p.ID())
	d.current = p
}

func (d *Device) setDepthTest(enabled bool) {
	if d.depthTestKnown && d.depthTest == enabled {
		return
	}
	if enabled {
		d.gl.EnableDepthTest()
	} else {
		d.gl.DisableDepthTest()
	}
	d.depthTestKnown = true
	d.depthTest = enabled
	d.bindings++
}

func (d *Device) setLineWidth(w float32) {
	if d.lineWidthKnown && d.lineWidth == w {
		return
	}
	d.gl.LineWidth(w)
	d.lineWidthKnown = true
	d.lineWidth = w
	d.bindings++
}
