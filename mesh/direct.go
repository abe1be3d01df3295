// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"goglobe/bounds"
	"goglobe/frame"
	"goglobe/glstate"
)

// DirectMesh draws all of its vertices in order.
type DirectMesh struct {
	geometry
}

func NewDirectMesh(p Params) (*DirectMesh, error) {
	m := &DirectMesh{}
	g, err := newGeometry(p, m)
	if err != nil {
		return nil, err
	}
	m.geometry = g
	return m, nil
}

func (m *DirectMesh) computeVolume() bounds.Volume {
	return bounds.NewBox(m.worldVertices())
}

func (m *DirectMesh) rawRender(rc *frame.RenderContext, prog *glstate.Program, s *glstate.State, rt RenderType) {
	s.ApplyChanges(rc.Device, prog)
	rc.Device.GL().DrawArrays(m.primitive, 0, m.VertexCount())
}

var _ Mesh = (*DirectMesh)(nil)
