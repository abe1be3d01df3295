// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"goglobe/bounds"
	"goglobe/frame"
	"goglobe/glstate"
	"goglobe/gpu"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// IndexedMesh draws the vertices referenced by an index buffer.
type IndexedMesh struct {
	geometry
	indices     *gpu.ShortBuffer
	ownsIndices bool
}

// NewIndexedMesh checks every index against the vertex count. With
// ownsIndices set the index buffer is released on Close.
func NewIndexedMesh(p Params, indices *gpu.ShortBuffer, ownsIndices bool) (*IndexedMesh, error) {
	m := &IndexedMesh{indices: indices, ownsIndices: ownsIndices}
	g, err := newGeometry(p, m)
	if err != nil {
		return nil, err
	}
	if indices == nil || indices.Size() == 0 {
		return nil, errors.New("indexed mesh without indices")
	}
	n := g.VertexCount()
	for i, idx := range indices.Data() {
		if int(idx) >= n {
			return nil, errors.Errorf("index %d at %d out of range, %d vertices", idx, i, n)
		}
	}
	m.geometry = g
	return m, nil
}

func (m *IndexedMesh) Indices() *gpu.ShortBuffer { return m.indices }

func (m *IndexedMesh) computeVolume() bounds.Volume {
	seen := make(map[uint16]bool, m.indices.Size())
	points := make([]mgl64.Vec3, 0, m.indices.Size())
	for _, idx := range m.indices.Data() {
		if seen[idx] {
			continue
		}
		seen[idx] = true
		points = append(points, m.Vertex(int(idx)))
	}
	return bounds.NewSphere(points)
}

func (m *IndexedMesh) rawRender(rc *frame.RenderContext, prog *glstate.Program, s *glstate.State, rt RenderType) {
	s.ApplyChanges(rc.Device, prog)
	rc.Device.GL().DrawElements(m.primitive, m.indices)
}

func (m *IndexedMesh) Close() {
	if m.closed {
		return
	}
	m.geometry.Close()
	if m.ownsIndices {
		m.indices.Release()
	}
}

var _ Mesh = (*IndexedMesh)(nil)
