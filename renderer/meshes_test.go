// SPDX-License-Identifier: GPL-2.0-or-later

package renderer

import (
	"testing"

	"goglobe/frame/frametest"
	"goglobe/gpu"
	"goglobe/mesh"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointsMesh(t *testing.T, center mgl64.Vec3, n int, color gpu.Color) *mesh.DirectMesh {
	t.Helper()
	buf := gpu.NewFloatBuffer(3 * n)
	for i := 0; i < n; i++ {
		buf.Put(3*i, float32(i))
	}
	m, err := mesh.NewDirectMesh(mesh.Params{
		Primitive: gpu.Points,
		Center:    center,
		Vertices:  mesh.Owned(buf),
		Color:     &color,
	})
	require.NoError(t, err)
	return m
}

func TestMeshRendererCullsAndOrders(t *testing.T) {
	rc, gl := frametest.New()
	r := NewMeshRenderer()
	radius := rc.Planet.MaxRadius()

	transparent := pointsMesh(t, mgl64.Vec3{}, 2, gpu.Color{R: 1, A: 0.5})
	opaque := pointsMesh(t, mgl64.Vec3{}, 3, gpu.White)
	behind := pointsMesh(t, mgl64.Vec3{10 * radius, 0, 0}, 4, gpu.White)
	r.Add(transparent)
	r.Add(opaque)
	r.Add(behind)

	assert.Equal(t, FrameHint, r.Render(rc))
	assert.Equal(t, 1, r.Culled())
	assert.Equal(t, 2, r.Drawn())
	draws := gl.Find("DrawArrays")
	require.Len(t, draws, 2)
	assert.Equal(t, 3, draws[0].Args[2], "opaque first")
	assert.Equal(t, 2, draws[1].Args[2])

	r.Remove(behind)
	assert.Equal(t, 0, behind.VertexCount())
	assert.Equal(t, 2, r.Len())

	assert.NoError(t, r.Close())
	assert.Equal(t, 0, opaque.VertexCount())
	assert.Equal(t, 0, r.Len())
}
