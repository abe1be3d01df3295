// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"testing"

	"goglobe/frame/frametest"
	"goglobe/gpu"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle() *gpu.FloatBuffer {
	return gpu.NewFloatBufferFrom(
		0, 0, 0,
		10, 0, 0,
		0, -5, 20,
	)
}

func TestBoundingVolumeComputedOnce(t *testing.T) {
	m, err := NewDirectMesh(Params{
		Primitive: gpu.Triangles,
		Center:    mgl64.Vec3{1000, 2000, 3000},
		Vertices:  Owned(triangle()),
	})
	require.NoError(t, err)

	v := m.BoundingVolume()
	for i := 0; i < 3; i++ {
		assert.Same(t, v, m.BoundingVolume())
	}
	assert.Equal(t, 1, m.volumeComputations)
	for i := 0; i < m.VertexCount(); i++ {
		assert.True(t, v.Contains(m.Vertex(i)), "vertex %d", i)
	}
	assert.Equal(t, mgl64.Vec3{1010, 2000, 3000}, m.Vertex(1))

	m.Vertices().Put(3, 50)
	assert.Same(t, v, m.BoundingVolume(), "vertex changes need an explicit invalidation")
	m.InvalidateBoundingVolume()
	assert.True(t, m.BoundingVolume().Contains(mgl64.Vec3{1050, 2000, 3000}))
	assert.Equal(t, 2, m.volumeComputations)
}

func TestIndexedVolume(t *testing.T) {
	buf := gpu.NewFloatBufferFrom(
		-1, -1, 0,
		1, 1, 0,
		100, 100, 100, // not referenced
	)
	m, err := NewIndexedMesh(Params{Primitive: gpu.Lines, Vertices: Borrowed(buf)},
		gpu.NewShortBufferFrom(0, 1, 1, 0), true)
	require.NoError(t, err)
	v := m.BoundingVolume()
	assert.True(t, v.Contains(m.Vertex(0)))
	assert.True(t, v.Contains(m.Vertex(1)))
	assert.False(t, v.Contains(m.Vertex(2)))
}

func TestConstructionErrors(t *testing.T) {
	_, err := NewDirectMesh(Params{Vertices: Owned(gpu.NewFloatBuffer(0))})
	assert.Error(t, err)
	_, err = NewDirectMesh(Params{Vertices: Owned(gpu.NewFloatBufferFrom(1, 2))})
	assert.Error(t, err)
	_, err = NewIndexedMesh(Params{Vertices: Owned(triangle())}, gpu.NewShortBufferFrom(0, 3), false)
	assert.Error(t, err)
	_, err = NewIndexedMesh(Params{Vertices: Owned(triangle())}, nil, false)
	assert.Error(t, err)
}

func TestRenderAppliesOnce(t *testing.T) {
	rc, gl := frametest.New()
	m, err := NewDirectMesh(Params{
		Primitive: gpu.Points,
		Center:    mgl64.Vec3{1, 2, 3},
		Vertices:  Owned(triangle()),
		LineWidth: 2,
		PointSize: 4,
		DepthTest: true,
	})
	require.NoError(t, err)

	m.Render(rc, rc.Camera.State())
	assert.Equal(t, 1, gl.Count("UseProgram"))
	assert.Equal(t, 1, gl.Count("EnableDepthTest"))
	assert.Equal(t, []interface{}{float32(2)}, gl.Find("LineWidth")[0].Args)
	assert.Equal(t, []interface{}{float32(4)}, gl.Find("UniformFloat")[0].Args)
	assert.Equal(t, 3, gl.Count("UniformMatrix4"))
	assert.Equal(t, 1, gl.Count("VertexAttribute"))
	assert.Equal(t, []interface{}{gpu.Points, 0, 3}, gl.Find("DrawArrays")[0].Args)

	var model mgl32.Mat4
	for _, c := range gl.Find("UniformMatrix4") {
		if c.Location == 2 {
			model = c.Args[0].(mgl32.Mat4)
		}
	}
	assert.Equal(t, mgl32.Translate3D(1, 2, 3), model)

	gl.Reset()
	m.Render(rc, rc.Camera.State())
	assert.Equal(t, []string{"DrawArrays"}, gl.Ops())
}

func TestZRender(t *testing.T) {
	rc, gl := frametest.New()
	m, err := NewDirectMesh(Params{Primitive: gpu.Triangles, Vertices: Owned(triangle())})
	require.NoError(t, err)

	m.ZRender(rc, rc.Camera.State())
	colors := gl.Find("UniformVec4")
	require.Len(t, colors, 1)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 0}, colors[0].Args[0])
	assert.Equal(t, 1, gl.Count("EnableDepthTest"))

	gl.Reset()
	m.Render(rc, rc.Camera.State())
	colors = gl.Find("UniformVec4")
	require.Len(t, colors, 1)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, colors[0].Args[0])
	assert.Equal(t, 1, gl.Count("DisableDepthTest"))
}

func TestCloseOwnership(t *testing.T) {
	owned := triangle()
	borrowed := triangle()
	a, err := NewDirectMesh(Params{Vertices: Owned(owned)})
	require.NoError(t, err)
	b, err := NewDirectMesh(Params{Vertices: Borrowed(borrowed)})
	require.NoError(t, err)

	rc, gl := frametest.New()
	a.Render(rc, nil)
	b.BoundingVolume()
	a.Close()
	b.Close()
	assert.Equal(t, 0, owned.Size())
	assert.Equal(t, 9, borrowed.Size())
	assert.Nil(t, a.state)
	assert.Nil(t, b.volume)

	gl.Reset()
	a.Render(rc, nil)
	assert.Empty(t, gl.Calls())
}

func TestTransparency(t *testing.T) {
	c := gpu.Color{R: 1, A: 0.5}
	m, err := NewDirectMesh(Params{Vertices: Owned(triangle()), Color: &c})
	require.NoError(t, err)
	assert.True(t, m.IsTransparent(nil))

	o, err := NewDirectMesh(Params{Vertices: Owned(triangle())})
	require.NoError(t, err)
	assert.False(t, o.IsTransparent(nil))
}

func TestBoxWireframe(t *testing.T) {
	var corners [8]mgl64.Vec3
	for i := range corners {
		for a := 0; a < 3; a++ {
			if i&(1<<a) != 0 {
				corners[i][a] = 10
			}
		}
	}
	m, err := NewBoxWireframe(corners, gpu.White, 1)
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{5, 5, 5}, m.Center())
	for _, c := range corners {
		assert.True(t, m.BoundingVolume().Contains(c))
	}

	rc, gl := frametest.New()
	m.Render(rc, rc.Camera.State())
	assert.Equal(t, []interface{}{gpu.Lines, 24}, gl.Find("DrawElements")[0].Args)
	m.Close()
	assert.Equal(t, 0, m.Indices().Size())
}
