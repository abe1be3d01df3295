// SPDX-License-Identifier: GPL-2.0-or-later

package renderer

import (
	"testing"

	"goglobe/frame"
	"goglobe/frame/frametest"
	"goglobe/gpu"
	"goglobe/texture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusySpins(t *testing.T) {
	rc, gl := frametest.New()
	b := NewBusy(gpu.White)
	b.Initialize(&frame.InitContext{})
	assert.True(t, b.IsReadyToRender(rc))

	assert.Equal(t, FrameHint, b.Render(rc))
	assert.Equal(t, float32(3), b.Degrees())
	assert.Equal(t, []interface{}{gpu.TriangleStrip, 0, 4}, gl.Find("DrawArrays")[0].Args)
	assert.Equal(t, 1, gl.Count("DisableDepthTest"))

	for i := 1; i < 120; i++ {
		b.Render(rc)
	}
	assert.Equal(t, float32(0), b.Degrees())
	assert.Equal(t, 120, gl.Count("DrawArrays"))
	// the projection only changes with the viewport
	assert.Equal(t, 1+120, gl.Count("UniformMatrix4"))

	assert.NoError(t, b.Close())
	b.Render(rc)
	assert.Equal(t, 120, gl.Count("DrawArrays"))
}

func TestTexturedBusySharesTheTexture(t *testing.T) {
	rc, gl := frametest.New()
	img := SpinnerImage(32, gpu.White)
	b := NewTexturedBusy(gpu.White, "spinner", img)
	b.Initialize(&frame.InitContext{})
	assert.False(t, b.Textured())

	b.Render(rc)
	b.Render(rc)
	require.True(t, b.Textured())
	assert.Equal(t, 1, gl.Count("UploadTexture"))
	assert.Equal(t, 1, rc.Textures.Len())
	assert.Equal(t, 2, gl.Count("BindTexture"))

	// another user of the same image keeps it resident
	other, err := rc.Textures.Get("spinner", nil, texture.PrefNone)
	require.NoError(t, err)
	assert.Equal(t, other.ID(), gl.BoundTexture())

	draws := gl.Find("DrawArrays")
	require.Len(t, draws, 2)
	// Position and TexCoord
	assert.Len(t, draws[0].Attributes, 2)

	require.NoError(t, b.Close())
	assert.Equal(t, 1, rc.Textures.Len())
	rc.Textures.Release(other)
	assert.Equal(t, 0, gl.LiveTextures())
}

func TestTexturedBusyFallsBack(t *testing.T) {
	rc, gl := frametest.New()
	rc.Textures.Close()
	b := NewTexturedBusy(gpu.White, "spinner", SpinnerImage(8, gpu.White))
	b.Initialize(&frame.InitContext{})

	b.Render(rc)
	b.Render(rc)
	assert.False(t, b.Textured())
	assert.Equal(t, 0, gl.Count("BindTexture"))
	draws := gl.Find("DrawArrays")
	require.Len(t, draws, 2)
	assert.Len(t, draws[1].Attributes, 1)
	assert.NoError(t, b.Close())
}

func TestSpinnerImage(t *testing.T) {
	img := SpinnerImage(16, gpu.Color{R: 1, A: 1})
	assert.Equal(t, uint8(0), img.RGBAAt(8, 8).A, "hole in the middle")
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).A, "corners are outside")
	// just left of twelve o'clock is nearly opaque
	assert.Greater(t, img.RGBAAt(7, 1).A, uint8(200))
}
