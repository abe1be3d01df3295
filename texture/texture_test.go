// SPDX-License-Identifier: GPL-2.0-or-later
package texture

import (
	"image"
	"testing"

	"goglobe/gpu/gputest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharedTexture(t *testing.T) {
	gl := gputest.New()
	h := NewHandler(gl, nil)
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))

	a, err := h.Get("busy", img, PrefNone)
	require.NoError(t, err)
	b, err := h.Get("busy", nil, PrefNone)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, gl.Count("UploadTexture"))
	assert.Equal(t, 8, a.Texels())

	h.Release(a)
	assert.Equal(t, 1, gl.LiveTextures())
	h.Release(b)
	assert.Equal(t, 0, gl.LiveTextures())
	assert.Equal(t, 0, h.Len())
}

func TestMissingTexture(t *testing.T) {
	h := NewHandler(gputest.New(), nil)
	_, err := h.Get("nope", nil, PrefNone)
	assert.Error(t, err)
}

func TestCloseDeletesAll(t *testing.T) {
	gl := gputest.New()
	h := NewHandler(gl, nil)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	_, err := h.Get("a", img, PrefMipMap)
	require.NoError(t, err)
	_, err = h.Get("b", img, PrefNone)
	require.NoError(t, err)

	h.Close()
	assert.Equal(t, 0, gl.LiveTextures())
	_, err = h.Get("a", img, PrefNone)
	assert.Error(t, err)
	h.Close()
	assert.Equal(t, 2, gl.Count("DeleteTexture"))
}
