// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"image"
	"image/color"
	"testing"

	"goglobe/gpu"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/stretchr/testify/assert"
)

func TestPrimitive(t *testing.T) {
	tests := []struct {
		p    gpu.Primitive
		want uint32
	}{
		{gpu.Points, gl.POINTS},
		{gpu.Lines, gl.LINES},
		{gpu.LineStrip, gl.LINE_STRIP},
		{gpu.LineLoop, gl.LINE_LOOP},
		{gpu.Triangles, gl.TRIANGLES},
		{gpu.TriangleStrip, gl.TRIANGLE_STRIP},
		{gpu.TriangleFan, gl.TRIANGLE_FAN},
	}
	for _, tt := range tests {
		if got := primitive(tt.p); got != tt.want {
			t.Errorf("primitive(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	assert.Panics(t, func() { primitive(gpu.Primitive(99)) })
}

func TestCullFace(t *testing.T) {
	assert.Equal(t, uint32(gl.BACK), cullFace(gpu.CullBack))
	assert.Equal(t, uint32(gl.FRONT), cullFace(gpu.CullFront))
	assert.Equal(t, uint32(gl.FRONT_AND_BACK), cullFace(gpu.CullFrontAndBack))
}

func TestValueType(t *testing.T) {
	assert.Equal(t, gpu.TypeMatrix4, valueType(gl.FLOAT_MAT4))
	assert.Equal(t, gpu.TypeVec4, valueType(gl.FLOAT_VEC4))
	assert.Equal(t, gpu.TypeSampler2D, valueType(gl.SAMPLER_2D))
	assert.Equal(t, gpu.TypeUnknown, valueType(gl.INT_VEC3))
}

func TestToRGBA(t *testing.T) {
	packed := image.NewRGBA(image.Rect(0, 0, 2, 2))
	assert.Same(t, packed, toRGBA(packed))

	gray := image.NewGray(image.Rect(3, 3, 5, 4))
	gray.SetGray(3, 3, color.Gray{Y: 200})
	rgba := toRGBA(gray)
	assert.Equal(t, image.Rect(0, 0, 2, 1), rgba.Bounds())
	assert.Equal(t, color.RGBA{200, 200, 200, 255}, rgba.RGBAAt(0, 0))

	sub := image.NewRGBA(image.Rect(0, 0, 4, 4)).SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)
	assert.NotSame(t, sub, toRGBA(sub))
}
