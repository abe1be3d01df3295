// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"goglobe/gpu"

	"github.com/go-gl/mathgl/mgl64"
)

var boxEdges = []uint16{
	0, 1, 1, 3, 3, 2, 2, 0, // lower face
	4, 5, 5, 7, 7, 6, 6, 4, // upper face
	0, 4, 1, 5, 2, 6, 3, 7,
}

// NewBoxWireframe returns the twelve edges of a box given as world corners.
// Corner i takes the upper value of axis a when bit a of i is set.
func NewBoxWireframe(corners [8]mgl64.Vec3, color gpu.Color, lineWidth float32) (*IndexedMesh, error) {
	var center mgl64.Vec3
	for _, c := range corners {
		center = center.Add(c)
	}
	center = center.Mul(1.0 / 8)
	buf := gpu.NewFloatBuffer(8 * 3)
	for i, c := range corners {
		l := c.Sub(center)
		buf.Put(3*i, float32(l[0]))
		buf.Put(3*i+1, float32(l[1]))
		buf.Put(3*i+2, float32(l[2]))
	}
	return NewIndexedMesh(Params{
		Primitive: gpu.Lines,
		Center:    center,
		Vertices:  Owned(buf),
		LineWidth: lineWidth,
		DepthTest: true,
		Color:     &color,
	}, gpu.NewShortBufferFrom(boxEdges...), true)
}
