// SPDX-License-Identifier: GPL-2.0-or-later

package bounds

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func sqrt(v float64) float64 { return math.Sqrt(v) }

type plane struct {
	normal   mgl64.Vec3
	d        float64
	signBits uint8 // caching of plane side tests
}

func newPlane(v mgl64.Vec4) plane {
	n := mgl64.Vec3{v[0], v[1], v[2]}
	l := n.Len()
	p := plane{normal: n.Mul(1 / l), d: v[3] / l}
	for i := 0; i < 3; i++ {
		if p.normal[i] < 0 {
			p.signBits |= 1 << i
		}
	}
	return p
}

// distance is positive on the inner side.
func (p *plane) distance(v mgl64.Vec3) float64 {
	return p.normal.Dot(v) + p.d
}

// Frustum is the view volume: left, right, bottom, top, near, far.
type Frustum struct {
	planes [6]plane
}

// NewFrustum extracts the planes of projection * modelView.
func NewFrustum(projection, modelView mgl64.Mat4) *Frustum {
	m := projection.Mul4(modelView)
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)
	return &Frustum{
		planes: [6]plane{
			newPlane(r3.Add(r0)),
			newPlane(r3.Sub(r0)),
			newPlane(r3.Add(r1)),
			newPlane(r3.Sub(r1)),
			newPlane(r3.Add(r2)),
			newPlane(r3.Sub(r2)),
		},
	}
}

// Contains reports whether p lies inside all six planes.
func (f *Frustum) Contains(p mgl64.Vec3) bool {
	for i := range f.planes {
		if f.planes[i].distance(p) < 0 {
			return false
		}
	}
	return true
}
