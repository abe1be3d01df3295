// SPDX-License-Identifier: GPL-2.0-or-later

package bounds

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis aligned bounding box.
type Box struct {
	Lower mgl64.Vec3
	Upper mgl64.Vec3
}

// NewBox returns the smallest box containing points. It panics on an empty
// slice as no box can describe nothing.
func NewBox(points []mgl64.Vec3) *Box {
	if len(points) == 0 {
		panic("bounds: box of zero points")
	}
	lower := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	upper := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range points {
		for i := 0; i < 3; i++ {
			lower[i] = math.Min(lower[i], p[i])
			upper[i] = math.Max(upper[i], p[i])
		}
	}
	return &Box{Lower: lower, Upper: upper}
}

func (b *Box) Center() mgl64.Vec3 {
	return b.Lower.Add(b.Upper).Mul(0.5)
}

func (b *Box) Extent() mgl64.Vec3 {
	return b.Upper.Sub(b.Lower)
}

func (b *Box) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Lower[i]-epsilon || p[i] > b.Upper[i]+epsilon {
			return false
		}
	}
	return true
}

func (b *Box) TouchesFrustum(f *Frustum) bool {
	for i := range f.planes {
		p := &f.planes[i]
		// farthest corner along the plane normal
		var c mgl64.Vec3
		for a := 0; a < 3; a++ {
			if p.signBits&(1<<a) != 0 {
				c[a] = b.Lower[a]
			} else {
				c[a] = b.Upper[a]
			}
		}
		if p.distance(c) < 0 {
			return false
		}
	}
	return true
}

func (b *Box) String() string {
	return fmt.Sprintf("Box(%v - %v)", b.Lower, b.Upper)
}
