// SPDX-License-Identifier: GPL-2.0-or-later

package bounds

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

type Sphere struct {
	center mgl64.Vec3
	Radius float64
}

// NewSphere returns a sphere around the box center of points that reaches
// the farthest point. Not minimal, but it contains every point.
func NewSphere(points []mgl64.Vec3) *Sphere {
	c := NewBox(points).Center()
	var r2 float64
	for _, p := range points {
		d := p.Sub(c)
		r2 = max(r2, d.Dot(d))
	}
	return &Sphere{center: c, Radius: sqrt(r2)}
}

func (s *Sphere) Center() mgl64.Vec3 { return s.center }

func (s *Sphere) Contains(p mgl64.Vec3) bool {
	return p.Sub(s.center).Len() <= s.Radius+epsilon*max(1, s.Radius)
}

func (s *Sphere) TouchesFrustum(f *Frustum) bool {
	for i := range f.planes {
		if f.planes[i].distance(s.center) < -s.Radius {
			return false
		}
	}
	return true
}

func (s *Sphere) String() string {
	return fmt.Sprintf("Sphere(%v, r=%v)", s.center, s.Radius)
}
