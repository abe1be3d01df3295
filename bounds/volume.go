// SPDX-License-Identifier: GPL-2.0-or-later

// Package bounds has the bounding volumes meshes use for culling.
package bounds

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Volume is the cached spatial extent of some geometry.
type Volume interface {
	Contains(p mgl64.Vec3) bool
	// TouchesFrustum is false only if the volume is completely outside f.
	TouchesFrustum(f *Frustum) bool
	Center() mgl64.Vec3
}

const epsilon = 1e-9
