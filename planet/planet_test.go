// SPDX-License-Identifier: GPL-2.0-or-later

package planet

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestToCartesian(t *testing.T) {
	e := Earth()
	tests := []struct {
		in   Geodetic3D
		want mgl64.Vec3
	}{
		{FromDegrees(0, 0, 0), mgl64.Vec3{6378137, 0, 0}},
		{FromDegrees(0, 90, 0), mgl64.Vec3{0, 6378137, 0}},
		{FromDegrees(90, 0, 0), mgl64.Vec3{0, 0, 6356752.314245}},
		{FromDegrees(0, 0, 1000), mgl64.Vec3{6379137, 0, 0}},
	}
	for _, tc := range tests {
		got := e.ToCartesian(tc.in)
		assert.InDeltaSlice(t, tc.want[:], got[:], 1e-3, "%v", tc.in)
	}
}

func TestSector(t *testing.T) {
	s := NewSector(10, 20, 30, 40)
	assert.Equal(t, Geodetic2D{20, 30}, s.Center())
	assert.True(t, s.Contains(Geodetic2D{15, 25}))
	assert.False(t, s.Contains(Geodetic2D{5, 25}))
}
