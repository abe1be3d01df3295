// SPDX-License-Identifier: GPL-2.0-or-later

package gpu

import "fmt"

type Color struct {
	R, G, B, A float32
}

var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Transparent = Color{0, 0, 0, 0}
)

func FromRGBA255(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// IsTransparent reports whether the color needs blending.
func (c Color) IsTransparent() bool {
	return c.A < 1
}

func (c Color) String() string {
	return fmt.Sprintf("Color(%v, %v, %v, %v)", c.R, c.G, c.B, c.A)
}
