// SPDX-License-Identifier: GPL-2.0-or-later

package renderer

import (
	"image"

	"goglobe/event"
	"goglobe/frame"
	"goglobe/glstate"
	"goglobe/gpu"
	"goglobe/shaders"
	"goglobe/texture"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	busyStep     = 3 // degrees per frame
	busyHalfSize = 20
)

// BusyRenderer spins a quad while the scene is loading. It is always ready.
// A textured busy renderer draws its image tinted by color; if the image
// can't be uploaded it falls back to a plain quad.
type BusyRenderer struct {
	color   gpu.Color
	degrees float32
	quad    *gpu.FloatBuffer
	state   *glstate.State

	textureName string
	img         image.Image
	texCoords   *gpu.FloatBuffer
	textures    *texture.Handler
	tex         *texture.Texture
}

func NewBusy(color gpu.Color) *BusyRenderer {
	return &BusyRenderer{color: color}
}

// NewTexturedBusy spins img. name identifies the image in the texture cache.
func NewTexturedBusy(tint gpu.Color, name string, img image.Image) *BusyRenderer {
	return &BusyRenderer{color: tint, textureName: name, img: img}
}

func (b *BusyRenderer) Initialize(ic *frame.InitContext) {
	if b.quad != nil {
		return
	}
	b.quad = gpu.NewFloatBufferFrom(
		-busyHalfSize, -busyHalfSize, 0,
		busyHalfSize, -busyHalfSize, 0,
		-busyHalfSize, busyHalfSize, 0,
		busyHalfSize, busyHalfSize, 0,
	)
	b.state = glstate.NewState(nil)
	b.state.SetDepthTest(false)
	b.state.SetLineWidth(1)
	b.state.SetColor(shaders.FlatColor, b.color)
	b.state.SetAttribute(shaders.Position, b.quad, 3, 0, false, 0)
	if b.img != nil {
		b.texCoords = gpu.NewFloatBufferFrom(
			0, 1,
			1, 1,
			0, 0,
			1, 0,
		)
		b.state.SetAttribute(shaders.TexCoord, b.texCoords, 2, 0, false, 0)
	}
}

func (b *BusyRenderer) IsReadyToRender(rc *frame.RenderContext) bool { return true }

// Degrees is the current rotation.
func (b *BusyRenderer) Degrees() float32 { return b.degrees }

// Textured reports whether the quad is drawn with its image.
func (b *BusyRenderer) Textured() bool { return b.tex != nil }

func (b *BusyRenderer) step() {
	b.degrees = math32.Mod(b.degrees+busyStep, 360)
}

// acquireTexture takes a reference on the busy image the first time it is
// needed. Failures drop the image for good.
func (b *BusyRenderer) acquireTexture(rc *frame.RenderContext) {
	if b.img == nil || b.tex != nil || rc.Textures == nil {
		return
	}
	t, err := rc.Textures.Get(b.textureName, b.img, texture.PrefNone)
	if err != nil {
		rc.Log.Warning("Busy texture disabled: %v", err)
		b.img = nil
		b.state.RemoveAttribute(shaders.TexCoord)
		return
	}
	b.tex = t
	b.textures = rc.Textures
}

func (b *BusyRenderer) Render(rc *frame.RenderContext) int {
	b.step()
	if b.state == nil {
		return FrameHint
	}
	b.acquireTexture(rc)
	name := shaders.BusyQuad
	if b.tex != nil {
		name = shaders.TexturedBusyQuad
	}
	prog := rc.Program(name)
	if prog == nil {
		return FrameHint
	}
	w := float32(rc.Camera.Width()) / 2
	h := float32(rc.Camera.Height()) / 2
	b.state.SetMatrix4(shaders.Projection, mgl32.Ortho2D(-w, w, -h, h))
	b.state.SetMatrix4(shaders.Model, mgl32.HomogRotate3DZ(mgl32.DegToRad(b.degrees)))
	b.state.ApplyChanges(rc.Device, prog)
	g := rc.Device.GL()
	if b.tex != nil {
		g.BindTexture(b.tex.ID())
	}
	g.DrawArrays(gpu.TriangleStrip, 0, 4)
	return FrameHint
}

func (b *BusyRenderer) OnTouchEvent(ec *frame.EventContext, e *event.TouchEvent) bool {
	return false
}

func (b *BusyRenderer) OnResizeViewportEvent(ec *frame.EventContext, width, height int) {}

func (b *BusyRenderer) Close() error {
	if b.tex != nil {
		b.textures.Release(b.tex)
		b.tex = nil
		b.textures = nil
	}
	if b.quad != nil {
		b.quad.Release()
		b.quad = nil
	}
	if b.texCoords != nil {
		b.texCoords.Release()
		b.texCoords = nil
	}
	b.img = nil
	b.state = nil
	return nil
}

// SpinnerImage draws a ring of size x size pixels whose opacity fades along
// its circumference, the usual loading indicator.
func SpinnerImage(size int, c gpu.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	half := float32(size) / 2
	outer, inner := half, half*0.6
	for y := range size {
		for x := range size {
			dx := float32(x) + 0.5 - half
			dy := float32(y) + 0.5 - half
			r := math32.Hypot(dx, dy)
			if r > outer || r < inner {
				continue
			}
			// fraction of the turn, 0 at twelve o'clock going clockwise
			turn := math32.Mod(math32.Atan2(dx, -dy)/(2*math32.Pi)+1, 1)
			a := c.A * turn
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8(255 * c.R * a)
			img.Pix[i+1] = uint8(255 * c.G * a)
			img.Pix[i+2] = uint8(255 * c.B * a)
			img.Pix[i+3] = uint8(255 * a)
		}
	}
	return img
}

var _ Renderer = (*BusyRenderer)(nil)
