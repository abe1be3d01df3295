// SPDX-License-Identifier: GPL-2.0-or-later

// Package camera holds the viewport aware view and projection state.
package camera

import (
	"math"

	"goglobe/bounds"
	"goglobe/glstate"
	"goglobe/planet"
	"goglobe/shaders"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

const defaultFieldOfView = 45

// Camera looks at a planet it does not own. The planet must outlive the
// camera; Close drops the reference.
type Camera struct {
	planet *planet.Planet

	width  int
	height int
	fovy   float64

	position mgl64.Vec3
	center   mgl64.Vec3
	up       mgl64.Vec3

	dirty      bool
	modelView  mgl64.Mat4
	projection mgl64.Mat4
	frustum    *bounds.Frustum
	state      *glstate.State
}

// New places the camera on the x axis, five radii away, looking at the
// planet center.
func New(p *planet.Planet, width, height int) *Camera {
	c := &Camera{
		planet:   p,
		width:    width,
		height:   height,
		fovy:     defaultFieldOfView,
		position: mgl64.Vec3{p.MaxRadius() * 5, 0, 0},
		up:       mgl64.Vec3{0, 0, 1},
		state:    glstate.NewState(nil),
		dirty:    true,
	}
	return c
}

func (c *Camera) Planet() *planet.Planet { return c.planet }
func (c *Camera) Width() int             { return c.width }
func (c *Camera) Height() int            { return c.height }
func (c *Camera) Position() mgl64.Vec3   { return c.position }
func (c *Camera) Center() mgl64.Vec3     { return c.center }

// Close releases the planet reference. The camera is unusable afterwards.
func (c *Camera) Close() {
	c.planet = nil
	c.frustum = nil
}

func (c *Camera) ResizeViewport(width, height int) {
	if width == c.width && height == c.height {
		return
	}
	c.width = width
	c.height = height
	c.dirty = true
}

// SetGeodeticPosition moves the camera above g looking at the planet center.
func (c *Camera) SetGeodeticPosition(g planet.Geodetic3D) {
	c.SetLookAt(c.planet.ToCartesian(g), mgl64.Vec3{}, mgl64.Vec3{0, 0, 1})
}

func (c *Camera) SetLookAt(position, center, up mgl64.Vec3) {
	c.position = position
	c.center = center
	c.up = up
	c.dirty = true
}

func (c *Camera) aspect() float64 {
	if c.height == 0 {
		return 1
	}
	return float64(c.width) / float64(c.height)
}

func (c *Camera) update() {
	if !c.dirty {
		return
	}
	c.dirty = false
	c.modelView = mgl64.LookAtV(c.position, c.center, c.up)

	dist := c.position.Len()
	radius := c.planet.MaxRadius()
	near := math.Max(1, (dist-radius)*0.1)
	far := dist + radius
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.fovy), c.aspect(), near, far)
	c.frustum = bounds.NewFrustum(c.projection, c.modelView)

	c.state.SetMatrix4(shaders.Projection, toMat32(c.projection))
	c.state.SetMatrix4(shaders.ModelView, toMat32(c.modelView))
}

func (c *Camera) ModelView() mgl64.Mat4 {
	c.update()
	return c.modelView
}

func (c *Camera) Projection() mgl64.Mat4 {
	c.update()
	return c.projection
}

func (c *Camera) Frustum() *bounds.Frustum {
	c.update()
	return c.frustum
}

// State is the root layer carrying the projection and model view matrices.
// Renderers put their mesh states under it.
func (c *Camera) State() *glstate.State {
	c.update()
	return c.state
}

func toMat32(m mgl64.Mat4) mgl32.Mat4 {
	var r mgl32.Mat4
	for i := range m {
		r[i] = float32(m[i])
	}
	return r
}
