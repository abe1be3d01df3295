// SPDX-License-Identifier: GPL-2.0-or-later

// Package frametest builds render contexts backed by a recording GL.
package frametest

import (
	"time"

	"goglobe/async"
	"goglobe/camera"
	"goglobe/conlog"
	"goglobe/frame"
	"goglobe/glstate"
	"goglobe/gpu/gputest"
	"goglobe/planet"
	"goglobe/shaders"
	"goglobe/texture"
)

// Declare makes gl report the variables of every shipped program.
func Declare(gl *gputest.Recorder) {
	gl.Declare(shaders.FlatColorMesh,
		[]string{shaders.Projection, shaders.ModelView, shaders.Model, shaders.FlatColor, shaders.PointSize},
		[]string{shaders.Position})
	gl.Declare(shaders.BusyQuad,
		[]string{shaders.Projection, shaders.Model, shaders.FlatColor},
		[]string{shaders.Position})
	gl.Declare(shaders.TexturedBusyQuad,
		[]string{shaders.Projection, shaders.Model, shaders.FlatColor, shaders.Texture},
		[]string{shaders.Position, shaders.TexCoord})
}

// New returns a render context for a 640x480 view of the earth.
func New() (*frame.RenderContext, *gputest.Recorder) {
	gl := gputest.New()
	Declare(gl)
	p := planet.Earth()
	dev := glstate.NewDevice(gl)
	log := conlog.Nop()
	return &frame.RenderContext{
		Log:        log,
		Planet:     p,
		Device:     dev,
		Camera:     camera.New(p, 640, 480),
		Textures:   texture.NewHandler(gl, log),
		Runner:     async.NewRunner(&async.Inbox{}),
		Programs:   glstate.NewProgramManager(dev, log, shaders.All()...),
		FrameStart: time.Now(),
	}, gl
}
