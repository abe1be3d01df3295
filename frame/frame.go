// SPDX-License-Identifier: GPL-2.0-or-later

// Package frame holds the per frame contexts handed to renderers. Contexts
// borrow their collaborators from the widget and must not be retained.
package frame

import (
	"time"

	"goglobe/async"
	"goglobe/camera"
	"goglobe/conlog"
	"goglobe/downloader"
	"goglobe/glstate"
	"goglobe/planet"
	"goglobe/texture"
)

type InitContext struct {
	Log        conlog.Logger
	Planet     *planet.Planet
	Downloader downloader.Downloader
	Runner     *async.Runner
}

type RenderContext struct {
	Log        conlog.Logger
	Planet     *planet.Planet
	Device     *glstate.Device
	Camera     *camera.Camera
	Textures   *texture.Handler
	Downloader downloader.Downloader
	Runner     *async.Runner
	Programs   *glstate.ProgramManager
	// FrameStart is the time the current frame began.
	FrameStart time.Time
}

// Program is a shortcut for Programs.Get. It returns nil when name can't be
// compiled; the manager logs that once.
func (rc *RenderContext) Program(name string) *glstate.Program {
	p, err := rc.Programs.Get(name)
	if err != nil {
		return nil
	}
	return p
}

type EventContext struct {
	Log    conlog.Logger
	Planet *planet.Planet
	Camera *camera.Camera
}
