// SPDX-License-Identifier: GPL-2.0-or-later

// Package renderer has the pluggable parts of a scene.
package renderer

import (
	"fmt"

	"goglobe/event"
	"goglobe/frame"
)

// FrameHint is the redraw interval, in milliseconds, of a renderer that
// animates.
const FrameHint = 16

// Renderer owns a part of the scene. All methods run on the render thread
// and must not block; IsReadyToRender only inspects known state.
type Renderer interface {
	// Initialize is called exactly once, before any other method.
	Initialize(ic *frame.InitContext)
	IsReadyToRender(rc *frame.RenderContext) bool
	// Render draws and returns the suggested time until the next redraw in
	// milliseconds.
	Render(rc *frame.RenderContext) int
	// OnTouchEvent reports whether the event was handled.
	OnTouchEvent(ec *frame.EventContext, e *event.TouchEvent) bool
	OnResizeViewportEvent(ec *frame.EventContext, width, height int)
}

type RenderState int

const (
	Busy RenderState = iota
	Ready
	Error
)

func (s RenderState) String() string {
	switch s {
	case Busy:
		return "Busy"
	case Ready:
		return "Ready"
	case Error:
		return "Error"
	}
	return fmt.Sprintf("RenderState(%d)", int(s))
}

// Close calls Close on r if it has one.
func Close(r Renderer) error {
	if c, ok := r.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
