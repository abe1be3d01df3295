// SPDX-License-Identifier: GPL-2.0-or-later

// Package window hosts a widget in an SDL window. Everything here must run
// on the main thread.
package window

import (
	"unsafe"

	"goglobe/config"
	"goglobe/conlog"
	"goglobe/event"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
)

// Target receives the input of a window.
type Target interface {
	OnTouchEvent(e *event.TouchEvent)
	OnResizeViewportEvent(width, height int)
}

type Window struct {
	window  *sdl.Window
	context sdl.GLContext
	log     conlog.Logger

	pressed bool
	last    event.Pixel
}

// Open creates a window with a current GL context. SDL must be initialized.
func Open(title string, cfg config.Window, log conlog.Logger) (*Window, error) {
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, func() int {
		if cfg.MSAA > 0 {
			return 1
		}
		return 0
	}())
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, cfg.MSAA)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_HIDDEN)
	w, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil && cfg.MSAA > 0 {
		log.Warning("Couldn't create window with %d samples, retrying without", cfg.MSAA)
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 0)
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 0)
		w, err = sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
			int32(cfg.Width), int32(cfg.Height), flags)
	}
	if err != nil {
		return nil, errors.Wrap(err, "creating window")
	}
	if cfg.Fullscreen {
		if err := w.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP); err != nil {
			log.Warning("Couldn't set fullscreen mode: %v", err)
		}
	}
	w.Show()

	ctx, err := w.GLCreateContext()
	if err != nil {
		w.Destroy()
		return nil, errors.Wrap(err, "creating GL context")
	}
	if err := sdl.GLSetSwapInterval(1); err != nil {
		log.Warning("No vsync: %v", err)
	}
	return &Window{window: w, context: ctx, log: log}, nil
}

// EnableDebugOutput forwards GL debug messages to the log. GL must be
// initialized.
func (w *Window) EnableDebugOutput() {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		if severity == gl.DEBUG_SEVERITY_HIGH {
			w.log.Error("[GL_DEBUG] source %d gltype %d id %d: %s", source, gltype, id, message)
		} else {
			w.log.Info("[GL_DEBUG] source %d gltype %d id %d severity %d: %s", source, gltype, id, severity, message)
		}
	}, unsafe.Pointer(nil))
}

func (w *Window) Size() (int, int) {
	width, height := w.window.GLGetDrawableSize()
	return int(width), int(height)
}

func (w *Window) Swap() {
	w.window.GLSwap()
}

func (w *Window) Close() {
	sdl.GLDeleteContext(w.context)
	w.context = nil
	w.window.Destroy()
	w.window = nil
}

// PollEvents hands pending input to t and reports whether the user asked to
// quit.
func (w *Window) PollEvents(t Target) bool {
	quit := false
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.WindowEvent:
			if ev.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				t.OnResizeViewportEvent(w.Size())
			}
		case *sdl.MouseButtonEvent:
			if ev.Button != sdl.BUTTON_LEFT {
				continue
			}
			if te := w.mouseButton(ev.State == sdl.PRESSED, ev.X, ev.Y, int(ev.Clicks)); te != nil {
				t.OnTouchEvent(te)
			}
		case *sdl.MouseMotionEvent:
			if te := w.mouseMotion(ev.X, ev.Y); te != nil {
				t.OnTouchEvent(te)
			}
		}
	}
	return quit
}

func (w *Window) mouseButton(pressed bool, x, y int32, clicks int) *event.TouchEvent {
	cur := event.Pixel{X: float32(x), Y: float32(y)}
	prev := w.last
	w.last = cur
	if pressed == w.pressed {
		return nil
	}
	w.pressed = pressed
	typ := event.Up
	if pressed {
		typ = event.Down
	}
	return event.NewTouchEvent(typ, prev, cur, clicks)
}

func (w *Window) mouseMotion(x, y int32) *event.TouchEvent {
	cur := event.Pixel{X: float32(x), Y: float32(y)}
	prev := w.last
	w.last = cur
	if !w.pressed {
		return nil
	}
	return event.NewTouchEvent(event.Move, prev, cur, 0)
}
