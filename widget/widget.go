// SPDX-License-Identifier: GPL-2.0-or-later

// Package widget drives the per frame render loop of a globe scene.
package widget

import (
	"time"

	"goglobe/async"
	"goglobe/camera"
	"goglobe/conlog"
	"goglobe/downloader"
	"goglobe/event"
	"goglobe/frame"
	"goglobe/glstate"
	"goglobe/gpu"
	"goglobe/gtime"
	"goglobe/planet"
	"goglobe/renderer"
	"goglobe/shaders"
	"goglobe/texture"

	"github.com/pkg/errors"
)

// fpsFrames is the number of frames the FPS accounting averages over.
const fpsFrames = 60

var ErrConfiguration = errors.New("widget configuration")

// Options configure a Widget. GL, Planet, Renderer, Busy and Downloader are
// required.
type Options struct {
	GL         gpu.GL
	Planet     *planet.Planet
	Renderer   renderer.Renderer
	Busy       renderer.Renderer
	Downloader downloader.Downloader

	Log        conlog.Logger
	Timer      gtime.Timer
	Background gpu.Color
	Width      int
	Height     int
	LogFPS     bool
	// Shaders default to shaders.All.
	Shaders []gpu.ShaderSource
}

func (o *Options) validate() error {
	switch {
	case o.GL == nil:
		return errors.Wrap(ErrConfiguration, "missing GL")
	case o.Planet == nil:
		return errors.Wrap(ErrConfiguration, "missing planet")
	case o.Renderer == nil:
		return errors.Wrap(ErrConfiguration, "missing renderer")
	case o.Busy == nil:
		return errors.Wrap(ErrConfiguration, "missing busy renderer")
	case o.Downloader == nil:
		return errors.Wrap(ErrConfiguration, "missing downloader")
	case o.Width < 0 || o.Height < 0:
		return errors.Wrapf(ErrConfiguration, "bad viewport %dx%d", o.Width, o.Height)
	}
	return nil
}

// Widget owns the camera, texture handler, programs and timer and drives
// the renderer tree. All methods must be called from the render thread.
type Widget struct {
	gl         gpu.GL
	log        conlog.Logger
	planet     *planet.Planet
	camera     *camera.Camera
	textures   *texture.Handler
	device     *glstate.Device
	programs   *glstate.ProgramManager
	runner     *async.Runner
	downloader downloader.Downloader
	renderer   renderer.Renderer
	busy       renderer.Renderer
	timer      gtime.Timer

	background gpu.Color
	logFPS     bool

	ready           bool
	renderCounter   int
	totalRenderTime time.Duration
	closed          bool
}

func New(o Options) (*Widget, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	log := o.Log
	if log == nil {
		log = conlog.Nop()
	}
	timer := o.Timer
	if timer == nil {
		timer = gtime.NewClock()
	}
	sources := o.Shaders
	if sources == nil {
		sources = shaders.All()
	}

	o.GL.EnableDepthTest()
	o.GL.EnableCullFace(gpu.CullBack)

	dev := glstate.NewDevice(o.GL)
	w := &Widget{
		gl:         o.GL,
		log:        log,
		planet:     o.Planet,
		camera:     camera.New(o.Planet, o.Width, o.Height),
		textures:   texture.NewHandler(o.GL, log),
		device:     dev,
		programs:   glstate.NewProgramManager(dev, log, sources...),
		runner:     async.NewRunner(&async.Inbox{}),
		downloader: o.Downloader,
		renderer:   o.Renderer,
		busy:       o.Busy,
		timer:      timer,
		background: o.Background,
		logFPS:     o.LogFPS,
	}
	w.downloader.Start()

	ic := &frame.InitContext{
		Log:        log,
		Planet:     w.planet,
		Downloader: w.downloader,
		Runner:     w.runner,
	}
	w.renderer.Initialize(ic)
	w.busy.Initialize(ic)
	return w, nil
}

func (w *Widget) renderContext() *frame.RenderContext {
	return &frame.RenderContext{
		Log:        w.log,
		Planet:     w.planet,
		Device:     w.device,
		Camera:     w.camera,
		Textures:   w.textures,
		Downloader: w.downloader,
		Runner:     w.runner,
		Programs:   w.programs,
		FrameStart: time.Now(),
	}
}

func (w *Widget) eventContext() *frame.EventContext {
	return &frame.EventContext{
		Log:    w.log,
		Planet: w.planet,
		Camera: w.camera,
	}
}

// Render draws one frame and returns the suggested time in milliseconds
// until the next one. Results posted by background work since the last
// frame are applied first and count toward the frame time.
func (w *Widget) Render() int {
	if w.closed {
		return 0
	}
	w.timer.Start()
	w.runner.Inbox().Drain()

	w.renderCounter++

	rc := w.renderContext()
	w.ready = w.renderer.IsReadyToRender(rc)
	selected := w.busy
	if w.ready {
		selected = w.renderer
	}

	w.gl.ClearScreen(w.background)
	hint := selected.Render(rc)

	w.totalRenderTime += w.timer.Elapsed()
	if w.renderCounter == fpsFrames {
		if w.logFPS {
			avg := float64(w.totalRenderTime) / float64(time.Millisecond) / fpsFrames
			if avg > 0 {
				w.log.Info("FPS=%f", 1000/avg)
			}
		}
		w.renderCounter = 0
		w.totalRenderTime = 0
	}
	return hint
}

// OnTouchEvent forwards e to the renderer while it is ready. Events arriving
// while the busy renderer is shown are dropped.
func (w *Widget) OnTouchEvent(e *event.TouchEvent) {
	if w.closed || !w.ready {
		return
	}
	w.renderer.OnTouchEvent(w.eventContext(), e)
}

// OnResizeViewportEvent always resizes the camera and the GL viewport; the
// renderer only hears about it while it is ready.
func (w *Widget) OnResizeViewportEvent(width, height int) {
	if w.closed {
		return
	}
	w.camera.ResizeViewport(width, height)
	w.gl.Viewport(width, height)
	if w.ready {
		w.renderer.OnResizeViewportEvent(w.eventContext(), width, height)
	}
}

func (w *Widget) Ready() bool                    { return w.ready }
func (w *Widget) RenderCounter() int             { return w.renderCounter }
func (w *Widget) TotalRenderTime() time.Duration { return w.totalRenderTime }
func (w *Widget) Camera() *camera.Camera         { return w.camera }
func (w *Widget) Runner() *async.Runner          { return w.runner }
func (w *Widget) Textures() *texture.Handler     { return w.textures }

// Close releases everything in an order that never leaves a dangling
// reference: renderers first, the camera before the planet it looks at,
// and the downloader last.
func (w *Widget) Close() {
	if w.closed {
		return
	}
	w.closed = true
	if err := renderer.Close(w.renderer); err != nil {
		w.log.Warning("Closing renderer: %v", err)
	}
	if err := renderer.Close(w.busy); err != nil {
		w.log.Warning("Closing busy renderer: %v", err)
	}
	w.renderer = nil
	w.busy = nil
	w.camera.Close()
	w.camera = nil
	w.planet = nil
	w.textures.Close()
	w.textures = nil
	w.programs.Close()
	w.programs = nil
	w.timer = nil
	w.downloader.Stop()
	w.downloader = nil
	w.ready = false
}
