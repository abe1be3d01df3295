// SPDX-License-Identifier: GPL-2.0-or-later

// globeviewer shows the configured point clouds on a globe.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"goglobe/config"
	"goglobe/conlog"
	"goglobe/downloader"
	"goglobe/glh"
	"goglobe/gpu"
	"goglobe/mesh"
	"goglobe/planet"
	"goglobe/renderer"
	"goglobe/widget"
	"goglobe/window"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gopxl/mainthread/v2"
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
)

var equatorColor = gpu.Color{R: 0.3, G: 0.6, B: 1, A: 1}

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer conlog.Sync(log)

	mainthread.Run(func() {
		if err := run(cfg, log); err != nil {
			log.Error("%v", err)
			conlog.Sync(log)
			os.Exit(1)
		}
	})
}

func newLogger(debug bool) (conlog.Logger, error) {
	if debug {
		return conlog.NewDevelopment()
	}
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return conlog.New(l), nil
}

func newDownloader(cfg *config.Config, log conlog.Logger) (downloader.Downloader, error) {
	opts := []downloader.Option{
		downloader.WithLogger(log),
		downloader.WithMaxConcurrent(cfg.Cache.MaxConcurrent),
	}
	if cfg.Cache.Dir != "" {
		c, err := downloader.NewDiskCache(cfg.Cache.Dir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, downloader.WithCache(c))
	}
	return downloader.NewHTTP(opts...), nil
}

// equator is a line loop around p at latitude zero.
func equator(p *planet.Planet) (mesh.Mesh, error) {
	const segments = 360
	buf := gpu.NewFloatBuffer(3 * segments)
	for i := 0; i < segments; i++ {
		v := p.ToCartesian(planet.FromDegrees(0, float64(i), 0))
		buf.Put(3*i, float32(v[0]))
		buf.Put(3*i+1, float32(v[1]))
		buf.Put(3*i+2, float32(v[2]))
	}
	c := equatorColor
	return mesh.NewDirectMesh(mesh.Params{
		Primitive: gpu.LineLoop,
		Center:    mgl64.Vec3{},
		Vertices:  mesh.Owned(buf),
		LineWidth: 1,
		DepthTest: true,
		Color:     &c,
	})
}

func run(cfg *config.Config, log conlog.Logger) error {
	var (
		win *window.Window
		w   *widget.Widget
	)
	err := mainthread.CallErr(func() error {
		if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
			return errors.Wrap(err, "initializing SDL")
		}
		var err error
		win, err = window.Open("goglobe", cfg.Window, log)
		if err != nil {
			return err
		}
		g, err := glh.New()
		if err != nil {
			return err
		}
		log.Info("OpenGL %s", g.Version())
		if cfg.Debug {
			win.EnableDebugOutput()
		}

		earth := planet.Earth()
		meshes := renderer.NewMeshRenderer()
		eq, err := equator(earth)
		if err != nil {
			return err
		}
		meshes.Add(eq)
		clouds := renderer.NewPointClouds()
		for _, name := range cfg.PointClouds.Clouds {
			clouds.AddPointCloud(cfg.PointClouds.Server, name, renderer.MetadataListenerFunc(
				func(n int64, s planet.Sector, lo, hi float64) {
					log.Info("Point cloud %s: %d points, %v, heights %v..%v", name, n, s, lo, hi)
				}))
		}
		dl, err := newDownloader(cfg, log)
		if err != nil {
			return err
		}
		width, height := win.Size()
		w, err = widget.New(widget.Options{
			GL:         g,
			Planet:     earth,
			Renderer:   renderer.NewComposite(meshes, clouds),
			Busy:       renderer.NewTexturedBusy(gpu.White, "busy-spinner", renderer.SpinnerImage(64, gpu.White)),
			Downloader: dl,
			Log:        log,
			Background: cfg.BackgroundColor(),
			Width:      width,
			Height:     height,
			LogFPS:     cfg.LogFPS,
		})
		if err != nil {
			return err
		}
		g.Viewport(width, height)
		return nil
	})
	if err != nil {
		mainthread.Call(func() {
			if win != nil {
				win.Close()
			}
			sdl.Quit()
		})
		return err
	}
	defer mainthread.Call(func() {
		w.Close()
		win.Close()
		sdl.Quit()
	})

	for {
		start := time.Now()
		var (
			quit bool
			hint int
		)
		mainthread.Call(func() {
			quit = win.PollEvents(w)
			hint = w.Render()
			win.Swap()
		})
		if quit {
			return nil
		}
		if d := time.Duration(hint)*time.Millisecond - time.Since(start); d > 0 {
			time.Sleep(d)
		}
	}
}
