// SPDX-License-Identifier: GPL-2.0-or-later

// Package config loads the viewer configuration from a TOML file and lets
// command line flags override it.
package config

import (
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"goglobe/gpu"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

type Window struct {
	Width      int  `toml:"width"`
	Height     int  `toml:"height"`
	Fullscreen bool `toml:"fullscreen"`
	// MSAA is the number of samples, 0 disables multisampling.
	MSAA int `toml:"msaa"`
}

type Cache struct {
	// Dir holds downloaded files. Empty keeps the cache in memory.
	Dir           string `toml:"dir"`
	MaxConcurrent int    `toml:"max_concurrent"`
}

type PointClouds struct {
	Server string   `toml:"server"`
	Clouds []string `toml:"clouds"`
}

type Config struct {
	Window      Window      `toml:"window"`
	Background  string      `toml:"background"`
	LogFPS      bool        `toml:"log_fps"`
	Debug       bool        `toml:"debug"`
	Cache       Cache       `toml:"cache"`
	PointClouds PointClouds `toml:"point_clouds"`
}

func Default() *Config {
	return &Config{
		Window:     Window{Width: 1024, Height: 768},
		Background: "#000000",
		Cache:      Cache{MaxConcurrent: 4},
	}
}

// Load reads path on top of the defaults. Unknown keys are an error.
func Load(path string) (*Config, error) {
	c := Default()
	if err := c.loadFile(path); err != nil {
		return nil, err
	}
	return c, c.validate()
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading config")
	}
	d := toml.NewDecoder(bytes.NewReader(b))
	d.DisallowUnknownFields()
	if err := d.Decode(c); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("bad window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.MSAA < 0 {
		return errors.Errorf("negative msaa %d", c.Window.MSAA)
	}
	if c.Cache.MaxConcurrent <= 0 {
		return errors.Errorf("max_concurrent must be positive, got %d", c.Cache.MaxConcurrent)
	}
	if len(c.PointClouds.Clouds) > 0 && c.PointClouds.Server == "" {
		return errors.New("point clouds without server")
	}
	if _, err := ParseColor(c.Background); err != nil {
		return err
	}
	return nil
}

// BackgroundColor returns the validated background color.
func (c *Config) BackgroundColor() gpu.Color {
	col, _ := ParseColor(c.Background)
	return col
}

// ParseColor reads "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (gpu.Color, error) {
	h, ok := strings.CutPrefix(s, "#")
	if !ok || (len(h) != 6 && len(h) != 8) {
		return gpu.Color{}, errors.Errorf("bad color %q, want #rrggbb or #rrggbbaa", s)
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return gpu.Color{}, errors.Wrapf(err, "bad color %q", s)
	}
	if len(b) == 3 {
		b = append(b, 0xff)
	}
	return gpu.FromRGBA255(b[0], b[1], b[2], b[3]), nil
}

// boolInt is a flag that can be given as "-flag" or "-flag=n".
type boolInt struct {
	set bool
	num int
}

func (b *boolInt) IsBoolFlag() bool {
	// "-flag 10" can't be told apart from "-flag" followed by an argument,
	// so only "-flag", "-flag=10" and "-flag=true|false" are allowed.
	return true
}

func (b *boolInt) Set(s string) error {
	v, err := strconv.ParseInt(s, 0, strconv.IntSize)
	if err != nil {
		v, err := strconv.ParseBool(s)
		b.set = v
		return err
	}
	b.set = true
	b.num = int(v)
	return nil
}

func (b *boolInt) String() string {
	return fmt.Sprintf("Set: %v, Num: %v", b.set, b.num)
}

const defaultMSAA = 4

// Parse registers the flags on fs and parses args. The file named by
// -config is loaded first, explicitly given flags win over it.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	var (
		path         string
		width        int
		height       int
		fullscreen   bool
		msaa         = boolInt{false, defaultMSAA}
		background   string
		logFPS       bool
		debug        bool
		cacheDir     string
		maxDownloads int
		server       string
		clouds       string
	)
	fs.StringVar(&path, "config", "", "TOML configuration file")
	fs.IntVar(&width, "width", 0, "window width")
	fs.IntVar(&height, "height", 0, "window height")
	fs.BoolVar(&fullscreen, "fullscreen", false, "")
	fs.BoolVar(&fullscreen, "f", false, "")
	fs.Var(&msaa, "msaa", "enable multisampling, optional number of samples")
	fs.StringVar(&background, "background", "", "background color, #rrggbb or #rrggbbaa")
	fs.BoolVar(&logFPS, "logfps", false, "log the frame rate every 60 frames")
	fs.BoolVar(&debug, "debug", false, "debug logging")
	fs.StringVar(&cacheDir, "cachedir", "", "download cache directory")
	fs.IntVar(&maxDownloads, "maxdownloads", 0, "parallel downloads")
	fs.StringVar(&server, "server", "", "point cloud server URL")
	fs.StringVar(&clouds, "clouds", "", "comma separated point cloud names")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	c := Default()
	if path != "" {
		if err := c.loadFile(path); err != nil {
			return nil, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			c.Window.Width = width
		case "height":
			c.Window.Height = height
		case "fullscreen", "f":
			c.Window.Fullscreen = fullscreen
		case "msaa":
			c.Window.MSAA = 0
			if msaa.set {
				c.Window.MSAA = msaa.num
			}
		case "background":
			c.Background = background
		case "logfps":
			c.LogFPS = logFPS
		case "debug":
			c.Debug = debug
		case "cachedir":
			c.Cache.Dir = cacheDir
		case "maxdownloads":
			c.Cache.MaxConcurrent = maxDownloads
		case "server":
			c.PointClouds.Server = server
		case "clouds":
			c.PointClouds.Clouds = splitList(clouds)
		}
	})
	return c, c.validate()
}

func splitList(s string) []string {
	var res []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}
