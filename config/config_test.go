// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"goglobe/gpu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoolInt(t *testing.T) {
	var flags flag.FlagSet
	flags.Init("test", flag.ContinueOnError)
	a := boolInt{false, 4}
	b := boolInt{false, 5}
	c := boolInt{true, 6}
	d := boolInt{false, 7}
	e := boolInt{false, 8}
	f := boolInt{true, 9}
	flags.Var(&a, "a", "usage")
	flags.Var(&b, "b", "usage")
	flags.Var(&c, "c", "usage")
	flags.Var(&d, "d", "usage")
	flags.Var(&e, "e", "usage")
	flags.Var(&f, "f", "usage")
	if err := flags.Parse([]string{"-a", "-b=3", "-e=true", "-f=false"}); err != nil {
		t.Error(err)
	}
	if a.set != true {
		t.Errorf("a.set = %v", a.set)
	}
	if b.set != true {
		t.Errorf("b.set = %v", b.set)
	}
	if c.set != true {
		t.Errorf("c.set = %v", c.set)
	}
	if d.set != false {
		t.Errorf("d.set = %v", d.set)
	}
	if e.set != true {
		t.Errorf("e.set = %v", e.set)
	}
	if f.set != false {
		t.Errorf("f.set = %v", f.set)
	}
	if a.num != 4 {
		t.Errorf("a.num = %v", a.num)
	}
	if b.num != 3 {
		t.Errorf("b.num = %v", b.num)
	}
}

const sample = `
background = "#102030"
log_fps = true

[window]
width = 800
height = 600
msaa = 2

[cache]
dir = "/tmp/goglobe"
max_concurrent = 8

[point_clouds]
server = "http://clouds.example.com"
clouds = ["Loudoun-VA", "Fairfax-VA"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "goglobe.toml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, sample))
	require.NoError(t, err)
	assert.Equal(t, Window{Width: 800, Height: 600, MSAA: 2}, c.Window)
	assert.True(t, c.LogFPS)
	assert.Equal(t, Cache{Dir: "/tmp/goglobe", MaxConcurrent: 8}, c.Cache)
	assert.Equal(t, []string{"Loudoun-VA", "Fairfax-VA"}, c.PointClouds.Clouds)
	assert.Equal(t, gpu.FromRGBA255(0x10, 0x20, 0x30, 0xff), c.BackgroundColor())
}

func TestLoadErrors(t *testing.T) {
	for name, content := range map[string]string{
		"unknown key":   "colour = \"#000000\"\n",
		"bad color":     "background = \"black\"\n",
		"bad size":      "[window]\nwidth = 0\n",
		"no server":     "[point_clouds]\nclouds = [\"a\"]\n",
		"no downloads":  "[cache]\nmax_concurrent = 0\n",
		"invalid toml":  "[window\n",
		"negative msaa": "[window]\nmsaa = -1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestFlagsOverrideFile(t *testing.T) {
	p := writeConfig(t, sample)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c, err := Parse(fs, []string{"-config", p, "-width", "1280", "-msaa", "-clouds", "a, b,", "-background=#ffffff80"})
	require.NoError(t, err)
	assert.Equal(t, 1280, c.Window.Width)
	assert.Equal(t, 600, c.Window.Height)
	assert.Equal(t, defaultMSAA, c.Window.MSAA)
	assert.Equal(t, []string{"a", "b"}, c.PointClouds.Clouds)
	assert.Equal(t, float32(0x80)/255, c.BackgroundColor().A)
	assert.Equal(t, 8, c.Cache.MaxConcurrent)
}

func TestParseDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c, err := Parse(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, gpu.Black, c.BackgroundColor())

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	c, err = Parse(fs, []string{"-msaa=false", "-f"})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Window.MSAA)
	assert.True(t, c.Window.Fullscreen)
}
