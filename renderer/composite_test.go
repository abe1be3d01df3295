// SPDX-License-Identifier: GPL-2.0-or-later

package renderer

import (
	"testing"

	"goglobe/event"
	"goglobe/frame"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stub is a scriptable Renderer.
type stub struct {
	name        string
	ready       bool
	hint        int
	handles     bool
	closeErr    error
	initialized int
	rendered    int
	closed      int
	resized     [][2]int
	log         *[]string
}

func (s *stub) Initialize(ic *frame.InitContext)             { s.initialized++ }
func (s *stub) IsReadyToRender(rc *frame.RenderContext) bool { return s.ready }
func (s *stub) Render(rc *frame.RenderContext) int {
	s.rendered++
	return s.hint
}
func (s *stub) OnTouchEvent(ec *frame.EventContext, e *event.TouchEvent) bool {
	if s.log != nil {
		*s.log = append(*s.log, s.name)
	}
	return s.handles
}
func (s *stub) OnResizeViewportEvent(ec *frame.EventContext, w, h int) {
	s.resized = append(s.resized, [2]int{w, h})
}
func (s *stub) Close() error {
	s.closed++
	return s.closeErr
}

func TestCompositeReadiness(t *testing.T) {
	a := &stub{ready: true, hint: 40}
	b := &stub{ready: false, hint: 16}
	c := NewComposite(a, b)
	assert.False(t, c.IsReadyToRender(nil))
	b.ready = true
	assert.True(t, c.IsReadyToRender(nil))

	assert.Equal(t, 16, c.Render(nil))
	c.SetEnabled(b, false)
	assert.Equal(t, 40, c.Render(nil))
	b.ready = false
	assert.True(t, c.IsReadyToRender(nil), "disabled children don't count")
	assert.Equal(t, 2, a.rendered)
	assert.Equal(t, 1, b.rendered)

	assert.Equal(t, FrameHint, NewComposite().Render(nil))
}

func TestCompositeInitialize(t *testing.T) {
	a := &stub{}
	c := NewComposite(a)
	c.Initialize(&frame.InitContext{})
	late := &stub{}
	c.Add(late)
	assert.Equal(t, 1, a.initialized)
	assert.Equal(t, 1, late.initialized)
	assert.Equal(t, 2, c.Len())
}

func TestCompositeTouchOrder(t *testing.T) {
	var log []string
	first := &stub{name: "first", handles: true, log: &log}
	second := &stub{name: "second", log: &log}
	third := &stub{name: "third", handles: true, log: &log}
	c := NewComposite(first, second, third)

	assert.True(t, c.OnTouchEvent(nil, &event.TouchEvent{}))
	assert.Equal(t, []string{"third"}, log)

	log = nil
	c.SetEnabled(third, false)
	assert.True(t, c.OnTouchEvent(nil, &event.TouchEvent{}))
	assert.Equal(t, []string{"second", "first"}, log)
}

func TestCompositeResizeAndClose(t *testing.T) {
	a := &stub{}
	b := &stub{closeErr: errors.New("boom")}
	c := NewComposite(a, b)
	c.SetEnabled(b, false)
	c.OnResizeViewportEvent(nil, 800, 600)
	assert.Equal(t, [][2]int{{800, 600}}, a.resized)
	assert.Equal(t, [][2]int{{800, 600}}, b.resized)

	err := c.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed)
	assert.Equal(t, 0, c.Len())
}

func TestCloseWithoutCloser(t *testing.T) {
	assert.NoError(t, Close(nopRenderer{}))
}

type nopRenderer struct{}

func (nopRenderer) Initialize(ic *frame.InitContext)                              {}
func (nopRenderer) IsReadyToRender(rc *frame.RenderContext) bool                  { return true }
func (nopRenderer) Render(rc *frame.RenderContext) int                            { return 0 }
func (nopRenderer) OnTouchEvent(ec *frame.EventContext, e *event.TouchEvent) bool { return false }
func (nopRenderer) OnResizeViewportEvent(ec *frame.EventContext, w, h int)        {}
