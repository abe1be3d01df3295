// SPDX-License-Identifier: GPL-2.0-or-later

package renderer

import (
	"math"

	"goglobe/event"
	"goglobe/frame"

	"go.uber.org/multierr"
)

type child struct {
	r       Renderer
	enabled bool
}

// Composite delegates to its children in the order they were added.
type Composite struct {
	children []*child
	ic       *frame.InitContext
}

func NewComposite(rs ...Renderer) *Composite {
	c := &Composite{}
	for _, r := range rs {
		c.Add(r)
	}
	return c
}

// Add appends r. After Initialize r is initialized right away.
func (c *Composite) Add(r Renderer) {
	c.children = append(c.children, &child{r: r, enabled: true})
	if c.ic != nil {
		r.Initialize(c.ic)
	}
}

// SetEnabled excludes r from rendering, readiness and events while false.
func (c *Composite) SetEnabled(r Renderer, enabled bool) {
	for _, ch := range c.children {
		if ch.r == r {
			ch.enabled = enabled
		}
	}
}

func (c *Composite) Len() int { return len(c.children) }

func (c *Composite) Initialize(ic *frame.InitContext) {
	c.ic = ic
	for _, ch := range c.children {
		ch.r.Initialize(ic)
	}
}

func (c *Composite) IsReadyToRender(rc *frame.RenderContext) bool {
	for _, ch := range c.children {
		if ch.enabled && !ch.r.IsReadyToRender(rc) {
			return false
		}
	}
	return true
}

// Render returns the smallest hint of the enabled children.
func (c *Composite) Render(rc *frame.RenderContext) int {
	hint := math.MaxInt
	for _, ch := range c.children {
		if ch.enabled {
			hint = min(hint, ch.r.Render(rc))
		}
	}
	if hint == math.MaxInt {
		return FrameHint
	}
	return hint
}

// OnTouchEvent offers e to the last added child first.
func (c *Composite) OnTouchEvent(ec *frame.EventContext, e *event.TouchEvent) bool {
	for i := len(c.children) - 1; i >= 0; i-- {
		ch := c.children[i]
		if ch.enabled && ch.r.OnTouchEvent(ec, e) {
			return true
		}
	}
	return false
}

func (c *Composite) OnResizeViewportEvent(ec *frame.EventContext, width, height int) {
	for _, ch := range c.children {
		ch.r.OnResizeViewportEvent(ec, width, height)
	}
}

func (c *Composite) Close() error {
	var err error
	for _, ch := range c.children {
		err = multierr.Append(err, Close(ch.r))
	}
	c.children = nil
	return err
}

var _ Renderer = (*Composite)(nil)
