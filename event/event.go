// SPDX-License-Identifier: GPL-2.0-or-later
package event

import "fmt"

type TouchType int

const (
	Down TouchType = iota
	Move
	Up
	LongPress
)

func (t TouchType) String() string {
	switch t {
	case Down:
		return "Down"
	case Move:
		return "Move"
	case Up:
		return "Up"
	case LongPress:
		return "LongPress"
	}
	return fmt.Sprintf("TouchType(%d)", int(t))
}

type Pixel struct {
	X, Y float32
}

type Touch struct {
	Previous Pixel
	Current  Pixel
	TapCount int
}

type TouchEvent struct {
	Type    TouchType
	Touches []Touch
}

// NewTouchEvent creates a single touch event.
func NewTouchEvent(typ TouchType, prev, cur Pixel, taps int) *TouchEvent {
	return &TouchEvent{
		Type:    typ,
		Touches: []Touch{{Previous: prev, Current: cur, TapCount: taps}},
	}
}

func (e *TouchEvent) TouchCount() int {
	return len(e.Touches)
}

// TapCount returns the tap count of the first touch.
func (e *TouchEvent) TapCount() int {
	if len(e.Touches) == 0 {
		return 0
	}
	return e.Touches[0].TapCount
}
