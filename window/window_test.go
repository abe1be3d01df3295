// SPDX-License-Identifier: GPL-2.0-or-later

package window

import (
	"testing"

	"goglobe/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMouseToTouch(t *testing.T) {
	w := &Window{}
	assert.Nil(t, w.mouseMotion(5, 5), "hovering is no touch")

	down := w.mouseButton(true, 10, 20, 2)
	require.NotNil(t, down)
	assert.Equal(t, event.Down, down.Type)
	assert.Equal(t, 2, down.TapCount())
	assert.Equal(t, event.Pixel{X: 5, Y: 5}, down.Touches[0].Previous)

	move := w.mouseMotion(12, 25)
	require.NotNil(t, move)
	assert.Equal(t, event.Move, move.Type)
	assert.Equal(t, event.Pixel{X: 10, Y: 20}, move.Touches[0].Previous)
	assert.Equal(t, event.Pixel{X: 12, Y: 25}, move.Touches[0].Current)

	assert.Nil(t, w.mouseButton(true, 12, 25, 1), "repeated press")
	up := w.mouseButton(false, 12, 25, 1)
	require.NotNil(t, up)
	assert.Equal(t, event.Up, up.Type)
	assert.Nil(t, w.mouseMotion(13, 25))
}
