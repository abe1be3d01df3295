// SPDX-License-Identifier: GPL-2.0-or-later

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatBufferVersion(t *testing.T) {
	b := NewFloatBufferFrom(1, 2, 3)
	v := b.Version()
	b.Put(0, 1)
	assert.Equal(t, v, b.Version(), "writing the same value must not bump the version")
	b.Put(0, 5)
	assert.Equal(t, v+1, b.Version())
	assert.Equal(t, float32(5), b.Get(0))
}

func TestBufferIDsAreUnique(t *testing.T) {
	a := NewFloatBuffer(3)
	b := NewFloatBuffer(3)
	c := NewShortBufferFrom(0, 1, 2)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEqual(t, b.ID(), c.ID())
}

func TestFloatBufferRelease(t *testing.T) {
	b := NewFloatBufferFrom(-7, 2)
	assert.Equal(t, float32(7), b.MaxAbs())
	b.Release()
	assert.Equal(t, 0, b.Size())
}

func TestFromRGBA255(t *testing.T) {
	c := FromRGBA255(255, 0, 255, 255)
	assert.Equal(t, Color{1, 0, 1, 1}, c)
	assert.False(t, c.IsTransparent())
	assert.True(t, Transparent.IsTransparent())
}
