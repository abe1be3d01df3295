// SPDX-License-Identifier: GPL-2.0-or-later

package gpu

import (
	"sync/atomic"

	"github.com/chewxy/math32"
)

var lastBufferID atomic.Uint64

func nextBufferID() uint64 {
	return lastBufferID.Add(1)
}

// FloatBuffer is CPU side vertex storage. The GL implementation uploads it on
// demand and uses ID and Version to decide whether the uploaded copy is stale.
type FloatBuffer struct {
	id      uint64
	version uint64
	data    []float32
}

func NewFloatBuffer(size int) *FloatBuffer {
	return &FloatBuffer{
		id:   nextBufferID(),
		data: make([]float32, size),
	}
}

func NewFloatBufferFrom(data ...float32) *FloatBuffer {
	b := NewFloatBuffer(len(data))
	copy(b.data, data)
	return b
}

func (b *FloatBuffer) ID() uint64      { return b.id }
func (b *FloatBuffer) Version() uint64 { return b.version }
func (b *FloatBuffer) Size() int       { return len(b.data) }

func (b *FloatBuffer) Get(i int) float32 {
	return b.data[i]
}

func (b *FloatBuffer) Put(i int, v float32) {
	if b.data[i] == v {
		return
	}
	b.data[i] = v
	b.version++
}

// Data exposes the backing slice. It must not be modified; use Put.
func (b *FloatBuffer) Data() []float32 {
	return b.data
}

// Release drops the backing storage. A released buffer has size 0.
func (b *FloatBuffer) Release() {
	b.data = nil
	b.version++
}

// MaxAbs returns the largest absolute component, useful for sanity checks on
// center relative vertex data.
func (b *FloatBuffer) MaxAbs() float32 {
	var m float32
	for _, v := range b.data {
		m = math32.Max(m, math32.Abs(v))
	}
	return m
}

// ShortBuffer holds vertex indices.
type ShortBuffer struct {
	id      uint64
	version uint64
	data    []uint16
}

func NewShortBufferFrom(data ...uint16) *ShortBuffer {
	b := &ShortBuffer{
		id:   nextBufferID(),
		data: make([]uint16, len(data)),
	}
	copy(b.data, data)
	return b
}

func (b *ShortBuffer) ID() uint64       { return b.id }
func (b *ShortBuffer) Version() uint64  { return b.version }
func (b *ShortBuffer) Size() int        { return len(b.data) }
func (b *ShortBuffer) Get(i int) uint16 { return b.data[i] }
func (b *ShortBuffer) Data() []uint16   { return b.data }

func (b *ShortBuffer) Put(i int, v uint16) {
	if b.data[i] == v {
		return
	}
	b.data[i] = v
	b.version++
}

func (b *ShortBuffer) Release() {
	b.data = nil
	b.version++
}
