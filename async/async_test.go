// SPDX-License-Identifier: GPL-2.0-or-later

package async

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrainOrder(t *testing.T) {
	var in Inbox
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		in.Post(func() { got = append(got, i) })
	}
	assert.Equal(t, 3, in.Len())
	assert.Equal(t, 3, in.Drain())
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 0, in.Drain())
}

func TestPostWhileDraining(t *testing.T) {
	var in Inbox
	ran := 0
	in.Post(func() {
		ran++
		in.Post(func() { ran++ })
	})
	in.Drain()
	assert.Equal(t, 1, ran, "work posted during a drain waits for the next frame")
	in.Drain()
	assert.Equal(t, 2, ran)
}

func TestConcurrentPost(t *testing.T) {
	var in Inbox
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in.Post(func() {})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, in.Drain())
}

type recordingTask struct {
	background bool
	post       bool
}

func (r *recordingTask) RunInBackground() { r.background = true }
func (r *recordingTask) OnPostExecute()   { r.post = true }

func TestRunner(t *testing.T) {
	in := &Inbox{}
	r := NewRunner(in)
	task := &recordingTask{}
	r.InvokeAsyncTask(task)
	r.Wait()
	assert.True(t, task.background)
	assert.False(t, task.post, "completion only runs when the render thread drains")
	in.Drain()
	assert.True(t, task.post)
}
