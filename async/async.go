// SPDX-License-Identifier: GPL-2.0-or-later

// Package async moves results from worker goroutines to the render thread.
// Workers Post; only the render thread Drains, so renderer state keeps a
// single writer per frame and needs no locks.
package async

import (
	"sync"
)

// Inbox collects functions to run on the render thread.
type Inbox struct {
	mu      sync.Mutex
	pending []func()
}

// Post queues f for the next Drain. It never blocks and may be called from
// any goroutine.
func (in *Inbox) Post(f func()) {
	in.mu.Lock()
	in.pending = append(in.pending, f)
	in.mu.Unlock()
}

// Len returns the number of queued functions.
func (in *Inbox) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.pending)
}

// Drain runs everything posted before the call, in posting order. Functions
// posted while draining wait for the next Drain. Returns how many ran.
func (in *Inbox) Drain() int {
	in.mu.Lock()
	work := in.pending
	in.pending = nil
	in.mu.Unlock()
	for _, f := range work {
		f()
	}
	return len(work)
}

// Task is background work with a render thread completion step.
type Task interface {
	// RunInBackground runs on a worker goroutine and must not touch
	// render thread state.
	RunInBackground()
	// OnPostExecute runs on the render thread during a later frame.
	OnPostExecute()
}

// Runner starts tasks and delivers their completion through an Inbox.
type Runner struct {
	inbox *Inbox
	wg    sync.WaitGroup
}

func NewRunner(inbox *Inbox) *Runner {
	return &Runner{inbox: inbox}
}

func (r *Runner) Inbox() *Inbox { return r.inbox }

func (r *Runner) InvokeAsyncTask(t Task) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		t.RunInBackground()
		r.inbox.Post(t.OnPostExecute)
	}()
}

// InvokeInRenderThread queues f for the next frame.
func (r *Runner) InvokeInRenderThread(f func()) {
	r.inbox.Post(f)
}

// Wait blocks until every started task finished its background part.
func (r *Runner) Wait() {
	r.wg.Wait()
}
