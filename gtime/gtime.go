// SPDX-License-Identifier: GPL-2.0-or-later

// Package gtime measures frame times.
package gtime

import (
	"time"
)

var (
	startTime = time.Now()
)

// Uptime is the time since the process started.
func Uptime() time.Duration {
	return time.Since(startTime)
}

type Timer interface {
	Start()
	Elapsed() time.Duration
}

// Clock is a Timer on the monotonic wall clock.
type Clock struct {
	start time.Time
	now   func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now, start: time.Now()}
}

func (c *Clock) Start() {
	c.start = c.now()
}

func (c *Clock) Elapsed() time.Duration {
	return c.now().Sub(c.start)
}

// Fixed is a Timer that always reports the same elapsed time.
type Fixed time.Duration

func (Fixed) Start()                   {}
func (f Fixed) Elapsed() time.Duration { return time.Duration(f) }
