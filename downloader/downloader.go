// SPDX-License-Identifier: GPL-2.0-or-later

// Package downloader fetches remote resources asynchronously for renderers.
package downloader

import (
	"time"

	"github.com/google/uuid"
)

type Priority int64

const (
	Lowest  Priority = 0
	Lower   Priority = 100
	Medium  Priority = 1000
	Higher  Priority = 10000
	Highest Priority = 100000
)

// RequestID identifies a Download call for Cancel.
type RequestID = uuid.UUID

// Listener receives the outcome of a download. Exactly one method is called
// per request, from a goroutine that is not the render thread.
type Listener interface {
	OnDownload(url string, data []byte, expired bool)
	OnError(url string)
	// OnCancel is called when a request was canceled before any data arrived.
	OnCancel(url string)
	// OnCanceledDownload is called when data arrived for a canceled request.
	OnCanceledDownload(url string, data []byte, expired bool)
}

type Downloader interface {
	Start()
	// Stop cancels everything pending; their listeners still get called.
	Stop()
	// Download queues url. A zero ttl disables caching of the response.
	// readExpired allows answering from an expired cache entry.
	Download(url string, priority Priority, ttl time.Duration, readExpired bool, l Listener) RequestID
	Cancel(id RequestID)
}

// ListenerFuncs adapts plain functions to a Listener. Nil functions are
// skipped.
type ListenerFuncs struct {
	Download         func(url string, data []byte, expired bool)
	Error            func(url string)
	Cancel           func(url string)
	CanceledDownload func(url string, data []byte, expired bool)
}

func (l ListenerFuncs) OnDownload(url string, data []byte, expired bool) {
	if l.Download != nil {
		l.Download(url, data, expired)
	}
}

func (l ListenerFuncs) OnError(url string) {
	if l.Error != nil {
		l.Error(url)
	}
}

func (l ListenerFuncs) OnCancel(url string) {
	if l.Cancel != nil {
		l.Cancel(url)
	}
}

func (l ListenerFuncs) OnCanceledDownload(url string, data []byte, expired bool) {
	if l.CanceledDownload != nil {
		l.CanceledDownload(url, data, expired)
	}
}
