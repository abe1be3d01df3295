// SPDX-License-Identifier: GPL-2.0-or-later

package downloader

import (
	"sync"
	"time"
)

type Entry struct {
	Data    []byte
	Expires time.Time
}

func (e Entry) Expired(now time.Time) bool {
	return !now.Before(e.Expires)
}

// Cache stores downloaded payloads. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(url string) (Entry, bool)
	Put(url string, data []byte, expires time.Time) error
}

// MemoryCache keeps everything in process memory.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]Entry)}
}

func (c *MemoryCache) Get(url string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[url]
	return e, ok
}

func (c *MemoryCache) Put(url string, data []byte, expires time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = Entry{Data: append([]byte(nil), data...), Expires: expires}
	return nil
}
