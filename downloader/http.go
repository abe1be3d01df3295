// SPDX-License-Identifier: GPL-2.0-or-later

package downloader

import (
	"context"
	"io"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"goglobe/conlog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
)

type request struct {
	id          RequestID
	url         string
	priority    Priority
	ttl         time.Duration
	readExpired bool
	listener    Listener
	canceled    atomic.Bool
	seq         uint64
}

// HTTPDownloader runs at most a fixed number of transfers at once, highest
// priority first, and answers from a Cache when it can.
type HTTPDownloader struct {
	client *http.Client
	cache  Cache
	log    conlog.Logger
	sem    *semaphore.Weighted
	now    func() time.Time

	mu      sync.Mutex
	queue   []*request
	running map[RequestID]*request
	seq     uint64
	started bool
	stopped bool

	wake   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Option func(*HTTPDownloader)

func WithClient(c *http.Client) Option { return func(d *HTTPDownloader) { d.client = c } }
func WithCache(c Cache) Option         { return func(d *HTTPDownloader) { d.cache = c } }
func WithLogger(l conlog.Logger) Option {
	return func(d *HTTPDownloader) { d.log = l }
}

// WithMaxConcurrent limits parallel transfers, default 4.
func WithMaxConcurrent(n int) Option {
	return func(d *HTTPDownloader) {
		if n > 0 {
			d.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

func NewHTTP(opts ...Option) *HTTPDownloader {
	ctx, cancel := context.WithCancel(context.Background())
	d := &HTTPDownloader{
		client:  http.DefaultClient,
		cache:   NewMemoryCache(),
		log:     conlog.Nop(),
		sem:     semaphore.NewWeighted(4),
		now:     time.Now,
		running: make(map[RequestID]*request),
		wake:    make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *HTTPDownloader) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true
	d.wg.Add(1)
	go d.dispatch()
}

// Stop cancels queued requests, aborts running transfers and waits for the
// workers to finish. Every listener has been called when Stop returns.
func (d *HTTPDownloader) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	queued := d.queue
	d.queue = nil
	d.mu.Unlock()

	d.cancel()
	for _, r := range queued {
		r.listener.OnCancel(r.url)
	}
	d.wg.Wait()
}

func (d *HTTPDownloader) Download(url string, priority Priority, ttl time.Duration, readExpired bool, l Listener) RequestID {
	r := &request{
		id:          uuid.Must(uuid.NewV7()),
		url:         url,
		priority:    priority,
		ttl:         ttl,
		readExpired: readExpired,
		listener:    l,
	}
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		l.OnCancel(url)
		return r.id
	}
	d.seq++
	r.seq = d.seq
	d.queue = append(d.queue, r)
	d.mu.Unlock()
	d.signal()
	return r.id
}

// Cancel withdraws a request. A queued request gets OnCancel right away; a
// running one completes with OnCanceledDownload or OnCancel.
func (d *HTTPDownloader) Cancel(id RequestID) {
	d.mu.Lock()
	if i := slices.IndexFunc(d.queue, func(r *request) bool { return r.id == id }); i >= 0 {
		r := d.queue[i]
		d.queue = slices.Delete(d.queue, i, i+1)
		d.mu.Unlock()
		r.canceled.Store(true)
		r.listener.OnCancel(r.url)
		return
	}
	if r, ok := d.running[id]; ok {
		r.canceled.Store(true)
	}
	d.mu.Unlock()
}

// Pending returns queued plus running requests.
func (d *HTTPDownloader) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue) + len(d.running)
}

func (d *HTTPDownloader) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// next pops the highest priority request, oldest first among equals.
func (d *HTTPDownloader) next() *request {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.queue) == 0 {
		return nil
	}
	best := 0
	for i, r := range d.queue {
		b := d.queue[best]
		if r.priority > b.priority || (r.priority == b.priority && r.seq < b.seq) {
			best = i
		}
	}
	r := d.queue[best]
	d.queue = slices.Delete(d.queue, best, best+1)
	d.running[r.id] = r
	return r
}

func (d *HTTPDownloader) dispatch() {
	defer d.wg.Done()
	for {
		select {
		case <-d.ctx.Done():
			return
		case <-d.wake:
		}
		for {
			if err := d.sem.Acquire(d.ctx, 1); err != nil {
				return
			}
			r := d.next()
			if r == nil {
				d.sem.Release(1)
				break
			}
			d.wg.Add(1)
			go func() {
				defer d.wg.Done()
				defer d.sem.Release(1)
				d.run(r)
				d.mu.Lock()
				delete(d.running, r.id)
				d.mu.Unlock()
			}()
		}
	}
}

func (d *HTTPDownloader) run(r *request) {
	if e, ok := d.cache.Get(r.url); ok {
		expired := e.Expired(d.now())
		if !expired || r.readExpired {
			d.deliver(r, e.Data, expired)
			return
		}
	}
	data, err := d.fetch(r.url)
	if err != nil {
		if d.ctx.Err() != nil {
			r.listener.OnCancel(r.url)
			return
		}
		d.log.Warning("Error downloading %s: %v", r.url, err)
		if r.canceled.Load() {
			r.listener.OnCancel(r.url)
			return
		}
		r.listener.OnError(r.url)
		return
	}
	if r.ttl > 0 {
		if err := d.cache.Put(r.url, data, d.now().Add(r.ttl)); err != nil {
			d.log.Warning("Can't cache %s: %v", r.url, err)
		}
	}
	d.deliver(r, data, false)
}

func (d *HTTPDownloader) deliver(r *request, data []byte, expired bool) {
	if r.canceled.Load() {
		r.listener.OnCanceledDownload(r.url, data, expired)
		return
	}
	r.listener.OnDownload(r.url, data, expired)
}

func (d *HTTPDownloader) fetch(url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(d.ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

var _ Downloader = (*HTTPDownloader)(nil)
