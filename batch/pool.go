// Package batch runs the extraction pipeline over a list of URLs and
// assembles the accepted results into a dataset.
package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/pagex"
)

// DefaultWorkers is the number of concurrent browser fetches when no
// positive worker count is configured.
const DefaultWorkers = 2

// Ensure Pool implements pagex.Fetcher at compile time.
var _ pagex.Fetcher = (*Pool)(nil)

// Pool serializes calls to a blocking fetcher through a task queue served
// by a fixed number of workers. It is used in front of browser fetchers,
// where each call holds a whole browser.
type Pool struct {
	fetcher pagex.Fetcher
	tasks   chan task
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

type task struct {
	ctx    context.Context
	url    string
	result chan pagex.FetchOutcome
}

// NewPool starts workers goroutines that pass queued URLs to fetcher.
func NewPool(fetcher pagex.Fetcher, workers int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	p := &Pool{
		fetcher: fetcher,
		tasks:   make(chan task),
	}
	p.wg.Add(workers)
	for range workers {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	defer p.wg.Done()
	for t := range p.tasks {
		if err := t.ctx.Err(); err != nil {
			t.result <- canceled(err)
			continue
		}
		t.result <- p.fetcher.Fetch(t.ctx, t.url)
	}
}

// Fetch queues url and waits for a worker to fetch it.
func (p *Pool) Fetch(ctx context.Context, url string) pagex.FetchOutcome {
	t := task{
		ctx:    ctx,
		url:    url,
		result: make(chan pagex.FetchOutcome, 1),
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return pagex.FetchFailure("Fetch pool closed")
	}
	select {
	case p.tasks <- t:
		p.mu.RUnlock()
	case <-ctx.Done():
		p.mu.RUnlock()
		return canceled(ctx.Err())
	}

	return <-t.result
}

// Close stops accepting work, waits for running fetches and closes the
// underlying fetcher.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
	return p.fetcher.Close()
}

func canceled(err error) pagex.FetchOutcome {
	return pagex.FetchFailure(fmt.Sprintf("Fetch canceled: %v", err))
}
