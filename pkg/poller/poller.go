package poller

import (
	"context"
	"sync"
	"time"

	"lumiere/pkg/logger"
)

// FetchFunc produces a fresh snapshot on each poll.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Callback receives each successfully fetched snapshot.
type Callback[T any] func(snapshot T)

// Poller invokes fetch on a fixed interval and hands each snapshot to
// the callback. The first fetch fires immediately, not after one
// interval. Fetch errors are logged and the loop keeps going.
type Poller[T any] struct {
	interval time.Duration
	fetch    FetchFunc[T]
	log      *logger.Logger

	mu      sync.Mutex
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func New[T any](interval time.Duration, fetch FetchFunc[T], log *logger.Logger) *Poller[T] {
	return &Poller[T]{
		interval: interval,
		fetch:    fetch,
		log:      log,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Subscribe starts polling and returns an unsubscribe function. The
// unsubscribe function blocks until the loop has exited and is safe to
// call more than once.
func (p *Poller[T]) Subscribe(ctx context.Context, callback Callback[T]) func() {
	go p.run(ctx, callback)

	return func() {
		p.mu.Lock()
		if !p.stopped {
			p.stopped = true
			close(p.stopCh)
		}
		p.mu.Unlock()
		<-p.doneCh
	}
}

func (p *Poller[T]) run(ctx context.Context, callback Callback[T]) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx, callback)

	for {
		select {
		case <-ticker.C:
			p.poll(ctx, callback)
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller[T]) poll(ctx context.Context, callback Callback[T]) {
	snapshot, err := p.fetch(ctx)
	if err != nil {
		p.log.Warn("Poll fetch failed", "error", err)
		return
	}
	callback(snapshot)
}
