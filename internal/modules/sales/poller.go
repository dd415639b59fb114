package sales

import (
	"context"
	"log"
	"sync"
	"time"
)

// Poller refreshes a store's sales metrics on a fixed interval, for screens
// that display near-real-time figures. It stops when its context is cancelled
// and never delivers a refresh after Stop returns.
type Poller struct {
	service  Service
	storeID  string
	interval time.Duration
	window   time.Duration
	onUpdate func(*Metrics)

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
}

// NewPoller builds a poller that calls onUpdate with fresh metrics for the
// trailing window every interval.
func NewPoller(service Service, storeID string, interval, window time.Duration, onUpdate func(*Metrics)) *Poller {
	return &Poller{
		service:  service,
		storeID:  storeID,
		interval: interval,
		window:   window,
		onUpdate: onUpdate,
	}
}

// Start begins polling. The first refresh fires immediately, then every
// interval until ctx is cancelled or Stop is called. Start is not reentrant.
func (p *Poller) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.done = make(chan struct{})
	p.mu.Unlock()

	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.refresh(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.refresh(ctx)
			}
		}
	}()
}

// Stop cancels polling and waits for the loop to exit, so no update callback
// can run after it returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stopped || p.cancel == nil {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	cancel()
	<-done
}

func (p *Poller) refresh(ctx context.Context) {
	now := time.Now()
	m, err := p.service.Summary(ctx, p.storeID, now.Add(-p.window), now)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("sales poller: refresh for store %s failed: %v", p.storeID, err)
		}
		return
	}
	if ctx.Err() != nil {
		return
	}
	p.onUpdate(m)
}
