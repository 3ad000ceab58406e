package engine

import "sync"

// Publisher is a single-latest-value channel of resolutions. A new publish
// supersedes an unconsumed older value; subscribers always receive the
// newest resolution only.
type Publisher struct {
	mu sync.Mutex
	ch chan Resolution
}

// NewPublisher creates a publisher.
func NewPublisher() *Publisher {
	return &Publisher{ch: make(chan Resolution, 1)}
}

// Publish replaces any unconsumed resolution with this one.
func (p *Publisher) Publish(res Resolution) {
	p.mu.Lock()
	defer p.mu.Unlock()

	select {
	case <-p.ch:
	default:
	}
	p.ch <- res
}

// Results returns the channel carrying the latest resolution.
func (p *Publisher) Results() <-chan Resolution {
	return p.ch
}
