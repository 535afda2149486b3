package session

import (
	"sync"
	"time"

	"userdesk/internal/app/form"
)

const maxSweepInterval = time.Minute

// Factory builds the controller for a new session.
type Factory func(sessionID string) *form.Controller

// Registry owns one form controller per session and evicts sessions idle for
// longer than the TTL. A controller with a submission in flight is never evicted.
type Registry struct {
	factory Factory
	ttl     time.Duration

	mu      sync.Mutex
	entries map[string]*entry
	stopCh  chan struct{}
	once    sync.Once
}

type entry struct {
	ctrl     *form.Controller
	lastSeen time.Time
}

func NewRegistry(factory Factory, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	r := &Registry{
		factory: factory,
		ttl:     ttl,
		entries: make(map[string]*entry),
		stopCh:  make(chan struct{}),
	}
	go r.sweepLoop()
	return r
}

// Get returns the session's controller, creating it on first use.
func (r *Registry) Get(sessionID string) *form.Controller {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		e = &entry{ctrl: r.factory(sessionID)}
		r.entries[sessionID] = e
	}
	e.lastSeen = now
	return e.ctrl
}

// Lookup returns the controller only if the session is live.
func (r *Registry) Lookup(sessionID string) (*form.Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.ctrl, true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) Close() {
	r.once.Do(func() { close(r.stopCh) })
}

func (r *Registry) sweepLoop() {
	interval := r.ttl / 2
	if interval > maxSweepInterval {
		interval = maxSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.sweep(time.Now())
		case <-r.stopCh:
			return
		}
	}
}

func (r *Registry) sweep(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > r.ttl && !e.ctrl.Busy() {
			delete(r.entries, id)
		}
	}
}
