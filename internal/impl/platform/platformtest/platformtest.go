// Package platformtest provides deterministic platform ports for tests and
// simulations: a scheduler driven by Advance and a settable clock.
package platformtest

import (
	"sync"
	"time"

	port_platform "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/platform"
	"github.com/google/uuid"
)

type ManualScheduler struct {
	mu      sync.Mutex
	nextID  int
	entries map[int]*manualTicker
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{entries: make(map[int]*manualTicker)}
}

func (s *ManualScheduler) Every(interval time.Duration, fn func()) port_platform.Ticker {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t := &manualTicker{id: s.nextID, sched: s, fn: fn, interval: interval}
	s.entries[t.id] = t
	return t
}

// Advance fires every running ticker once per unit, in registration order.
// Tickers stopped by a callback do not fire again.
func (s *ManualScheduler) Advance(units int) {
	for i := 0; i < units; i++ {
		for _, t := range s.running() {
			if t.stopped() {
				continue
			}
			t.fn()
		}
	}
}

// Active reports how many tickers have not been stopped.
func (s *ManualScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *ManualScheduler) running() []*manualTicker {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*manualTicker, 0, len(s.entries))
	for id := 1; id <= s.nextID; id++ {
		if t, ok := s.entries[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

type manualTicker struct {
	id       int
	sched    *ManualScheduler
	fn       func()
	interval time.Duration
}

func (t *manualTicker) Stop() {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	delete(t.sched.entries, t.id)
}

func (t *manualTicker) stopped() bool {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	_, ok := t.sched.entries[t.id]
	return !ok
}

type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{now: now}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SequentialIDs returns deterministic uuids derived from a counter.
type SequentialIDs struct {
	mu sync.Mutex
	n  uint64
}

func (g *SequentialIDs) NewUUID() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	var id uuid.UUID
	for i := 0; i < 8; i++ {
		id[15-i] = byte(g.n >> (8 * i))
	}
	return id
}
