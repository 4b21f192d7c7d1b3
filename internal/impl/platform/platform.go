package impl_platform

import (
	"sync"
	"time"

	port_platform "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/platform"
	"github.com/google/uuid"
)

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewUUID() uuid.UUID { return uuid.New() }

// WallScheduler runs callbacks on real time.Tickers, one goroutine each.
type WallScheduler struct{}

func (WallScheduler) Every(interval time.Duration, fn func()) port_platform.Ticker {
	t := &wallTicker{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go t.run(fn)
	return t
}

type wallTicker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *wallTicker) run(fn func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			select {
			case <-t.done:
				return
			default:
			}
			fn()
		}
	}
}

func (t *wallTicker) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
