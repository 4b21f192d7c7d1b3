package port_platform

import "time"

// Ticker is a running repeating callback. Stop must not block on a callback in
// progress, and no callback may start after Stop returns.
type Ticker interface {
	Stop()
}

type Scheduler interface {
	Every(interval time.Duration, fn func()) Ticker
}
