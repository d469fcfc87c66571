package app

import (
	"sync"
	"time"
)

// dispatchGuard suppresses duplicate sends when an external trigger fires
// twice inside one matching window (overlapping cron calls, a retrying
// caller). Purely in-process by design: the scheduler persists no schedule
// state, so the guarantee is best-effort and scoped to a single process
// lifetime.
type dispatchGuard struct {
	mu    sync.Mutex
	fired map[string]time.Time
}

func newDispatchGuard() *dispatchGuard {
	return &dispatchGuard{fired: make(map[string]time.Time)}
}

// shouldDispatch marks key as fired and reports whether this caller won the
// claim. Entries older than keep are swept on each call so the map stays
// bounded by one window's worth of tasks.
func (g *dispatchGuard) shouldDispatch(key string, now time.Time, keep time.Duration) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for k, at := range g.fired {
		if now.Sub(at) > keep {
			delete(g.fired, k)
		}
	}

	if _, ok := g.fired[key]; ok {
		return false
	}

	g.fired[key] = now

	return true
}
