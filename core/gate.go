package orchestration

import "sync/atomic"

// turnGate admits at most one turn at a time.
//
// tryAcquire is non-blocking: a request arriving while a turn is active is
// rejected, not queued. The gate is the authoritative guard; any UI-side
// disabling of the speak affordance is cosmetic.
type turnGate struct {
	held atomic.Bool
}

func (g *turnGate) tryAcquire() bool {
	return g.held.CompareAndSwap(false, true)
}

// release is idempotent; it is safe to call on a gate that is not held.
func (g *turnGate) release() {
	g.held.Store(false)
}

func (g *turnGate) isHeld() bool {
	return g.held.Load()
}
