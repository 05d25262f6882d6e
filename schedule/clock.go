// Package schedule coalesces bursts of values into a single deferred action.
//
// A [Scheduler] holds at most one pending value. Scheduling a new value
// cancels the previous ticket, so only the last value of a burst survives
// the quiet period. Time comes from an injected [Clock]; tests drive it
// with a virtual clock instead of sleeping.
//
// Schedulers are not safe for concurrent use. The intended owner is a
// single event loop: tickets are waited on from other goroutines, and the
// owner confirms them with [Scheduler.Fire].
package schedule

import "time"

// Clock is the source of time for a Scheduler.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
}

// Timer fires once on C after its duration unless stopped.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// RealClock returns a Clock backed by the time package.
func RealClock() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTimer(d time.Duration) Timer {
	return realTimer{time.NewTimer(d)}
}

type realTimer struct{ t *time.Timer }

func (r realTimer) C() <-chan time.Time { return r.t.C }
func (r realTimer) Stop() bool          { return r.t.Stop() }
