package schedule

import "time"

// Ticket is one scheduled firing. It is superseded by the next call to
// Schedule on the same Scheduler.
type Ticket struct {
	seq   uint64
	timer Timer
	done  chan struct{}
}

// Wait blocks until the ticket's timer fires or the ticket is cancelled.
// It reports true if the timer fired. A fired ticket may still have been
// superseded; confirm with [Scheduler.Fire].
func (t *Ticket) Wait() bool {
	select {
	case <-t.timer.C():
		return true
	case <-t.done:
		return false
	}
}

// Cancel stops the ticket. It is safe to call more than once.
func (t *Ticket) Cancel() {
	select {
	case <-t.done:
	default:
		t.timer.Stop()
		close(t.done)
	}
}

func (t *Ticket) cancelled() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Scheduler holds the latest value of a burst until it has been quiet for
// the scheduled duration.
type Scheduler[T any] struct {
	clock   Clock
	seq     uint64
	current *Ticket
	value   T
}

// New returns a Scheduler using clock. A nil clock means RealClock.
func New[T any](clock Clock) *Scheduler[T] {
	if clock == nil {
		clock = RealClock()
	}
	return &Scheduler[T]{clock: clock}
}

// Schedule records v as the pending value and arms a timer for after.
// Any previously scheduled ticket is cancelled. The returned ticket's
// Cancel withdraws v.
func (s *Scheduler[T]) Schedule(v T, after time.Duration) *Ticket {
	if s.current != nil {
		s.current.Cancel()
	}
	s.seq++
	t := &Ticket{
		seq:   s.seq,
		timer: s.clock.NewTimer(after),
		done:  make(chan struct{}),
	}
	s.current = t
	s.value = v
	return t
}

// Fire claims the pending value for t. It returns false if t was cancelled
// or superseded, which happens when a timer fires while a newer value is
// being scheduled. A claimed ticket is no longer pending.
func (s *Scheduler[T]) Fire(t *Ticket) (T, bool) {
	var zero T
	if t == nil || s.current != t || t.seq != s.seq || t.cancelled() {
		return zero, false
	}
	v := s.value
	s.current = nil
	s.value = zero
	return v, true
}

// Cancel withdraws the pending value, if any.
func (s *Scheduler[T]) Cancel() {
	if s.current == nil {
		return
	}
	s.current.Cancel()
	s.current = nil
	var zero T
	s.value = zero
}

// Pending reports whether a value is waiting to fire.
func (s *Scheduler[T]) Pending() bool {
	return s.current != nil && !s.current.cancelled()
}

// Value returns the pending value and whether there is one.
func (s *Scheduler[T]) Value() (T, bool) {
	if !s.Pending() {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Now returns the scheduler clock's current time.
func (s *Scheduler[T]) Now() time.Time {
	return s.clock.Now()
}
