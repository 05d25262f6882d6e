package schedule_test

import (
	"testing"
	"time"

	"github.com/fwojciec/mdpdf/mock"
	"github.com/fwojciec/mdpdf/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

// fired reports whether the ticket's timer has fired without blocking.
func fired(t *testing.T, tk *schedule.Ticket) bool {
	t.Helper()
	done := make(chan bool, 1)
	go func() { done <- tk.Wait() }()
	select {
	case ok := <-done:
		return ok
	case <-time.After(50 * time.Millisecond):
		tk.Cancel()
		<-done
		return false
	}
}

func TestScheduler_FiresAfterQuietPeriod(t *testing.T) {
	t.Parallel()

	clock := mock.NewClock(epoch)
	s := schedule.New[string](clock)

	tk := s.Schedule("a", 2*time.Second)
	assert.True(t, s.Pending())

	clock.Advance(1999 * time.Millisecond)
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(time.Millisecond)
	require.True(t, tk.Wait())

	v, ok := s.Fire(tk)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.False(t, s.Pending())
}

func TestScheduler_BurstKeepsLatest(t *testing.T) {
	t.Parallel()

	clock := mock.NewClock(epoch)
	s := schedule.New[string](clock)

	var tickets []*schedule.Ticket
	for _, v := range []string{"#", "# ", "# H", "# Hi"} {
		tickets = append(tickets, s.Schedule(v, 2*time.Second))
		clock.Advance(500 * time.Millisecond)
	}
	clock.Advance(2 * time.Second)

	for _, tk := range tickets[:len(tickets)-1] {
		assert.False(t, fired(t, tk), "superseded tickets never fire")
		_, ok := s.Fire(tk)
		assert.False(t, ok)
	}

	last := tickets[len(tickets)-1]
	require.True(t, last.Wait())
	v, ok := s.Fire(last)
	require.True(t, ok)
	assert.Equal(t, "# Hi", v)
}

func TestScheduler_FireAfterSupersede(t *testing.T) {
	t.Parallel()

	// The first timer fires, but a new value arrives before the owner
	// handles it. The stale ticket must not claim the new value.
	clock := mock.NewClock(epoch)
	s := schedule.New[int](clock)

	first := s.Schedule(1, time.Second)
	clock.Advance(time.Second)
	require.True(t, first.Wait())

	second := s.Schedule(2, time.Second)

	_, ok := s.Fire(first)
	assert.False(t, ok)

	v, ok := s.Value()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	clock.Advance(time.Second)
	require.True(t, second.Wait())
	v, ok = s.Fire(second)
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestScheduler_Cancel(t *testing.T) {
	t.Parallel()

	clock := mock.NewClock(epoch)
	s := schedule.New[string](clock)

	tk := s.Schedule("a", time.Second)
	s.Cancel()

	assert.False(t, s.Pending())
	assert.False(t, tk.Wait(), "Wait returns false once cancelled")
	assert.Zero(t, clock.Pending())

	clock.Advance(time.Second)
	_, ok := s.Fire(tk)
	assert.False(t, ok)
}

func TestTicket_Cancel(t *testing.T) {
	t.Parallel()

	clock := mock.NewClock(epoch)
	s := schedule.New[string](clock)

	tk := s.Schedule("a", time.Second)
	tk.Cancel()
	tk.Cancel()

	assert.False(t, s.Pending())
	_, ok := s.Value()
	assert.False(t, ok)
}

func TestScheduler_FireTwice(t *testing.T) {
	t.Parallel()

	clock := mock.NewClock(epoch)
	s := schedule.New[string](clock)

	tk := s.Schedule("a", time.Second)
	clock.Advance(time.Second)

	_, ok := s.Fire(tk)
	require.True(t, ok)
	_, ok = s.Fire(tk)
	assert.False(t, ok, "a ticket is claimed at most once")
	_, ok = s.Fire(nil)
	assert.False(t, ok)
}

func TestScheduler_RealClock(t *testing.T) {
	t.Parallel()

	s := schedule.New[string](nil)
	tk := s.Schedule("a", 10*time.Millisecond)
	require.True(t, tk.Wait())

	v, ok := s.Fire(tk)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.WithinDuration(t, time.Now(), s.Now(), time.Second)
}
