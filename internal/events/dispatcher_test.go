package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type capturingSubscriber struct {
	mu     sync.Mutex
	events []Event
}

func (s *capturingSubscriber) Handle(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *capturingSubscriber) snapshot() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func TestDispatch_FansOutToSubscribers(t *testing.T) {
	a := &capturingSubscriber{}
	b := &capturingSubscriber{}
	d := NewDispatcher(a, b)

	d.Dispatch(Event{Type: BookingCreated, BookingID: "bk-1", UserID: 10})
	d.Dispatch(Event{Type: BookingCancelled, BookingID: "bk-1", UserID: 10, Reason: "imprevisto"})

	// entrega assíncrona
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(a.snapshot()) == 2 && len(b.snapshot()) == 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	got := a.snapshot()
	assert.Len(t, got, 2)
	assert.Equal(t, BookingCreated, got[0].Type)
	assert.Equal(t, "imprevisto", got[1].Reason)
	assert.Len(t, b.snapshot(), 2)
}
