package speeddial

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventKind identifies the mutation an Event describes.
type EventKind string

const (
	// EventInitialized is emitted once the directories have been created.
	EventInitialized EventKind = "initialized"

	// EventAdded is emitted after an entry has been added.
	EventAdded EventKind = "added"

	// EventRemoved is emitted after an entry has been removed.
	EventRemoved EventKind = "removed"

	// EventClosed is emitted after the registry has been torn down.
	EventClosed EventKind = "closed"
)

// Event describes a completed registry mutation. Seq increases by one per
// mutation in the order the mutations were applied.
type Event struct {
	Time      time.Time `json:"time"`
	Kind      EventKind `json:"kind"`
	Directory string    `json:"directory,omitempty"`
	Code      string    `json:"code,omitempty"`
	Number    string    `json:"number,omitempty"`
	Name      string    `json:"name,omitempty"`
	Seq       uint64    `json:"seq"`
	ID        uuid.UUID `json:"id"`
}

// Observer receives registry events. Observers run synchronously on the
// goroutine that performed the mutation, after the registry lock is
// released, and see events in Seq order. An observer must not mutate the
// registry it observes.
type Observer func(Event)

// pending is an event waiting for its turn together with the observers that
// were subscribed when the mutation happened.
type pending struct {
	observers []Observer
	event     Event
}

// sequencer hands events to observers strictly in Seq order.
type sequencer struct {
	mu   sync.Mutex
	cond *sync.Cond
	next uint64
}

func newSequencer() *sequencer {
	s := &sequencer{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// deliver waits until every earlier event has been delivered, then notifies
// the observers of p.
func (s *sequencer) deliver(p pending) {
	s.mu.Lock()
	for s.next != p.event.Seq {
		s.cond.Wait()
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.next++
		s.cond.Broadcast()
		s.mu.Unlock()
	}()

	for _, observer := range p.observers {
		observer(p.event)
	}
}
