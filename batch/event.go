package batch

import (
	"github.com/tubescribe/tubescribe/log"
	"github.com/tubescribe/tubescribe/video"
)

// EventType names a store change.
type EventType string

const (
	EventBatchStarted   EventType = "batch.started"
	EventResultUpdated  EventType = "result.updated"
	EventBatchFinished  EventType = "batch.finished"
	EventResultsCleared EventType = "results.cleared"
)

// Event is published to subscribers after every store mutation.
type Event struct {
	Type    EventType      `json:"type"`
	BatchID string         `json:"batchId,omitempty"`
	Result  *video.Result  `json:"result,omitempty"`
	Results []video.Result `json:"results,omitempty"`
	Summary *Summary       `json:"summary,omitempty"`
}

const subscriberBuffer = 256

type subscriber struct {
	ch chan Event
}

// Subscribe returns a channel of store events and a function that
// unsubscribes and closes it. Slow subscribers miss events rather than
// stall the loop.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++
	sub := &subscriber{ch: make(chan Event, subscriberBuffer)}
	s.subs[id] = sub

	var once bool
	return sub.ch, func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		if once {
			return
		}
		once = true
		delete(s.subs, id)
		close(sub.ch)
	}
}

func (s *Store) publish(e Event) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for _, sub := range s.subs {
		select {
		case sub.ch <- e:
		default:
			s.logger.With(log.Fields{"event": e.Type}).Warn("subscriber buffer full, event dropped")
		}
	}
}
