// Package changefeed notifies interested parties that an owner's data changed.
//
// Events carry no payload beyond the owner and the collection touched;
// subscribers reload what they need. Delivery to a subscriber is coalescing:
// a subscriber that is slow to drain its channel sees one pending event, not
// a backlog.
package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Collection names the kind of record that changed.
type Collection string

const (
	CollectionTransactions Collection = "transactions"
	CollectionBudgets      Collection = "budgets"
)

// Event announces a committed write.
type Event struct {
	OwnerID    string     `json:"ownerID"`
	Collection Collection `json:"collection"`
	At         time.Time  `json:"at"`
}

// Feed publishes and fans out change events.
type Feed interface {
	// Publish announces a change. It returns once the event is handed to the transport.
	Publish(ctx context.Context, event Event) error
	// Subscribe returns a channel of events for ownerID and a function that
	// stops delivery and closes the channel.
	Subscribe(ownerID string) (<-chan Event, func())
	// Run pumps events from the transport until ctx is cancelled.
	Run(ctx context.Context) error
	Close() error
}

func encodeEvent(e Event) ([]byte, error) {
	return json.Marshal(e)
}

func decodeEvent(body []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(body, &e); err != nil {
		return Event{}, fmt.Errorf("decode change event: %w", err)
	}
	if e.OwnerID == "" {
		return Event{}, fmt.Errorf("decode change event: owner ID missing")
	}
	return e, nil
}

// hub fans events out to in-process subscribers.
type hub struct {
	mu     sync.Mutex
	subs   map[string]map[*subscription]struct{}
	closed bool
}

type subscription struct {
	ch   chan Event
	once sync.Once
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[*subscription]struct{})}
}

func (h *hub) subscribe(ownerID string) (<-chan Event, func()) {
	sub := &subscription{ch: make(chan Event, 1)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}
	}
	if h.subs[ownerID] == nil {
		h.subs[ownerID] = make(map[*subscription]struct{})
	}
	h.subs[ownerID][sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if owned, ok := h.subs[ownerID]; ok {
			if _, ok := owned[sub]; ok {
				delete(owned, sub)
				if len(owned) == 0 {
					delete(h.subs, ownerID)
				}
				sub.once.Do(func() { close(sub.ch) })
			}
		}
	}
	return sub.ch, cancel
}

// dispatch never blocks: a subscriber with an undrained event keeps that one.
func (h *hub) dispatch(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[e.OwnerID] {
		select {
		case sub.ch <- e:
		default:
		}
	}
}

func (h *hub) subscriberCount(ownerID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[ownerID])
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, owned := range h.subs {
		for sub := range owned {
			sub.once.Do(func() { close(sub.ch) })
		}
	}
	h.subs = make(map[string]map[*subscription]struct{})
}
