package store

import "sync"

// ChangeHub fans out local-store change signals to observers. Streams are
// sourced from the local store only; a remote sync lands in Mongo first and
// the hub tells observers to re-read.
type ChangeHub struct {
	mu   sync.Mutex
	subs map[string][]chan struct{}
}

var hub = &ChangeHub{subs: make(map[string][]chan struct{})}

func Hub() *ChangeHub { return hub }

// Subscribe returns a signal channel for the topic and an unsubscribe func.
// The channel has capacity one; coalesced signals are fine because observers
// re-read full state on every tick.
func (h *ChangeHub) Subscribe(topic string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	h.subs[topic] = append(h.subs[topic], ch)
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		channels := h.subs[topic]
		for i, c := range channels {
			if c == ch {
				h.subs[topic] = append(channels[:i], channels[i+1:]...)
				break
			}
		}
	}
	return ch, unsubscribe
}

// Notify signals every observer of the topic without blocking.
func (h *ChangeHub) Notify(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

const (
	TopicLoans        = "loans"
	TopicApplications = "applications"
	TopicPayments     = "payments"
)
