package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/internal/explorer"
)

// ParamDocumentID is the event parameter naming a document evicted from the
// session by a delete made elsewhere.
const ParamDocumentID = "documentId"

// Event notifies session subscribers of a processed change.
type Event struct {
	SessionID  uuid.UUID           `json:"session_id"`
	ChangeKind explorer.ChangeKind `json:"change_kind"`
	Parameters map[string]any      `json:"parameters,omitempty"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// broadcaster fans events out to subscribers. Publishing never blocks:
// a subscriber whose buffer is full misses the event.
type broadcaster struct {
	mu     sync.Mutex
	subs   map[uint64]chan Event
	next   uint64
	buffer int
	closed bool
}

func newBroadcaster(buffer int) *broadcaster {
	return &broadcaster{
		subs:   make(map[uint64]chan Event),
		buffer: buffer,
	}
}

// subscribe registers a subscriber. The returned cancel func is idempotent.
// On a closed broadcaster the channel is returned already closed.
func (b *broadcaster) subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	key := b.next
	b.next++
	b.subs[key] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[key]; ok {
			delete(b.subs, key)
			close(c)
		}
	}
}

// publish delivers e to every subscriber with buffer space and reports
// how many received it.
func (b *broadcaster) publish(e Event) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for _, ch := range b.subs {
		select {
		case ch <- e:
			delivered++
		default:
		}
	}
	return delivered
}

func (b *broadcaster) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for key, ch := range b.subs {
		delete(b.subs, key)
		close(ch)
	}
}
