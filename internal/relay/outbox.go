package relay

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Delivery is one pending relay payload.
type Delivery struct {
	ID         string
	Payload    interface{}
	EnqueuedAt time.Time
}

// Outbox buffers payloads between business logic and the dispatcher. It is
// in-memory on purpose: the relay channel is best-effort and deliveries are
// not retried, so losing them on a crash is acceptable.
type Outbox struct {
	mu      sync.Mutex
	pending []Delivery
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Enqueue(payload interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = append(o.pending, Delivery{
		ID:         uuid.New().String(),
		Payload:    payload,
		EnqueuedAt: time.Now(),
	})
}

// Drain removes and returns up to limit pending deliveries, oldest first.
func (o *Outbox) Drain(limit int) []Delivery {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.pending) == 0 {
		return nil
	}
	if limit > len(o.pending) {
		limit = len(o.pending)
	}

	drained := make([]Delivery, limit)
	copy(drained, o.pending[:limit])
	o.pending = o.pending[limit:]
	return drained
}

// Len reports the number of pending deliveries.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}
