package relay

import (
	"context"
	"log"
	"time"
)

const drainBatchSize = 100

// Poster is what the dispatcher needs from the HTTP client.
type Poster interface {
	Post(ctx context.Context, payload interface{}) error
}

// Dispatcher polls the outbox and posts each delivery exactly once. A failed
// delivery is logged and dropped, never retried; the state transition that
// produced it already committed.
type Dispatcher struct {
	outbox *Outbox
	client Poster
	tick   time.Duration
}

func NewDispatcher(outbox *Outbox, client Poster) *Dispatcher {
	return &Dispatcher{
		outbox: outbox,
		client: client,
		tick:   time.Second,
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.processPending(ctx)
		case <-ctx.Done():
			// Flush whatever is queued before shutting down.
			d.processPending(context.Background())
			return
		}
	}
}

func (d *Dispatcher) processPending(ctx context.Context) {
	for _, delivery := range d.outbox.Drain(drainBatchSize) {
		if err := d.client.Post(ctx, delivery.Payload); err != nil {
			log.Printf("relay delivery failed id = %v with error %v", delivery.ID, err)
		}
	}
}
