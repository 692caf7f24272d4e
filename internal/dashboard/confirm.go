package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrConfirmationPending is returned by Resolve for an unknown request id.
var ErrConfirmationPending = errors.New("no confirmation pending for request")

// Confirmer is a rendezvous between an operation that needs a yes/no answer
// and whatever UI collects it. Request blocks until Resolve delivers the
// decision or the context ends.
type Confirmer struct {
	mu      sync.Mutex
	pending map[uuid.UUID]chan bool
}

func NewConfirmer() *Confirmer {
	return &Confirmer{pending: make(map[uuid.UUID]chan bool)}
}

// Request registers a pending confirmation and blocks until it is resolved.
// The context cancelling counts as a refusal.
func (c *Confirmer) Request(ctx context.Context) (uuid.UUID, bool) {
	id := uuid.New()
	ch := make(chan bool, 1)

	c.mu.Lock()
	c.pending[id] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	select {
	case approved := <-ch:
		return id, approved
	case <-ctx.Done():
		return id, false
	}
}

// Pending returns the ids of confirmations still waiting for an answer.
func (c *Confirmer) Pending() []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(c.pending))
	for id := range c.pending {
		ids = append(ids, id)
	}
	return ids
}

// Resolve delivers the decision for a pending confirmation.
func (c *Confirmer) Resolve(id uuid.UUID, approved bool) error {
	c.mu.Lock()
	ch, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	c.mu.Unlock()

	if !ok {
		return ErrConfirmationPending
	}
	ch <- approved
	return nil
}
