// internal/notify/notify.go
package notify

import (
	"sync"

	"careerpilot/internal/models"

	"github.com/google/uuid"
)

// Center queues ephemeral toast notifications until a client drains them.
type Center struct {
	mu      sync.Mutex
	pending []models.Notification
}

func NewCenter() *Center {
	return &Center{}
}

// Push appends a notification to the pending queue.
func (c *Center) Push(message string, kind models.NotificationType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, models.Notification{
		ID:      uuid.New().String(),
		Message: message,
		Type:    kind,
	})
}

// Drain returns all pending notifications and empties the queue.
func (c *Center) Drain() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.pending
	c.pending = nil
	if out == nil {
		out = []models.Notification{}
	}
	return out
}

// Pending returns the current queue depth.
func (c *Center) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
