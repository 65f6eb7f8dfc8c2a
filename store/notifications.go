package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/foodbridge/donation-app/models"
)

// NotificationCenter owns the ordered collection of notification
// records. Records are appended oldest-first and listed newest-first.
// Retention is unbounded unless maxRetained is set, in which case the
// oldest records are trimmed on append.
type NotificationCenter struct {
	mu          sync.RWMutex
	items       []models.Notification
	maxRetained int
}

func NewNotificationCenter(maxRetained int) *NotificationCenter {
	return &NotificationCenter{maxRetained: maxRetained}
}

// Add appends a notification, filling in the id and creation time when
// absent, and returns the stored record.
func (nc *NotificationCenter) Add(n models.Notification) models.Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	nc.mu.Lock()
	defer nc.mu.Unlock()

	nc.items = append(nc.items, n)
	if nc.maxRetained > 0 && len(nc.items) > nc.maxRetained {
		overflow := len(nc.items) - nc.maxRetained
		nc.items = append(nc.items[:0:0], nc.items[overflow:]...)
	}
	return n
}

// List returns every notification, most recent first.
func (nc *NotificationCenter) List() []models.Notification {
	nc.mu.RLock()
	defer nc.mu.RUnlock()

	out := make([]models.Notification, 0, len(nc.items))
	for i := len(nc.items) - 1; i >= 0; i-- {
		out = append(out, nc.items[i])
	}
	return out
}

// ListFor returns the notifications targeted at userID plus broadcasts,
// most recent first.
func (nc *NotificationCenter) ListFor(userID string) []models.Notification {
	nc.mu.RLock()
	defer nc.mu.RUnlock()

	var out []models.Notification
	for i := len(nc.items) - 1; i >= 0; i-- {
		n := nc.items[i]
		if n.UserID == userID || n.UserID == models.BroadcastUser {
			out = append(out, n)
		}
	}
	return out
}

// MarkRead flags a notification as read. Unknown ids and already-read
// records are a no-op.
func (nc *NotificationCenter) MarkRead(id string) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	for i := range nc.items {
		if nc.items[i].ID == id {
			nc.items[i].Read = true
			return
		}
	}
}

// Remove dismisses a notification. Idempotent; unknown ids are a no-op.
func (nc *NotificationCenter) Remove(id string) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	for i := range nc.items {
		if nc.items[i].ID == id {
			nc.items = append(nc.items[:i], nc.items[i+1:]...)
			return
		}
	}
}

// UnreadCount returns the number of unread notifications across all
// users.
func (nc *NotificationCenter) UnreadCount() int {
	nc.mu.RLock()
	defer nc.mu.RUnlock()

	count := 0
	for i := range nc.items {
		if !nc.items[i].Read {
			count++
		}
	}
	return count
}

// UnreadCountFor returns the unread count visible to userID, broadcasts
// included. This drives the badge in the collaborating UI.
func (nc *NotificationCenter) UnreadCountFor(userID string) int {
	nc.mu.RLock()
	defer nc.mu.RUnlock()

	count := 0
	for i := range nc.items {
		n := nc.items[i]
		if !n.Read && (n.UserID == userID || n.UserID == models.BroadcastUser) {
			count++
		}
	}
	return count
}
