package hostbridge

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/OpenNSW/formflow/internal/metrics"
	"github.com/OpenNSW/formflow/internal/notify"
)

// Entry is a notification waiting to be picked up by the host page.
type Entry struct {
	ID string `json:"id"`
	notify.Notification
	CreatedAt time.Time `json:"createdAt"`
}

// Inbox is a bounded FIFO of global notifications. It implements notify.Notifier.
// When full, the oldest entry is dropped to make room.
type Inbox struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
}

func NewInbox(capacity int) *Inbox {
	if capacity <= 0 {
		capacity = 1
	}
	return &Inbox{capacity: capacity}
}

func (i *Inbox) AddGlobalNotification(ctx context.Context, n notify.Notification) (string, error) {
	entry := Entry{
		ID:           uuid.NewString(),
		Notification: n,
		CreatedAt:    time.Now().UTC(),
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if len(i.entries) >= i.capacity {
		dropped := i.entries[0]
		i.entries = i.entries[1:]
		metrics.InboxDroppedTotal.Inc()
		slog.WarnContext(ctx, "notification inbox full, dropping oldest",
			"notificationID", dropped.ID,
			"capacity", i.capacity)
	}
	i.entries = append(i.entries, entry)
	return entry.ID, nil
}

// Drain removes and returns every pending entry, oldest first.
func (i *Inbox) Drain() []Entry {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := i.entries
	i.entries = nil
	if out == nil {
		return []Entry{}
	}
	return out
}

func (i *Inbox) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.entries)
}
