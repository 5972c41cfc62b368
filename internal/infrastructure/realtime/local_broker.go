package realtime

import (
	"context"
	"sync"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/internal/domain/repository"
)

// LocalBroker fans out inside one process. It serves the memory store driver
// and deployments without Redis.
type LocalBroker struct {
	mu        sync.Mutex
	listeners map[string]map[chan entity.Notification]struct{}
}

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{listeners: map[string]map[chan entity.Notification]struct{}{}}
}

// Publish never blocks; a full listener misses the event.
func (b *LocalBroker) Publish(_ context.Context, n *entity.Notification) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.listeners[n.UserID] {
		select {
		case ch <- *n:
		default:
		}
	}
	return nil
}

func (b *LocalBroker) Subscribe(ctx context.Context, userID string) (<-chan entity.Notification, error) {
	ch := make(chan entity.Notification, subscriberBuffer)

	b.mu.Lock()
	if b.listeners[userID] == nil {
		b.listeners[userID] = map[chan entity.Notification]struct{}{}
	}
	b.listeners[userID][ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners[userID], ch)
		if len(b.listeners[userID]) == 0 {
			delete(b.listeners, userID)
		}
		close(ch)
	}()
	return ch, nil
}

var _ repository.NotificationBroker = (*LocalBroker)(nil)
