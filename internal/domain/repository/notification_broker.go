package repository

import (
	"context"

	"github.com/oksasatya/medico-api/internal/domain/entity"
)

// NotificationBroker fans dispatched notifications out to live listeners.
// Delivery is best-effort: listeners that are not connected miss the event.
type NotificationBroker interface {
	Publish(ctx context.Context, n *entity.Notification) error
	// Subscribe streams the user's notifications until ctx is done,
	// then closes the returned channel.
	Subscribe(ctx context.Context, userID string) (<-chan entity.Notification, error)
}
