package repository

import (
	"context"

	"github.com/oksasatya/medico-api/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID string) ([]entity.Notification, error)
	// MarkRead sets isRead on a notification owned by userID; repeated calls succeed.
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}
