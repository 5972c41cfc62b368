package application

import (
	"context"
	"errors"
	"expvar"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	repo "github.com/oksasatya/medico-api/internal/domain/repository"
	"github.com/oksasatya/medico-api/pkg/apperror"
	"github.com/oksasatya/medico-api/pkg/helpers"
	"github.com/oksasatya/medico-api/pkg/mailer"
	"github.com/oksasatya/medico-api/pkg/mailer/templates"
)

var (
	notificationsSent   = expvar.NewInt("notifications_sent")
	notificationsFailed = expvar.NewInt("notifications_failed")
)

// DispatchTimeout bounds one Notify call including its side channels.
const DispatchTimeout = 5 * time.Second

// EmailPublisher enqueues email jobs for the notification worker.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Brand is rendered into notification emails.
type Brand struct {
	AppName     string
	CompanyName string
	SupportURL  string
}

// Notifier is the dispatch side of NotificationService, as seen by the other services.
type Notifier interface {
	Notify(ctx context.Context, userID string, typ entity.NotificationType, title, message string)
}

type NotificationService struct {
	Repo   repo.NotificationRepository
	Users  repo.UserRepository
	Broker repo.NotificationBroker // optional
	Email  EmailPublisher          // optional
	Brand  Brand
	Logger *logrus.Logger
}

func NewNotificationService(r repo.NotificationRepository, users repo.UserRepository, broker repo.NotificationBroker, email EmailPublisher, brand Brand, logger *logrus.Logger) *NotificationService {
	return &NotificationService{Repo: r, Users: users, Broker: broker, Email: email, Brand: brand, Logger: logger}
}

// Notify records one notification for userID and fans it out to live
// listeners and email. It never returns an error: a failed insert is logged
// and counted, and the caller's operation stands.
func (s *NotificationService) Notify(ctx context.Context, userID string, typ entity.NotificationType, title, message string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DispatchTimeout)
	defer cancel()

	fields := logrus.Fields{"user_id": userID, "type": string(typ)}

	n := &entity.Notification{UserID: userID, Type: typ, Title: title, Message: message}
	if err := s.Repo.Create(ctx, n); err != nil {
		notificationsFailed.Add(1)
		helpers.LogError(s.Logger, "notification insert failed", err, fields)
		return
	}
	notificationsSent.Add(1)

	if s.Broker != nil {
		if err := s.Broker.Publish(ctx, n); err != nil {
			helpers.LogError(s.Logger, "notification publish failed", err, fields)
		}
	}

	if s.Email != nil {
		s.enqueueEmail(ctx, n, fields)
	}
}

func (s *NotificationService) enqueueEmail(ctx context.Context, n *entity.Notification, fields logrus.Fields) {
	u, err := s.Users.GetByID(ctx, n.UserID)
	if err != nil {
		helpers.LogError(s.Logger, "notification email recipient lookup failed", err, fields)
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: templates.Notification,
		Data: templates.NewNotificationData(u.Name, u.Email, string(n.Type), n.Title, n.Message,
			templates.WithTime(n.CreatedAt),
			templates.WithBrand(s.Brand.AppName, s.Brand.CompanyName, s.Brand.SupportURL),
		),
	}
	if err := s.Email.PublishJSON(ctx, job); err != nil {
		helpers.LogError(s.Logger, "notification email enqueue failed", err, fields)
	}
}

func (s *NotificationService) List(ctx context.Context, actor *entity.User) ([]entity.Notification, error) {
	list, err := s.Repo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Store("Failed to fetch notifications", err)
	}
	return list, nil
}

// MarkRead is idempotent for the owner; anyone else gets NotFound.
func (s *NotificationService) MarkRead(ctx context.Context, actor *entity.User, id string) error {
	if err := s.Repo.MarkRead(ctx, id, actor.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperror.NotFound("Notification not found")
		}
		return apperror.Store("Failed to update notification", err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, actor *entity.User) (int64, error) {
	n, err := s.Repo.MarkAllRead(ctx, actor.ID)
	if err != nil {
		return 0, apperror.Store("Failed to update notifications", err)
	}
	return n, nil
}

// Stream opens a live feed of the actor's notifications; it ends with ctx.
func (s *NotificationService) Stream(ctx context.Context, actor *entity.User) (<-chan entity.Notification, error) {
	if s.Broker == nil {
		return nil, apperror.Unavailable("Live notifications are not available")
	}
	ch, err := s.Broker.Subscribe(ctx, actor.ID)
	if err != nil {
		helpers.LogError(s.Logger, "notification stream subscribe failed", err, logrus.Fields{"user_id": actor.ID})
		return nil, apperror.Unavailable("Live notifications are not available")
	}
	return ch, nil
}

var _ Notifier = (*NotificationService)(nil)
