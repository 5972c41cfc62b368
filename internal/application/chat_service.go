package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	repo "github.com/oksasatya/medico-api/internal/domain/repository"
	"github.com/oksasatya/medico-api/pkg/apperror"
)

type ChatService struct {
	Repo     repo.ChatRepository
	Users    repo.UserRepository
	Notifier Notifier
	Logger   *logrus.Logger
}

func NewChatService(r repo.ChatRepository, users repo.UserRepository, notifier Notifier, logger *logrus.Logger) *ChatService {
	return &ChatService{Repo: r, Users: users, Notifier: notifier, Logger: logger}
}

func (s *ChatService) Conversations(ctx context.Context, actor *entity.User) ([]entity.Conversation, error) {
	list, err := s.Repo.ListConversations(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Store("Failed to fetch conversations", err)
	}
	return list, nil
}

func (s *ChatService) Messages(ctx context.Context, actor *entity.User, conversationID string) ([]entity.Message, error) {
	list, err := s.Repo.ListMessages(ctx, conversationID, actor.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound("Conversation not found")
		}
		return nil, apperror.Store("Failed to fetch messages", err)
	}
	return list, nil
}

// Send delivers content to receiverID, opening their conversation on first contact.
func (s *ChatService) Send(ctx context.Context, actor *entity.User, receiverID, content string) (*entity.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperror.Validation("Message content is required")
	}
	if receiverID == actor.ID {
		return nil, apperror.Validation("Cannot send a message to yourself")
	}

	if _, err := s.Users.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound("Receiver not found")
		}
		return nil, apperror.Store("Failed to send message", err)
	}

	m, err := s.Repo.SendMessage(ctx, actor.ID, receiverID, content)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound("Receiver not found")
		}
		return nil, apperror.Store("Failed to send message", err)
	}

	s.Notifier.Notify(ctx, receiverID, entity.NotificationChat,
		"New Message",
		"You have a new message from "+actor.Name)

	return m, nil
}
