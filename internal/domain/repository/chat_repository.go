package repository

import (
	"context"

	"github.com/oksasatya/medico-api/internal/domain/entity"
)

type ChatRepository interface {
	ListConversations(ctx context.Context, userID string) ([]entity.Conversation, error)
	// ListMessages returns ErrNotFound unless userID participates in the conversation.
	ListMessages(ctx context.Context, conversationID, userID string) ([]entity.Message, error)
	// SendMessage finds or creates the conversation between sender and receiver,
	// appends the message and bumps the conversation in one transaction.
	SendMessage(ctx context.Context, senderID, receiverID, content string) (*entity.Message, error)
}
