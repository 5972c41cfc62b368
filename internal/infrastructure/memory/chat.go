package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/internal/domain/repository"
)

type ChatRepository struct {
	s *Store
}

func (c *conversation) has(userID string) bool {
	for _, p := range c.participants {
		if p == userID {
			return true
		}
	}
	return false
}

func (r *ChatRepository) ListConversations(_ context.Context, userID string) ([]entity.Conversation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	mine := []*conversation{}
	for _, c := range r.s.conversations {
		if c.has(userID) {
			mine = append(mine, c)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].touched > mine[j].touched })

	out := make([]entity.Conversation, 0, len(mine))
	for _, c := range mine {
		conv := entity.Conversation{
			ID:           c.id,
			Participants: []entity.UserSummary{},
			LastMessage:  c.lastMessage,
			CreatedAt:    c.createdAt,
			UpdatedAt:    c.updatedAt,
		}
		for _, pid := range c.participants {
			if sum := r.s.summary(pid); sum != nil {
				conv.Participants = append(conv.Participants, *sum)
			}
		}
		sort.Slice(conv.Participants, func(i, j int) bool {
			return conv.Participants[i].Name < conv.Participants[j].Name
		})
		out = append(out, conv)
	}
	return out, nil
}

func (r *ChatRepository) ListMessages(_ context.Context, conversationID, userID string) ([]entity.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.conversations[conversationID]
	if !ok || !c.has(userID) {
		return nil, repository.ErrNotFound
	}

	out := []entity.Message{}
	for _, m := range r.s.messages {
		if m.val.ConversationID == conversationID {
			msg := m.val
			msg.Sender = r.s.summary(msg.SenderID)
			out = append(out, msg)
		}
	}
	return out, nil
}

func (r *ChatRepository) SendMessage(_ context.Context, senderID, receiverID, content string) (*entity.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[senderID]; !ok {
		return nil, repository.ErrNotFound
	}
	if _, ok := r.s.users[receiverID]; !ok {
		return nil, repository.ErrNotFound
	}

	var conv *conversation
	for _, c := range r.s.conversations {
		if c.has(senderID) && c.has(receiverID) {
			conv = c
			break
		}
	}
	if conv == nil {
		id, seq, now := r.s.next()
		conv = &conversation{
			seq:          seq,
			id:           id,
			participants: []string{senderID, receiverID},
			createdAt:    now,
		}
		r.s.conversations[id] = conv
	}

	id, seq, now := r.s.next()
	msg := entity.Message{ID: id, ConversationID: conv.id, SenderID: senderID, Content: content, CreatedAt: now}
	r.s.messages = append(r.s.messages, &row[entity.Message]{seq: seq, val: msg})

	last := content
	conv.lastMessage = &last
	conv.updatedAt = now
	conv.touched = seq

	msg.Sender = r.s.summary(senderID)
	return &msg, nil
}

var _ repository.ChatRepository = (*ChatRepository)(nil)
