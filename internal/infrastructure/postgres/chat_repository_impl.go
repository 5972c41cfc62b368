package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/internal/domain/repository"
)

type ChatRepository struct {
	pool *pgxpool.Pool
}

func NewChatRepository(pool *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{pool: pool}
}

func (r *ChatRepository) ListConversations(ctx context.Context, userID string) ([]entity.Conversation, error) {
	if err := checkIDs(userID); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.last_message, c.created_at, c.updated_at
		FROM conversations c
		JOIN conversation_participants me ON me.conversation_id = c.id AND me.user_id = $1
		ORDER BY c.updated_at DESC
	`, userID)
	if err != nil {
		return nil, mapErr(err)
	}

	out := []entity.Conversation{}
	index := map[string]int{}
	ids := []string{}
	for rows.Next() {
		c := entity.Conversation{Participants: []entity.UserSummary{}}
		if err := rows.Scan(&c.ID, &c.LastMessage, &c.CreatedAt, &c.UpdatedAt); err != nil {
			rows.Close()
			return nil, mapErr(err)
		}
		index[c.ID] = len(out)
		ids = append(ids, c.ID)
		out = append(out, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	if len(ids) == 0 {
		return out, nil
	}

	prow, err := r.pool.Query(ctx, `
		SELECT cp.conversation_id, u.id, u.name, u.email, u.role, u.image_url
		FROM conversation_participants cp
		JOIN users u ON u.id = cp.user_id
		WHERE cp.conversation_id = ANY($1::uuid[])
		ORDER BY u.name
	`, ids)
	if err != nil {
		return nil, mapErr(err)
	}
	defer prow.Close()

	for prow.Next() {
		var convID string
		var u entity.UserSummary
		if err := prow.Scan(&convID, &u.ID, &u.Name, &u.Email, &u.Role, &u.ImageURL); err != nil {
			return nil, mapErr(err)
		}
		if i, ok := index[convID]; ok {
			out[i].Participants = append(out[i].Participants, u)
		}
	}
	return out, prow.Err()
}

func (r *ChatRepository) ListMessages(ctx context.Context, conversationID, userID string) ([]entity.Message, error) {
	if err := checkIDs(conversationID, userID); err != nil {
		return nil, err
	}

	var member bool
	if err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM conversation_participants WHERE conversation_id = $1 AND user_id = $2
		)
	`, conversationID, userID).Scan(&member); err != nil {
		return nil, mapErr(err)
	}
	if !member {
		return nil, repository.ErrNotFound
	}

	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.conversation_id, m.sender_id, m.content, m.created_at,
		       u.id, u.name, u.email, u.role, u.image_url
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.conversation_id = $1
		ORDER BY m.created_at, m.id
	`, conversationID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []entity.Message{}
	for rows.Next() {
		var m entity.Message
		s := &entity.UserSummary{}
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.CreatedAt,
			&s.ID, &s.Name, &s.Email, &s.Role, &s.ImageURL); err != nil {
			return nil, mapErr(err)
		}
		m.Sender = s
		out = append(out, m)
	}
	return out, rows.Err()
}

// SendMessage serializes concurrent first messages of the same pair with a
// transaction-scoped advisory lock so the pair never ends up with two conversations.
func (r *ChatRepository) SendMessage(ctx context.Context, senderID, receiverID, content string) (*entity.Message, error) {
	if err := checkIDs(senderID, receiverID); err != nil {
		return nil, err
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lo, hi := senderID, receiverID
	if hi < lo {
		lo, hi = hi, lo
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lo+":"+hi); err != nil {
		return nil, mapErr(err)
	}

	convID, err := findConversation(ctx, tx, senderID, receiverID)
	if errors.Is(err, repository.ErrNotFound) {
		convID, err = createConversation(ctx, tx, senderID, receiverID)
	}
	if err != nil {
		return nil, err
	}

	m := &entity.Message{ConversationID: convID, SenderID: senderID, Content: content}
	if err := tx.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, convID, senderID, content).Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, mapErr(err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE conversations SET last_message = $1, updated_at = now() WHERE id = $2
	`, content, convID); err != nil {
		return nil, mapErr(err)
	}

	s := &entity.UserSummary{}
	if err := tx.QueryRow(ctx, `
		SELECT id, name, email, role, image_url FROM users WHERE id = $1
	`, senderID).Scan(&s.ID, &s.Name, &s.Email, &s.Role, &s.ImageURL); err != nil {
		return nil, mapErr(err)
	}
	m.Sender = s

	if err := tx.Commit(ctx); err != nil {
		return nil, mapErr(err)
	}
	return m, nil
}

func findConversation(ctx context.Context, tx pgx.Tx, a, b string) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		SELECT a.conversation_id
		FROM conversation_participants a
		JOIN conversation_participants b ON b.conversation_id = a.conversation_id
		WHERE a.user_id = $1 AND b.user_id = $2
		LIMIT 1
	`, a, b).Scan(&id)
	return id, mapErr(err)
}

func createConversation(ctx context.Context, tx pgx.Tx, a, b string) (string, error) {
	var id string
	if err := tx.QueryRow(ctx, `INSERT INTO conversations DEFAULT VALUES RETURNING id`).Scan(&id); err != nil {
		return "", mapErr(err)
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO conversation_participants (conversation_id, user_id) VALUES ($1, $2), ($1, $3)
	`, id, a, b); err != nil {
		return "", mapErr(err)
	}
	return id, nil
}

var _ repository.ChatRepository = (*ChatRepository)(nil)
