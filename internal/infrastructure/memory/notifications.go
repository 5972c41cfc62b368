package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/internal/domain/repository"
)

type NotificationRepository struct {
	s *Store
}

func (r *NotificationRepository) Create(_ context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[n.UserID]; !ok {
		return repository.ErrNotFound
	}
	id, seq, now := r.s.next()
	n.ID, n.IsRead, n.CreatedAt = id, false, now
	r.s.notifications[id] = &row[entity.Notification]{seq: seq, val: *n}
	return nil
}

func (r *NotificationRepository) ListByUser(_ context.Context, userID string) ([]entity.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	recs := []*row[entity.Notification]{}
	for _, rec := range r.s.notifications {
		if rec.val.UserID == userID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })

	out := make([]entity.Notification, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.val)
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.notifications[id]
	if !ok || rec.val.UserID != userID {
		return repository.ErrNotFound
	}
	rec.val.IsRead = true
	return nil
}

func (r *NotificationRepository) MarkAllRead(_ context.Context, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, rec := range r.s.notifications {
		if rec.val.UserID == userID && !rec.val.IsRead {
			rec.val.IsRead = true
			n++
		}
	}
	return n, nil
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)
