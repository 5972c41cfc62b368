// Package memory is a process-local implementation of the repository
// interfaces. It backs STORE_DRIVER=memory and the package tests.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/medico-api/internal/domain/entity"
)

// Store holds every table behind one lock so multi-table writes stay atomic.
type Store struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	users         map[string]*entity.User
	appointments  map[string]*row[entity.Appointment]
	prescriptions map[string]*row[entity.Prescription]
	medicines     map[string]*row[entity.Medicine]
	conversations map[string]*conversation
	messages      []*row[entity.Message]
	notifications map[string]*row[entity.Notification]
}

// row remembers insertion order, which breaks ties between equal timestamps.
type row[T any] struct {
	seq int64
	val T
}

type conversation struct {
	seq          int64
	touched      int64
	id           string
	participants []string
	lastMessage  *string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewStore() *Store {
	return &Store{
		now:           time.Now,
		users:         map[string]*entity.User{},
		appointments:  map[string]*row[entity.Appointment]{},
		prescriptions: map[string]*row[entity.Prescription]{},
		medicines:     map[string]*row[entity.Medicine]{},
		conversations: map[string]*conversation{},
		notifications: map[string]*row[entity.Notification]{},
	}
}

// Ping satisfies the health check.
func (s *Store) Ping() error { return nil }

// next must be called with mu held for writing.
func (s *Store) next() (string, int64, time.Time) {
	s.seq++
	return uuid.NewString(), s.seq, s.now().UTC()
}

func (s *Store) summary(id string) *entity.UserSummary {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	sum := u.Summary()
	return &sum
}

func (s *Store) Users() *UserRepository                 { return &UserRepository{s: s} }
func (s *Store) Appointments() *AppointmentRepository   { return &AppointmentRepository{s: s} }
func (s *Store) Prescriptions() *PrescriptionRepository { return &PrescriptionRepository{s: s} }
func (s *Store) Chat() *ChatRepository                  { return &ChatRepository{s: s} }
func (s *Store) Notifications() *NotificationRepository { return &NotificationRepository{s: s} }
