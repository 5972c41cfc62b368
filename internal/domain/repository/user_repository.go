package repository

import (
	"context"

	"github.com/oksasatya/medico-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	// ListByRole returns users with role, optionally filtered by a case-insensitive
	// substring of name or email.
	ListByRole(ctx context.Context, role entity.Role, query string) ([]entity.User, error)
}

// DoctorIndex is a full-text directory of doctors.
type DoctorIndex interface {
	Index(ctx context.Context, u *entity.User) error
	Search(ctx context.Context, query string, size int) ([]entity.UserSummary, error)
}
