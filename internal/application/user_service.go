package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	repo "github.com/oksasatya/medico-api/internal/domain/repository"
	"github.com/oksasatya/medico-api/pkg/apperror"
	"github.com/oksasatya/medico-api/pkg/helpers"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgEmailRegistered    = "Email already registered"
	msgEmailInUse         = "Email already in use"
	msgUserNotFound       = "User not found"
)

// AvatarStorage stores uploaded profile pictures and returns their public URL.
type AvatarStorage interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type UserService struct {
	Repo    repo.UserRepository
	JWT     *helpers.JWTManager
	Avatars AvatarStorage    // optional
	Doctors repo.DoctorIndex // optional
	Logger  *logrus.Logger
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, avatars AvatarStorage, doctors repo.DoctorIndex, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, JWT: jwt, Avatars: avatars, Doctors: doctors, Logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if !in.Role.Valid() {
		return nil, apperror.Validation("Invalid role")
	}
	email := normalizeEmail(in.Email)

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, apperror.Validation(msgEmailRegistered)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.Store("Failed to register user", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Store("Failed to register user", err)
	}

	u := &entity.User{Name: strings.TrimSpace(in.Name), Email: email, PasswordHash: hash, Role: in.Role}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Validation(msgEmailRegistered)
		}
		return nil, apperror.Store("Failed to register user", err)
	}

	s.indexDoctor(ctx, u)
	return u, nil
}

type LoginResult struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	User      entity.UserSummary `json:"user"`
}

// Login gives the same answer for an unknown email and a wrong password.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.Unauthenticated(msgInvalidCredentials)
		}
		return nil, apperror.Store("Failed to login", err)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, apperror.Unauthenticated(msgInvalidCredentials)
	}

	token, exp, err := s.JWT.Issue(u.ID)
	if err != nil {
		return nil, apperror.Store("Failed to login", err)
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Debug("user logged in")
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: u.Summary()}, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		return nil, apperror.Store("Failed to fetch profile", err)
	}
	return u, nil
}

// UpdateProfileInput carries the optional profile fields; nil leaves a field unchanged.
// The role is deliberately absent.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

func (s *UserService) UpdateProfile(ctx context.Context, actor *entity.User, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.GetProfile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != u.Email {
			if other, err := s.Repo.GetByEmail(ctx, email); err == nil && other.ID != u.ID {
				return nil, apperror.Validation(msgEmailInUse)
			} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
				return nil, apperror.Store("Failed to update profile", err)
			}
			u.Email = email
		}
	}
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, apperror.Store("Failed to update profile", err)
		}
		u.PasswordHash = hash
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Validation(msgEmailInUse)
		}
		return nil, apperror.Store("Failed to update profile", err)
	}

	s.indexDoctor(ctx, u)
	return u, nil
}

// UploadAvatar stores the image and points the profile at it.
func (s *UserService) UploadAvatar(ctx context.Context, actor *entity.User, r io.Reader, filename, contentType string) (*entity.User, error) {
	if s.Avatars == nil {
		return nil, apperror.Unavailable("Avatar storage is not configured")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperror.Validation("Avatar must be an image")
	}

	u, err := s.GetProfile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	url, err := s.Avatars.Upload(ctx, helpers.AvatarObjectPath(u.ID, filename), contentType, r)
	if err != nil {
		return nil, apperror.Store("Failed to upload avatar", err)
	}
	u.ImageURL = &url
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, apperror.Store("Failed to update profile", err)
	}

	s.indexDoctor(ctx, u)
	return u, nil
}

// ListDoctors returns every doctor, or a search over name and email when q is set.
// The directory index answers searches when available; the store is the fallback.
func (s *UserService) ListDoctors(ctx context.Context, q string) ([]entity.UserSummary, error) {
	q = strings.TrimSpace(q)
	if q != "" && s.Doctors != nil {
		found, err := s.Doctors.Search(ctx, q, 20)
		if err == nil {
			return found, nil
		}
		helpers.LogError(s.Logger, "doctor search failed, falling back to store", err, logrus.Fields{"q": q})
	}

	users, err := s.Repo.ListByRole(ctx, entity.RoleDoctor, q)
	if err != nil {
		return nil, apperror.Store("Failed to fetch doctors", err)
	}
	out := make([]entity.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return out, nil
}

func (s *UserService) indexDoctor(ctx context.Context, u *entity.User) {
	if s.Doctors == nil || u.Role != entity.RoleDoctor {
		return
	}
	if err := s.Doctors.Index(ctx, u); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
	}
}
