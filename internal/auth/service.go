package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// PermissionResolver yields the effective permission list for a user.
type PermissionResolver interface {
	EffectivePermissions(ctx context.Context, userID int64) ([]string, error)
}

// Service wraps authentication business rules.
type Service struct {
	repo        Repo
	permissions PermissionResolver
}

// Repo is the subset of Repository the service uses.
type Repo interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error
	DeleteSession(ctx context.Context, id string) error
}

// NewService constructs a new Service.
func NewService(repo Repo, permissions PermissionResolver) *Service {
	return &Service{repo: repo, permissions: permissions}
}

// Authenticate validates email/password credentials and resolves the
// permission set that gets cached in the session.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, []string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, shared.ErrInvalidCredentials
	}
	perms, err := s.permissions.EffectivePermissions(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, perms, nil
}

// RegisterSession persists the session metadata in postgres.
func (s *Service) RegisterSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	return s.repo.CreateSession(ctx, id, userID, expiresAt, ip, ua)
}

// RemoveSession deletes a session record from postgres.
func (s *Service) RemoveSession(ctx context.Context, id string) error {
	return s.repo.DeleteSession(ctx, id)
}
