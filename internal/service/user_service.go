package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/bookhive/bookhive-api/internal/models"
	appErrors "github.com/bookhive/bookhive-api/pkg/errors"
)

type userRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SetApproved(ctx context.Context, id int64) error
	DeleteCascade(ctx context.Context, id int64) error
}

// UserService provides the administrator's account management use cases.
type UserService struct {
	repo   userRepository
	logger *zap.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(repo userRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, logger: logger}
}

// List returns every account, unapproved ones first.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list users")
	}
	return users, nil
}

// Approve marks an account as approved, unlocking login. Approving an already
// approved account is a no-op success.
func (s *UserService) Approve(ctx context.Context, id int64) error {
	if err := s.repo.SetApproved(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to approve user")
	}

	s.logger.Info("account approved", zap.Int64("user_id", id))
	return nil
}

// Delete removes an account and all rows that reference it. Administrators
// cannot delete themselves, and admin or librarian accounts are protected
// from deletion entirely.
func (s *UserService) Delete(ctx context.Context, actor *models.JWTClaims, id int64) error {
	if actor != nil && actor.UserID == id {
		return appErrors.ErrSelfDelete
	}

	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch user")
	}

	if target.Protected() {
		return appErrors.ErrProtectedAccount
	}

	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete user")
	}

	s.logger.Info("account deleted",
		zap.Int64("user_id", id),
		zap.String("username", target.Username))
	return nil
}
