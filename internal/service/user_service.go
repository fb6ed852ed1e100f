package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edupay-api/internal/models"
	appErrors "github.com/noah-isme/edupay-api/pkg/errors"
)

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
}

// UserService exposes back-office user listings.
type UserService struct {
	repo   userRepository
	logger *zap.Logger
}

// NewUserService constructs the user service.
func NewUserService(repo userRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, logger: logger}
}

// List returns all users, newest first.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return users, nil
}
