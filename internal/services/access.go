package service

import (
	"context"
	"errors"

	appErrors "github.com/aaravmahajanofficial/catalog-cart-service/internal/errors"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	repository "github.com/aaravmahajanofficial/catalog-cart-service/internal/repositories"
)

// AccessService turns a requester id into the capability handed to
// operations that need an authorization decision.
type AccessService interface {
	Principal(ctx context.Context, userID string) (models.Principal, error)
}

type accessService struct {
	users repository.UserRepository
}

func NewAccessService(users repository.UserRepository) AccessService {
	return &accessService{users: users}
}

func (s *accessService) Principal(ctx context.Context, userID string) (models.Principal, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return models.Principal{}, userLookupError(err)
	}

	return models.Principal{UserID: user.ID, IsAdmin: user.IsAdmin}, nil
}

func userLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.NotFoundError("User not found").WithError(err)
	}

	return appErrors.DatabaseError("Failed to fetch user").WithError(err)
}
