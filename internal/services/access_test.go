package service_test

import (
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/catalog-cart-service/internal/errors"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	repository "github.com/aaravmahajanofficial/catalog-cart-service/internal/repositories"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/catalog-cart-service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPrincipal(t *testing.T) {
	t.Run("Success - Admin flag is carried over", func(t *testing.T) {
		// Arrange
		users := new(mocks.UserRepository)
		access := service.NewAccessService(users)
		users.On("GetUserByID", mock.Anything, "u1").Return(&models.User{ID: "u1", IsAdmin: true}, nil).Once()

		// Act
		principal, err := access.Principal(t.Context(), "u1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.Principal{UserID: "u1", IsAdmin: true}, principal)
		users.AssertExpectations(t)
	})

	t.Run("Failure - Unknown user", func(t *testing.T) {
		// Arrange
		users := new(mocks.UserRepository)
		access := service.NewAccessService(users)
		users.On("GetUserByID", mock.Anything, "ghost").Return(nil, repository.ErrNotFound).Once()

		// Act
		_, err := access.Principal(t.Context(), "ghost")

		// Assert
		assertAppCode(t, err, appErrors.ErrCodeNotFound)
		assert.Equal(t, "User not found", err.Error())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		users := new(mocks.UserRepository)
		access := service.NewAccessService(users)
		users.On("GetUserByID", mock.Anything, "u1").Return(nil, errors.New("timeout")).Once()

		// Act
		_, err := access.Principal(t.Context(), "u1")

		// Assert
		assertAppCode(t, err, appErrors.ErrCodeDatabaseError)
	})
}
