package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appErrors "github.com/aaravmahajanofficial/catalog-cart-service/internal/errors"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/utils/response"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		passthrough []string
		want        int
	}{
		{"permission denied", appErrors.PermissionDeniedError("no"), nil, http.StatusUnauthorized},
		{"wrapped permission denied", fmt.Errorf("delete: %w", appErrors.PermissionDeniedError("no")), nil, http.StatusUnauthorized},
		{"not found defaults to 400", appErrors.NotFoundError("missing"), nil, http.StatusBadRequest},
		{"not found passed through", appErrors.NotFoundError("missing"), []string{appErrors.ErrCodeNotFound}, http.StatusNotFound},
		{"database error", appErrors.DatabaseError("db"), nil, http.StatusBadRequest},
		{"plain error", errors.New("boom"), nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, response.StatusFor(tt.err, tt.passthrough...))
		})
	}
}

func TestError(t *testing.T) {
	t.Run("Success - Message and detail as plain text", func(t *testing.T) {
		rr := httptest.NewRecorder()

		response.Error(rr, appErrors.ValidationError("Validation failed").WithDetail("Field Name is required"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
		assert.Equal(t, "Validation failed: Field Name is required", strings.TrimSpace(rr.Body.String()))
	})

	t.Run("Success - Wrapped cause is hidden", func(t *testing.T) {
		rr := httptest.NewRecorder()

		response.Error(rr, appErrors.DatabaseError("Failed to fetch products").WithError(errors.New("connection refused")))

		assert.Equal(t, "Failed to fetch products", strings.TrimSpace(rr.Body.String()))
	})

	t.Run("Success - Unknown errors get a generic message", func(t *testing.T) {
		rr := httptest.NewRecorder()

		response.Error(rr, errors.New("pq: relation does not exist"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "An unexpected error occurred", strings.TrimSpace(rr.Body.String()))
	})
}

func TestSuccessEncodesJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	response.Success(rr, http.StatusCreated, []string{})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
}
