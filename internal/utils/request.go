package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/api/middleware"
	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes caps every JSON request body.
const MaxBodyBytes = 1 << 20

var (
	errEmptyBody    = errors.New("request body cannot be empty")
	errBodyTooLarge = fmt.Errorf("request body exceeds %d bytes", MaxBodyBytes)
)

func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dest any) error {
	logger := middleware.LoggerFromContext(r.Context())

	if r.Body == nil {
		return errEmptyBody
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn("Request body too large", slog.Int64("limit", tooLarge.Limit))
			return errBodyTooLarge
		}
		logger.Error("Failed to read request body", slog.String("error", err.Error()))
		return fmt.Errorf("failed to read request body: %w", err)
	}

	defer r.Body.Close()

	if len(body) == 0 {
		logger.Warn("Empty request body")
		return errEmptyBody
	}

	if err := json.Unmarshal(body, dest); err != nil {
		logger.Warn("Failed to parse request JSON", slog.String("error", err.Error()))
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}

// ValidateStruct returns the validator.ValidationErrors of data unwrapped, so
// callers can report them field by field.
func ValidateStruct(validate *validator.Validate, data any) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationErrs
	}

	return fmt.Errorf("unexpected validation error: %w", err)
}
