package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/errors"
	"github.com/go-playground/validator/v10"
)

const unexpectedErrorMessage = "An unexpected error occurred"

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, data any) {
	_ = WriteJson(w, statusCode, data)
}

// StatusFor maps err to the status code sent to the client. Every failure is a
// 400 except PermissionDenied (401) and the codes listed in passthrough, which
// keep the status carried by the AppError.
func StatusFor(err error, passthrough ...string) int {
	if errors.HasCode(err, errors.ErrCodePermissionDenied) {
		return http.StatusUnauthorized
	}

	if appErr, ok := errors.IsAppError(err); ok && slices.Contains(passthrough, appErr.Code) {
		return appErr.StatusCode
	}

	return http.StatusBadRequest
}

// Error writes the message of err as a plain text body. Causes wrapped inside an
// AppError are never exposed.
func Error(w http.ResponseWriter, err error, passthrough ...string) {
	message := unexpectedErrorMessage

	if appErr, ok := errors.IsAppError(err); ok {
		message = appErr.Message
		if appErr.Detail != "" {
			message = appErr.Message + ": " + appErr.Detail
		}
	}

	http.Error(w, message, StatusFor(err, passthrough...))
}

// ValidationError reports every failing field in a single plain text body.
func ValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {
	errMsgs := make([]string, 0, len(errs))

	for _, err := range errs {

		var message string

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field %s is required", err.Field())
		case "min":
			message = fmt.Sprintf("Field %s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field %s must be at most %s", err.Field(), err.Param())
		case "gte":
			message = fmt.Sprintf("Field %s must be greater than or equal to %s", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("Field %s must be greater than %s", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("Field %s is invalid: %s=%s", err.Field(), err.Tag(), err.Param())
		}

		errMsgs = append(errMsgs, message)
	}

	Error(w, errors.ValidationError("Validation failed").WithDetail(strings.Join(errMsgs, "; ")))
}
