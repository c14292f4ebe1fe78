package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/api/middleware"
)

// CreateTestRequest builds a request carrying path values and a discarding
// request logger, as the router and logging middleware would.
func CreateTestRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return req.WithContext(middleware.WithLogger(req.Context(), logger))
}

// JSONBody encodes v for use as a request body.
func JSONBody(t *testing.T, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}

	return bytes.NewReader(data)
}

// DiscardLoggerContext returns a context carrying a logger that drops output.
func DiscardLoggerContext(ctx context.Context) context.Context {
	return middleware.WithLogger(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
