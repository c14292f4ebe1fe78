package mongodb

import (
	"context"
	"fmt"

	repository "github.com/aaravmahajanofficial/catalog-cart-service/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

type sessionTransactor struct {
	client  *mongo.Client
	enabled bool
}

// NewSessionTransactor returns a Transactor backed by client sessions. When
// enabled is false, fn runs without a transaction and Atomic reports false.
func NewSessionTransactor(client *mongo.Client, enabled bool) repository.Transactor {
	return &sessionTransactor{client: client, enabled: enabled}
}

func (t *sessionTransactor) Atomic() bool {
	return t.enabled
}

func (t *sessionTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	// WithTransaction retries fn on transient errors such as write conflicts
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})

	return err
}
