package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Transactor records the call and then runs fn unless an error was configured.
type Transactor struct {
	mock.Mock
}

func (m *Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

func (m *Transactor) Atomic() bool {
	args := m.Called()
	return args.Bool(0)
}
