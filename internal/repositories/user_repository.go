package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	"github.com/google/uuid"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	dbCtx, cancel := WithDBTimeout(ctx)
	defer cancel()

	q, inTx := executor(ctx, r.DB)

	query := `SELECT id, name, email, is_admin, cart, created_at, updated_at
			  FROM users
			  WHERE id = $1`
	if inTx {
		query += ` FOR UPDATE`
	}

	user := &models.User{}

	var cart []byte

	err := q.QueryRowContext(dbCtx, query, id).Scan(&user.ID, &user.Name, &user.Email, &user.IsAdmin, &cart, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}

	user.Cart = models.NewCart()
	if len(cart) > 0 {
		if err := json.Unmarshal(cart, &user.Cart); err != nil {
			return nil, fmt.Errorf("decoding cart: %w", err)
		}
	}

	return user, nil
}

func (r *userRepository) UpdateCart(ctx context.Context, id string, cart models.Cart) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	dbCtx, cancel := WithDBTimeout(ctx)
	defer cancel()

	q, _ := executor(ctx, r.DB)

	if cart.Items == nil {
		cart.Items = map[string]int{}
	}

	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}

	result, err := q.ExecContext(dbCtx, `UPDATE users SET cart = $1, updated_at = NOW() WHERE id = $2`, payload, id)
	if err != nil {
		return fmt.Errorf("updating cart: %w", err)
	}

	return requireAffected(result)
}
