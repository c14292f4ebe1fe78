package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const productColumns = `id, name, description, price, category, pictures, stocks, created_at, updated_at`

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}

	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Category,
		pq.Array(&product.Pictures), &product.Stocks, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if product.Pictures == nil {
		product.Pictures = []string{}
	}

	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := WithDBTimeout(ctx)
	defer cancel()

	q, _ := executor(ctx, r.DB)

	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	if product.Pictures == nil {
		product.Pictures = []string{}
	}

	query := `INSERT INTO products (id, name, description, price, category, pictures, stocks)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING created_at, updated_at`

	err := q.QueryRowContext(dbCtx, query, product.ID, product.Name, product.Description, product.Price,
		product.Category, pq.Array(product.Pictures), product.Stocks).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	dbCtx, cancel := WithDBTimeout(ctx)
	defer cancel()

	q, inTx := executor(ctx, r.DB)

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if inTx {
		query += ` FOR UPDATE`
	}

	product, err := scanProduct(q.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying product: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, id string, patch *models.ProductPatch) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	dbCtx, cancel := WithDBTimeout(ctx)
	defer cancel()

	q, _ := executor(ctx, r.DB)

	var (
		sets []string
		args []any
	)

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.Pictures != nil {
		set("pictures", pq.Array(*patch.Pictures))
	}
	if patch.Stocks != nil {
		set("stocks", *patch.Stocks)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	result, err := q.ExecContext(dbCtx, query, args...)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	return requireAffected(result)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	dbCtx, cancel := WithDBTimeout(ctx)
	defer cancel()

	q, _ := executor(ctx, r.DB)

	result, err := q.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	return requireAffected(result)
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id DESC`

	return r.queryProducts(ctx, query)
}

func (r *productRepository) ListByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY created_at DESC, id DESC`

	return r.queryProducts(ctx, query, category)
}

func (r *productRepository) ListSimilar(ctx context.Context, category, excludeID string, limit int) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 AND id::text <> $2 ORDER BY created_at DESC, id DESC LIMIT $3`

	return r.queryProducts(ctx, query, category, excludeID, limit)
}

func (r *productRepository) SearchProducts(ctx context.Context, key string) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
			  WHERE name ILIKE $1 OR description ILIKE $1 OR category ILIKE $1
			  ORDER BY created_at DESC, id DESC`

	return r.queryProducts(ctx, query, "%"+escapeLike(key)+"%")
}

func (r *productRepository) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, ErrNotFound
	}

	dbCtx, cancel := WithDBTimeout(ctx)
	defer cancel()

	q, _ := executor(ctx, r.DB)

	query := `UPDATE products SET stocks = stocks + $1, updated_at = NOW()
			  WHERE id = $2 AND stocks + $1 >= 0
			  RETURNING stocks`

	var stocks int

	err := q.QueryRowContext(dbCtx, query, delta, id).Scan(&stocks)
	if err == nil {
		return stocks, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("adjusting stock: %w", err)
	}

	var exists bool
	if err := q.QueryRowContext(dbCtx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("checking product: %w", err)
	}

	if !exists {
		return 0, ErrNotFound
	}

	return 0, ErrStockConflict
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	dbCtx, cancel := WithDBTimeout(ctx)
	defer cancel()

	q, _ := executor(ctx, r.DB)

	rows, err := q.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// escapeLike makes key match literally inside a LIKE pattern.
func escapeLike(key string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(key)
}
