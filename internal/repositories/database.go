package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

// Postgres bundles the relational implementations of the repositories.
type Postgres struct {
	DB         *sql.DB
	Product    ProductRepository
	User       UserRepository
	Transactor Transactor
}

func NewPostgres(cfg *config.Database) (*Postgres, error) {
	db, err := otelsql.Open("postgres", cfg.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return NewPostgresFromDB(db), nil
}

func NewPostgresFromDB(db *sql.DB) *Postgres {
	return &Postgres{
		DB:         db,
		Product:    NewProductRepo(db),
		User:       NewUserRepo(db),
		Transactor: NewSQLTransactor(db),
	}
}

func (p *Postgres) Close() error {
	return p.DB.Close()
}
