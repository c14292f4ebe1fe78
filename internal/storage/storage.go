package storage

import (
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/config"
	repository "github.com/aaravmahajanofficial/catalog-cart-service/internal/repositories"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/repositories/mongodb"
)

// Storage is the backend-neutral view of the store the services run on.
type Storage struct {
	Driver     string
	Products   repository.ProductRepository
	Users      repository.UserRepository
	Transactor repository.Transactor

	closeFn func() error
}

// Open connects to the backend selected by cfg.Driver.
func Open(cfg *config.Database) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		store, err := mongodb.Connect(cfg)
		if err != nil {
			return nil, err
		}
		return FromMongo(store), nil

	case config.DriverPostgres:
		store, err := repository.NewPostgres(cfg)
		if err != nil {
			return nil, err
		}
		slog.Info("✅ Successfully connected to PostgreSQL", slog.String("database", cfg.Name))
		return FromPostgres(store), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func FromMongo(store *mongodb.Store) *Storage {
	return &Storage{
		Driver:     config.DriverMongo,
		Products:   store.Product,
		Users:      store.User,
		Transactor: store.Transactor,
		closeFn:    store.Close,
	}
}

func FromPostgres(store *repository.Postgres) *Storage {
	return &Storage{
		Driver:     config.DriverPostgres,
		Products:   store.Product,
		Users:      store.User,
		Transactor: store.Transactor,
		closeFn:    store.Close,
	}
}

func (s *Storage) Close() error {
	if s.closeFn == nil {
		return nil
	}

	return s.closeFn()
}
