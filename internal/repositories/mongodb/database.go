package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/config"
	repository "github.com/aaravmahajanofficial/catalog-cart-service/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCollection = "products"
	usersCollection    = "users"
)

// Store bundles the document-store implementations of the repositories.
type Store struct {
	Client     *mongo.Client
	DB         *mongo.Database
	Product    repository.ProductRepository
	User       repository.UserRepository
	Transactor repository.Transactor
}

func Connect(cfg *config.Database) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	store := NewStore(client, client.Database(cfg.MongoName), cfg.MongoTransactions)

	if err := store.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	slog.Info("✅ Successfully connected to MongoDB", slog.String("database", cfg.MongoName), slog.Bool("transactions", cfg.MongoTransactions))
	return store, nil
}

// NewStore wires the repositories onto db. Multi-document transactions are
// only used when transactions is set, as they need a replica set.
func NewStore(client *mongo.Client, db *mongo.Database, transactions bool) *Store {
	return &Store{
		Client:     client,
		DB:         db,
		Product:    NewProductRepo(db),
		User:       NewUserRepo(db),
		Transactor: NewSessionTransactor(client, transactions),
	}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.DB.Collection(productsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	slog.Info("✅ Disconnected from MongoDB")
	return nil
}
