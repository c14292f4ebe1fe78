package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	repository "github.com/aaravmahajanofficial/catalog-cart-service/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) repository.UserRepository {
	return &userRepository{collection: db.Collection(usersCollection)}
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	dbCtx, cancel := repository.WithDBTimeout(ctx)
	defer cancel()

	var doc userDocument
	if err := r.collection.FindOne(dbCtx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return doc.toModel(), nil
}

func (r *userRepository) UpdateCart(ctx context.Context, id string, cart models.Cart) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	dbCtx, cancel := repository.WithDBTimeout(ctx)
	defer cancel()

	items := cart.Items
	if items == nil {
		items = map[string]int{}
	}

	update := bson.M{"$set": bson.M{
		"cart":      cartDocument{Count: cart.Count, Total: cart.Total, Items: items},
		"updatedAt": time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(dbCtx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("updating cart: %w", err)
	}

	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}
