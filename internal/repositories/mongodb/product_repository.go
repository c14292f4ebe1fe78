package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	repository "github.com/aaravmahajanofficial/catalog-cart-service/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

type productRepository struct {
	collection *mongo.Collection
}

func NewProductRepo(db *mongo.Database) repository.ProductRepository {
	return &productRepository{collection: db.Collection(productsCollection)}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := repository.WithDBTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()

	doc := productDocument{
		ID:          primitive.NewObjectID(),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Pictures:    product.Pictures,
		Stocks:      product.Stocks,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if doc.Pictures == nil {
		doc.Pictures = []string{}
	}

	if _, err := r.collection.InsertOne(dbCtx, doc); err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	product.ID = doc.ID.Hex()
	product.Pictures = doc.Pictures
	product.CreatedAt = now
	product.UpdatedAt = now

	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	dbCtx, cancel := repository.WithDBTimeout(ctx)
	defer cancel()

	var doc productDocument
	if err := r.collection.FindOne(dbCtx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("querying product: %w", err)
	}

	return doc.toModel(), nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, id string, patch *models.ProductPatch) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	dbCtx, cancel := repository.WithDBTimeout(ctx)
	defer cancel()

	updates := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Pictures != nil {
		updates["pictures"] = *patch.Pictures
	}
	if patch.Stocks != nil {
		updates["stocks"] = *patch.Stocks
	}

	result, err := r.collection.UpdateOne(dbCtx, bson.M{"_id": oid}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	dbCtx, cancel := repository.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(dbCtx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
}

func (r *productRepository) ListByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	return r.find(ctx, bson.M{"category": category}, options.Find().SetSort(newestFirst))
}

func (r *productRepository) ListSimilar(ctx context.Context, category, excludeID string, limit int) ([]*models.Product, error) {
	filter := bson.M{"category": category}
	if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}

	return r.find(ctx, filter, options.Find().SetSort(newestFirst).SetLimit(int64(limit)))
}

func (r *productRepository) SearchProducts(ctx context.Context, key string) ([]*models.Product, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(key), Options: "i"}

	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"description": pattern},
		bson.M{"category": pattern},
	}}

	return r.find(ctx, filter, options.Find().SetSort(newestFirst))
}

// AdjustStock applies delta in a single conditional update so concurrent
// reservations can never drive the stock below zero.
func (r *productRepository) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, repository.ErrNotFound
	}

	dbCtx, cancel := repository.WithDBTimeout(ctx)
	defer cancel()

	filter := bson.M{"_id": oid}
	if delta < 0 {
		filter["stocks"] = bson.M{"$gte": -delta}
	}

	update := bson.M{
		"$inc": bson.M{"stocks": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}

	var doc productDocument

	err = r.collection.FindOneAndUpdate(dbCtx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		return doc.Stocks, nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("adjusting stock: %w", err)
	}

	count, err := r.collection.CountDocuments(dbCtx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("checking product: %w", err)
	}

	if count == 0 {
		return 0, repository.ErrNotFound
	}

	return 0, repository.ErrStockConflict
}

func (r *productRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Product, error) {
	dbCtx, cancel := repository.WithDBTimeout(ctx)
	defer cancel()

	cursor, err := r.collection.Find(dbCtx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer cursor.Close(dbCtx)

	var docs []productDocument
	if err := cursor.All(dbCtx, &docs); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}

	products := make([]*models.Product, 0, len(docs))
	for i := range docs {
		products = append(products, docs[i].toModel())
	}

	return products, nil
}
