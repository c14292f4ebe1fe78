package mongodb

import (
	"time"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type productDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	Pictures    []string           `bson:"pictures"`
	Stocks      int                `bson:"stocks"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *productDocument) toModel() *models.Product {
	pictures := d.Pictures
	if pictures == nil {
		pictures = []string{}
	}

	return &models.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		Pictures:    pictures,
		Stocks:      d.Stocks,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type cartDocument struct {
	Count int            `bson:"count"`
	Total float64        `bson:"total"`
	Items map[string]int `bson:"items"`
}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	IsAdmin   bool               `bson:"isAdmin"`
	Cart      cartDocument       `bson:"cart"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *userDocument) toModel() *models.User {
	cart := models.Cart{Count: d.Cart.Count, Total: d.Cart.Total, Items: d.Cart.Items}
	if cart.Items == nil {
		cart.Items = map[string]int{}
	}

	return &models.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		IsAdmin:   d.IsAdmin,
		Cart:      cart,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
