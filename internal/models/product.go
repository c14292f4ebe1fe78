package models

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Pictures    []string  `json:"pictures"`
	Stocks      int       `json:"stocks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductPatch carries the fields of a partial update; nil means "leave unchanged".
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Pictures    *[]string
	Stocks      *int
}

func (p *ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Category == nil && p.Pictures == nil && p.Stocks == nil
}

// Apply copies the set fields onto product.
func (p *ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Pictures != nil {
		product.Pictures = *p.Pictures
	}
	if p.Stocks != nil {
		product.Stocks = *p.Stocks
	}
}

// ProductDetail is the payload of GET /products/{id}.
type ProductDetail struct {
	Product *Product   `json:"product"`
	Similar []*Product `json:"similar"`
}

// Inbound pictures arrive as "images".
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required,max=100"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
	Stocks      *int     `json:"stocks" validate:"required,gte=0"`
}

type UpdateProductRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description,omitempty" validate:"omitempty,min=1"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string   `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Images      *[]string `json:"images,omitempty" validate:"omitempty,dive,required"`
	Stocks      *int      `json:"stocks,omitempty" validate:"omitempty,gte=0"`
}

type DeleteProductRequest struct {
	UserID string `json:"user_id" validate:"required"`
}
