package models

import "math"

// Cart holds the reserved quantity per product id. Count and Total are kept in
// step with Items by every mutation: Count is the sum of quantities and no entry
// is ever stored with a quantity below one.
type Cart struct {
	Count int            `json:"count"`
	Total float64        `json:"total"`
	Items map[string]int `json:"items"`
}

func NewCart() Cart {
	return Cart{Items: make(map[string]int)}
}

func (c *Cart) Quantity(productID string) int {
	return c.Items[productID]
}

// Add reserves quantity more units of productID at the given unit price.
func (c *Cart) Add(productID string, quantity int, price float64) {
	if c.Items == nil {
		c.Items = make(map[string]int)
	}

	c.Items[productID] += quantity
	c.Count += quantity
	c.Total = roundCents(c.Total + float64(quantity)*price)
}

// Decrement releases one unit of productID. The entry is dropped when it reaches zero.
func (c *Cart) Decrement(productID string, price float64) {
	c.Items[productID]--
	if c.Items[productID] <= 0 {
		delete(c.Items, productID)
	}

	c.Count--
	c.Total = roundCents(math.Max(c.Total-price, 0))
}

// Remove drops the entry for productID and returns the quantity it held.
func (c *Cart) Remove(productID string, price float64) int {
	quantity := c.Items[productID]
	delete(c.Items, productID)

	c.Count -= quantity
	c.Total = roundCents(math.Max(c.Total-float64(quantity)*price, 0))

	return quantity
}

func (c Cart) Clone() Cart {
	items := make(map[string]int, len(c.Items))
	for id, qty := range c.Items {
		items[id] = qty
	}

	return Cart{Count: c.Count, Total: c.Total, Items: items}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

type AddToCartRequest struct {
	UserID    string   `json:"userId" validate:"required"`
	ProductID string   `json:"productId" validate:"required"`
	Price     *float64 `json:"price" validate:"required,gte=0"`
	Quantity  int      `json:"quantity" validate:"required,min=1"`
}

// CartItemRequest is the body of increase-cart, decrease-cart and remove-from-cart.
type CartItemRequest struct {
	UserID    string   `json:"userId" validate:"required"`
	ProductID string   `json:"productId" validate:"required"`
	Price     *float64 `json:"price" validate:"required,gte=0"`
}
