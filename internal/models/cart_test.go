package models_test

import (
	"testing"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCartAdd(t *testing.T) {
	t.Run("Fresh cart", func(t *testing.T) {
		var cart models.Cart

		cart.Add("p1", 3, 10)

		assert.Equal(t, 3, cart.Quantity("p1"))
		assert.Equal(t, 3, cart.Count)
		assert.Equal(t, 30.0, cart.Total)
	})

	t.Run("Existing entry accumulates", func(t *testing.T) {
		cart := models.NewCart()

		cart.Add("p1", 1, 0.1)
		cart.Add("p1", 2, 0.2)
		cart.Add("p2", 1, 5)

		assert.Equal(t, 3, cart.Quantity("p1"))
		assert.Equal(t, 4, cart.Count)
		assert.Equal(t, 5.5, cart.Total, "total is kept in cents")
	})
}

func TestCartDecrement(t *testing.T) {
	cart := models.NewCart()
	cart.Add("p1", 2, 4.5)

	cart.Decrement("p1", 4.5)

	assert.Equal(t, 1, cart.Quantity("p1"))
	assert.Equal(t, 1, cart.Count)
	assert.Equal(t, 4.5, cart.Total)

	cart.Decrement("p1", 4.5)

	_, exists := cart.Items["p1"]
	assert.False(t, exists, "entry reaching zero is removed")
	assert.Equal(t, 0, cart.Count)
	assert.Equal(t, 0.0, cart.Total)
}

func TestCartDecrementClampsTotal(t *testing.T) {
	cart := models.NewCart()
	cart.Add("p1", 1, 5)

	// a caller quoting a higher price than it paid must not push the total negative
	cart.Decrement("p1", 8)

	assert.Equal(t, 0.0, cart.Total)
}

func TestCartRemove(t *testing.T) {
	cart := models.NewCart()
	cart.Add("p1", 2, 3)
	cart.Add("p2", 4, 10)

	removed := cart.Remove("p2", 10)

	assert.Equal(t, 4, removed)
	assert.Equal(t, 2, cart.Count)
	assert.Equal(t, 6.0, cart.Total)
	assert.Equal(t, map[string]int{"p1": 2}, cart.Items)
}

func TestCartAddThenRemoveRestoresAggregates(t *testing.T) {
	cart := models.NewCart()
	cart.Add("p1", 1, 19.99)
	before := cart.Clone()

	cart.Add("p2", 7, 2.49)
	cart.Remove("p2", 2.49)

	assert.Equal(t, before, cart)
}

func TestCartClone(t *testing.T) {
	cart := models.NewCart()
	cart.Add("p1", 1, 1)

	clone := cart.Clone()
	clone.Add("p1", 1, 1)

	assert.Equal(t, 1, cart.Quantity("p1"), "clone must not share the items map")
	assert.Equal(t, 2, clone.Quantity("p1"))
}

func TestProductPatchApply(t *testing.T) {
	name := "Runner 2"
	stocks := 0
	pictures := []string{"a.png"}
	patch := &models.ProductPatch{Name: &name, Stocks: &stocks, Pictures: &pictures}

	product := &models.Product{Name: "Runner", Description: "Light shoe", Price: 50, Stocks: 9}
	patch.Apply(product)

	assert.Equal(t, "Runner 2", product.Name)
	assert.Equal(t, "Light shoe", product.Description)
	assert.Equal(t, 50.0, product.Price)
	assert.Equal(t, 0, product.Stocks)
	assert.Equal(t, []string{"a.png"}, product.Pictures)
	assert.False(t, patch.IsEmpty())
	assert.True(t, (&models.ProductPatch{}).IsEmpty())
}
