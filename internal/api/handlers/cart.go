package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/errors"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	service "github.com/aaravmahajanofficial/catalog-cart-service/internal/services"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/utils"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// AddToCart godoc
//	@Summary		Add a product to a cart
//	@Description	Reserves quantity units of the product for the user and returns the updated user.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.AddToCartRequest	true	"User, product, unit price and quantity"
//	@Success		200		{object}	models.User				"User with the updated cart"
//	@Failure		400		{string}	string					"Validation failure or insufficient stock"
//	@Failure		404		{string}	string					"Unknown user or product"
//	@Failure		409		{string}	string					"Cart or product busy"
//	@Router			/products/add-to-cart [post]
func (h *CartHandler) AddToCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.AddToCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		logger = logger.With(slog.String("userId", req.UserID), slog.String("productId", req.ProductID))

		user, err := h.cartService.AddToCart(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to add to cart", slog.Any("error", err))
			response.Error(w, err, errors.ErrCodeNotFound, errors.ErrCodeConflict)
			return
		}

		logger.Info("Product added to cart", slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, user)
	}
}

// IncreaseCartItem godoc
//	@Summary		Increase a cart item
//	@Description	Reserves one more unit of a product already in the cart.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.CartItemRequest	true	"User, product and unit price"
//	@Success		200		{object}	models.User				"User with the updated cart"
//	@Failure		400		{string}	string					"Out of stock, not in cart or unknown record"
//	@Failure		409		{string}	string					"Cart or product busy"
//	@Router			/products/increase-cart [post]
func (h *CartHandler) IncreaseCartItem() http.HandlerFunc {
	return h.itemHandler("increase cart item", h.cartService.IncreaseCartItem)
}

// DecreaseCartItem godoc
//	@Summary		Decrease a cart item
//	@Description	Releases one unit of a product in the cart. The entry is removed when it reaches zero.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.CartItemRequest	true	"User, product and unit price"
//	@Success		200		{object}	models.User				"User with the updated cart"
//	@Failure		400		{string}	string					"Not in cart or unknown record"
//	@Failure		409		{string}	string					"Cart or product busy"
//	@Router			/products/decrease-cart [post]
func (h *CartHandler) DecreaseCartItem() http.HandlerFunc {
	return h.itemHandler("decrease cart item", h.cartService.DecreaseCartItem)
}

// RemoveFromCart godoc
//	@Summary		Remove a product from a cart
//	@Description	Drops the cart entry and returns its whole quantity to stock.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.CartItemRequest	true	"User, product and unit price"
//	@Success		200		{object}	models.User				"User with the updated cart"
//	@Failure		400		{string}	string					"Not in cart or unknown record"
//	@Failure		409		{string}	string					"Cart or product busy"
//	@Router			/products/remove-from-cart [post]
func (h *CartHandler) RemoveFromCart() http.HandlerFunc {
	return h.itemHandler("remove from cart", h.cartService.RemoveFromCart)
}

type cartItemOperation func(ctx context.Context, req *models.CartItemRequest) (*models.User, error)

func (h *CartHandler) itemHandler(action string, op cartItemOperation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart item input", slog.String("action", action))
			return
		}

		logger = logger.With(slog.String("userId", req.UserID), slog.String("productId", req.ProductID))

		user, err := op(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to "+action, slog.Any("error", err))
			response.Error(w, err, errors.ErrCodeConflict)
			return
		}

		logger.Info("Cart updated", slog.String("action", action))
		response.Success(w, http.StatusOK, user)
	}
}
