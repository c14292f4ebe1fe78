package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	service "github.com/aaravmahajanofficial/catalog-cart-service/internal/services"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/utils"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	productService service.ProductService
	accessService  service.AccessService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService, accessService service.AccessService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		accessService:  accessService,
		validator:      validator.New(),
	}
}

// ListProducts godoc
//	@Summary		List products
//	@Description	Returns every product, newest first.
//	@Tags			Products
//	@Produce		json
//	@Success		200	{array}		models.Product	"All products"
//	@Failure		400	{string}	string			"Failure message"
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		products, err := h.productService.ListProducts(r.Context())
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

// CreateProduct godoc
//	@Summary		Create a product
//	@Description	Stores a new product and returns the full catalog, newest first. Pictures are sent as "images".
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		models.CreateProductRequest	true	"Product details"
//	@Success		201		{array}		models.Product				"All products"
//	@Failure		400		{string}	string						"Validation or store failure"
//	@Router			/products [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create product input")
			return
		}

		products, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product created successfully", slog.Int("catalogSize", len(products)))
		response.Success(w, http.StatusCreated, products)
	}
}

// UpdateProduct godoc
//	@Summary		Update a product
//	@Description	Overwrites only the provided fields and returns the full catalog.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Product ID"
//	@Param			product	body		models.UpdateProductRequest	true	"Fields to change"
//	@Success		200		{array}		models.Product				"All products"
//	@Failure		400		{string}	string						"Validation failure or unknown product"
//	@Router			/products/{id} [patch]
func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id := r.PathValue("id")
		logger := middleware.LoggerFromContext(r.Context()).With(slog.String("productId", id))

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update product input")
			return
		}

		products, err := h.productService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated successfully")
		response.Success(w, http.StatusOK, products)
	}
}

// DeleteProduct godoc
//	@Summary		Delete a product
//	@Description	Removes a product. The requesting user, named in the body, must be an admin.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Product ID"
//	@Param			request	body		models.DeleteProductRequest	true	"Requesting user"
//	@Success		200		{array}		models.Product				"Remaining products"
//	@Failure		400		{string}	string						"Unknown user or product"
//	@Failure		401		{string}	string						"Requesting user is not an admin"
//	@Router			/products/{id} [delete]
func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id := r.PathValue("id")
		logger := middleware.LoggerFromContext(r.Context()).With(slog.String("productId", id))

		var req models.DeleteProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid delete product input")
			return
		}

		logger = logger.With(slog.String("userId", req.UserID))

		principal, err := h.accessService.Principal(r.Context(), req.UserID)
		if err != nil {
			logger.Warn("Failed to resolve requesting user", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		products, err := h.productService.DeleteProduct(r.Context(), principal, id)
		if err != nil {
			logger.Warn("Failed to delete product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted successfully")
		response.Success(w, http.StatusOK, products)
	}
}

// GetProduct godoc
//	@Summary		Get a product
//	@Description	Returns the product together with up to five other products of the same category.
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		string					true	"Product ID"
//	@Success		200	{object}	models.ProductDetail	"Product and similar products"
//	@Failure		400	{string}	string					"Unknown product"
//	@Router			/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id := r.PathValue("id")
		logger := middleware.LoggerFromContext(r.Context()).With(slog.String("productId", id))

		detail, err := h.productService.GetProduct(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, detail)
	}
}

// ListByCategory godoc
//	@Summary		List products of a category
//	@Description	Returns the products of one category, newest first. The category "all" lists every product.
//	@Tags			Products
//	@Produce		json
//	@Param			category	path		string			true	"Category name or all"
//	@Success		200			{array}		models.Product	"Matching products"
//	@Failure		400			{string}	string			"Failure message"
//	@Router			/products/category/{category} [get]
func (h *ProductHandler) ListByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		category := r.PathValue("category")
		logger := middleware.LoggerFromContext(r.Context()).With(slog.String("category", category))

		products, err := h.productService.ListByCategory(r.Context(), category)
		if err != nil {
			logger.Error("Failed to list products by category", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

// SearchProducts godoc
//	@Summary		Search products
//	@Description	Case-insensitive substring match against name, description and category.
//	@Tags			Products
//	@Produce		json
//	@Param			key	path		string			true	"Search text"
//	@Success		200	{array}		models.Product	"Matching products"
//	@Failure		400	{string}	string			"Failure message"
//	@Router			/products/search/{key} [get]
func (h *ProductHandler) SearchProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		key := r.PathValue("key")
		logger := middleware.LoggerFromContext(r.Context()).With(slog.String("key", key))

		products, err := h.productService.SearchProducts(r.Context(), key)
		if err != nil {
			logger.Error("Failed to search products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}
