package transport

import (
	"net/http"

	"kitchen-inventory/internal/middleware"
	"kitchen-inventory/internal/repository"
	"kitchen-inventory/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Name  string `json:"name" validate:"required"`
	Brand string `json:"brand" validate:"required"`
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{productService: productService, logger: logger}
}

// RegisterRoutes registers all product routes.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
	})
}

// Create handles POST /products. A duplicate (name, brand) pair is a 409.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.Create(r.Context(), req.Name, req.Brand)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// List handles GET /products with optional case-insensitive substring
// filters on name and brand.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := parsePagination(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	filters := repository.ProductFilters{
		Name:  queryString(r, "name"),
		Brand: queryString(r, "brand"),
	}

	page, err := h.productService.List(r.Context(), filters, offset, limit)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, PaginatedResponse{
		Total:  page.Total,
		Offset: offset,
		Limit:  limit,
		Items:  page.Items,
	})
}
