package transport

import (
	"net/http"
	"time"

	"kitchen-inventory/internal/middleware"
	"kitchen-inventory/internal/repository"
	"kitchen-inventory/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateInventoryItemRequest is the payload for creating an inventory
// item. product_id and location_id are required; store_id is optional.
type CreateInventoryItemRequest struct {
	ProductID      *int64           `json:"product_id" validate:"required"`
	LocationID     *int64           `json:"location_id" validate:"required"`
	StoreID        *int64           `json:"store_id"`
	Quantity       *decimal.Decimal `json:"quantity"`
	PurchaseDate   *time.Time       `json:"purchase_date"`
	ExpirationDate *time.Time       `json:"expiration_date"`
	Price          *decimal.Decimal `json:"price"`
}

// UpdateInventoryItemRequest is a partial update payload; absent fields
// are left untouched.
type UpdateInventoryItemRequest struct {
	ProductID      *int64           `json:"product_id"`
	LocationID     *int64           `json:"location_id"`
	StoreID        *int64           `json:"store_id"`
	Quantity       *decimal.Decimal `json:"quantity"`
	PurchaseDate   *time.Time       `json:"purchase_date"`
	ExpirationDate *time.Time       `json:"expiration_date"`
	Price          *decimal.Decimal `json:"price"`
}

// InventoryHandler handles HTTP requests for inventory items.
type InventoryHandler struct {
	inventoryService service.InventoryService
	logger           *zap.Logger
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryService service.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService, logger: logger}
}

// RegisterRoutes registers all inventory item routes.
func (h *InventoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/inventory_items", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create handles POST /inventory_items. A reference to a missing
// product, location or store is a 404.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInventoryItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	detail, err := h.inventoryService.Create(r.Context(), service.CreateInventoryItemInput{
		ProductID:      req.ProductID,
		LocationID:     req.LocationID,
		StoreID:        req.StoreID,
		Quantity:       req.Quantity,
		PurchaseDate:   req.PurchaseDate,
		ExpirationDate: req.ExpirationDate,
		Price:          req.Price,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Inventory item created", zap.Int64("item_id", detail.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, detail)
}

// Get handles GET /inventory_items/{id}
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := h.inventoryService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, detail)
}

// List handles GET /inventory_items with optional equality filters on
// location_id and product_id.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := parsePagination(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	locationID, err := queryInt64(r, "location_id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	productID, err := queryInt64(r, "product_id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	filters := repository.InventoryItemFilters{
		LocationID: locationID,
		ProductID:  productID,
	}

	page, err := h.inventoryService.List(r.Context(), filters, offset, limit)
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

// Update handles PATCH /inventory_items/{id} — a partial merge. If the
// payload touches any foreign key, all of them are re-validated.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateInventoryItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	detail, err := h.inventoryService.Update(r.Context(), id, service.UpdateInventoryItemInput{
		ProductID:      req.ProductID,
		LocationID:     req.LocationID,
		StoreID:        req.StoreID,
		Quantity:       req.Quantity,
		PurchaseDate:   req.PurchaseDate,
		ExpirationDate: req.ExpirationDate,
		Price:          req.Price,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Inventory item updated", zap.Int64("item_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, detail)
}

// Delete handles DELETE /inventory_items/{id}
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.inventoryService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Inventory item deleted", zap.Int64("item_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
