package transport

import (
	"net/http"

	"kitchen-inventory/internal/middleware"
	"kitchen-inventory/internal/repository"
	"kitchen-inventory/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateShoppingListItemRequest is the payload for adding a shopping
// list item. product_id is required; store_id is optional.
type CreateShoppingListItemRequest struct {
	ProductID *int64           `json:"product_id" validate:"required"`
	StoreID   *int64           `json:"store_id"`
	Quantity  *decimal.Decimal `json:"quantity"`
	Note      string           `json:"note"`
}

// ShoppingListHandler handles HTTP requests for the shopping list.
type ShoppingListHandler struct {
	shoppingListService service.ShoppingListService
	logger              *zap.Logger
}

// NewShoppingListHandler creates a new ShoppingListHandler.
func NewShoppingListHandler(shoppingListService service.ShoppingListService, logger *zap.Logger) *ShoppingListHandler {
	return &ShoppingListHandler{shoppingListService: shoppingListService, logger: logger}
}

// RegisterRoutes registers all shopping list routes.
func (h *ShoppingListHandler) RegisterRoutes(r chi.Router) {
	r.Route("/shopping-list", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Delete("/{id}", h.Delete)
	})
}

// Create handles POST /shopping-list. A reference to a missing product
// or store is a 404.
func (h *ShoppingListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateShoppingListItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	detail, err := h.shoppingListService.Create(r.Context(), service.CreateShoppingListItemInput{
		ProductID: req.ProductID,
		StoreID:   req.StoreID,
		Quantity:  req.Quantity,
		Note:      req.Note,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Shopping list item created", zap.Int64("item_id", detail.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, detail)
}

// List handles GET /shopping-list with optional equality filters on
// product_id and store_id.
func (h *ShoppingListHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := parsePagination(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	productID, err := queryInt64(r, "product_id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	storeID, err := queryInt64(r, "store_id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	filters := repository.ShoppingListItemFilters{
		ProductID: productID,
		StoreID:   storeID,
	}

	page, err := h.shoppingListService.List(r.Context(), filters, offset, limit)
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

// Delete handles DELETE /shopping-list/{id}. Deleting an absent item is
// a 404, so the second of two identical deletes fails.
func (h *ShoppingListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.shoppingListService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Shopping list item deleted", zap.Int64("item_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
