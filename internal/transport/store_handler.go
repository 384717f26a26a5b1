package transport

import (
	"net/http"

	"kitchen-inventory/internal/middleware"
	"kitchen-inventory/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateStoreRequest is the payload for creating a store.
type CreateStoreRequest struct {
	Name string `json:"name" validate:"required"`
}

// StoreHandler handles HTTP requests for stores.
type StoreHandler struct {
	storeService service.StoreService
	logger       *zap.Logger
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(storeService service.StoreService, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{storeService: storeService, logger: logger}
}

// RegisterRoutes registers all store routes.
func (h *StoreHandler) RegisterRoutes(r chi.Router) {
	r.Route("/stores", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
	})
}

// Create handles POST /stores
func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateStoreRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	store, err := h.storeService.Create(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Store created", zap.Int64("store_id", store.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, store)
}

// List handles GET /stores
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := parsePagination(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.storeService.List(r.Context(), offset, limit)
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
