package transport

import (
	"net/http"

	"kitchen-inventory/internal/middleware"
	"kitchen-inventory/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateLocationRequest is the payload for creating a location.
type CreateLocationRequest struct {
	Name string `json:"name" validate:"required"`
}

// LocationHandler handles HTTP requests for locations.
type LocationHandler struct {
	locationService  service.LocationService
	inventoryService service.InventoryService
	logger           *zap.Logger
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locationService service.LocationService, inventoryService service.InventoryService, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locationService:  locationService,
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// RegisterRoutes registers all location routes.
func (h *LocationHandler) RegisterRoutes(r chi.Router) {
	r.Route("/locations", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{location_id}/items", h.ListItems)
	})
}

// Create handles POST /locations
func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLocationRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	location, err := h.locationService.Create(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Location created", zap.Int64("location_id", location.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, location)
}

// List handles GET /locations
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := parsePagination(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.locationService.List(r.Context(), offset, limit)
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

// ListItems handles GET /locations/{location_id}/items — the
// location-scoped inventory listing. An unknown location is a 404.
func (h *LocationHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	locationID, err := pathID(r, "location_id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

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

	page, err := h.inventoryService.ListForLocation(r.Context(), locationID, productID, storeID, offset, limit)
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
