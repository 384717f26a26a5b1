package transport

import (
	"errors"
	"net/http"

	"kitchen-inventory/internal/domain"
	"kitchen-inventory/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// respondServiceError maps service errors to HTTP responses: NotFound
// to 404, the product uniqueness conflict to 409, a missing required
// reference to 400, everything else to 500.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var notFound *domain.NotFoundError
	var missingRef *domain.MissingReferenceError

	switch {
	case errors.As(err, &notFound):
		middleware.RespondWithError(w, http.StatusNotFound, notFound.Error())
	case errors.Is(err, domain.ErrProductExists):
		middleware.RespondWithError(w, http.StatusConflict, "Product with this name and brand already exists")
	case errors.As(err, &missingRef):
		middleware.RespondWithError(w, http.StatusBadRequest, missingRef.Error())
	default:
		logger.Error("Unhandled service error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// urlParam indirects chi.URLParam so handlers stay testable with plain
// request contexts.
func urlParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}
