package transport

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	defaultLimit = 100
	maxLimit     = 250
)

// PaginatedResponse is the envelope for every paginated listing.
type PaginatedResponse struct {
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
	Items  any   `json:"items"`
}

// parsePagination reads offset/limit query parameters, applying
// defaults (offset 0, limit 100) and bounding limit to [1, 250].
// Non-numeric or out-of-range values are a caller error.
func parsePagination(r *http.Request) (offset, limit int, err error) {
	offset = 0
	limit = defaultLimit

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("offset must be a non-negative integer")
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxLimit {
			return 0, 0, fmt.Errorf("limit must be an integer between 1 and %d", maxLimit)
		}
	}

	return offset, limit, nil
}

// queryInt64 reads an optional int64 query parameter, returning nil
// when absent.
func queryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &value, nil
}

// queryString reads an optional string query parameter, returning nil
// when absent.
func queryString(r *http.Request, name string) *string {
	if !r.URL.Query().Has(name) {
		return nil
	}
	value := r.URL.Query().Get(name)
	return &value
}

// pathID parses the named chi URL parameter as an entity id.
func pathID(r *http.Request, name string) (int64, error) {
	raw := urlParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return id, nil
}
