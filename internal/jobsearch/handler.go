package jobsearch

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tailor-backend/internal/shared/metrics"
	"tailor-backend/internal/shared/server/respond"
)

// Handler wires the job search endpoint to a Searcher.
type Handler struct {
	Searcher Searcher
}

// NewHandler constructs a Handler.
func NewHandler(searcher Searcher) *Handler {
	return &Handler{Searcher: searcher}
}

// RegisterRoutes attaches job search routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/search", h.search)
}

func (h *Handler) search(c *gin.Context) {
	var req JobSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	results, err := h.Searcher.Search(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "search_unavailable", "job search is not configured", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "provider_error", "job search provider failed", nil)
		}
		return
	}

	metrics.IncJobSearches()
	respond.OK(c, JobSearchResponse{Role: req.Role, Results: results})
}
