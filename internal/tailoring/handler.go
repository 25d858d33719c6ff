package tailoring

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tailor-backend/internal/documents"
	"tailor-backend/internal/llm"
	"tailor-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches tailoring routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/:doc_id/chat", h.chat)
	rg.POST("/resume/:doc_id/tailor", h.tailor)
	rg.POST("/resume/:doc_id/export", h.export)
}

func (h *Handler) chat(c *gin.Context) {
	docID := c.Param("doc_id")

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.Chat(c.Request.Context(), docID, req.Message)
	if err != nil {
		h.turnError(c, err, "chat turn failed")
		return
	}

	respond.OK(c, ChatResponse{
		AssistantMessage:  result.AssistantMessage,
		NeedsConfirmation: result.NeedsConfirmation,
		Status:            result.Status,
	})
}

func (h *Handler) tailor(c *gin.Context) {
	docID := c.Param("doc_id")

	var req TailorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.Tailor(c.Request.Context(), docID, req.JobDescription)
	if err != nil {
		h.turnError(c, err, "tailor turn failed")
		return
	}

	summary := result.EditsSummary
	if summary == nil {
		summary = []string{}
	}
	respond.OK(c, TailorResponse{
		AssistantMessage:  result.AssistantMessage,
		EditsSummary:      summary,
		NeedsConfirmation: result.NeedsConfirmation,
		Status:            result.Status,
	})
}

func (h *Handler) export(c *gin.Context) {
	docID := c.Param("doc_id")

	result, err := h.Svc.Export(c.Request.Context(), docID)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrNoResume):
			respond.Error(c, http.StatusNotFound, "no_resume", "No resume draft found for this doc_id. Parse or structure resume first.", nil)
		case errors.Is(err, ErrPresignUnsupported):
			respond.Error(c, http.StatusNotImplemented, "export_unavailable", "download URLs are not supported by the configured store", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export resume", nil)
		}
		return
	}

	respond.OK(c, ExportResponse{
		DocID:            result.DocID,
		ExportKey:        result.ExportKey,
		DownloadURL:      result.DownloadURL,
		ExpiresInSeconds: result.ExpiresInSeconds,
	})
}

func (h *Handler) turnError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, documents.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
	case errors.Is(err, ErrNoResume):
		respond.Error(c, http.StatusNotFound, "no_resume", "No resume draft found for this doc_id. Parse or structure resume first.", nil)
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "llm_unavailable", "assistant is not configured", nil)
	default:
		respond.Error(c, http.StatusBadGateway, "llm_error", fallback, nil)
	}
}
