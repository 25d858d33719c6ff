package respond

import (
	"github.com/gin-gonic/gin"

	"tailor-backend/internal/shared/telemetry"
)

// ErrorBody is the standardized error object. Browser and CLI clients read the
// "detail" field first, so error text always travels there.
type ErrorBody struct {
	Detail string      `json:"detail"`
	Code   string      `json:"code,omitempty"`
	Extra  interface{} `json:"extra,omitempty"`
}

// Error sends a standardized error response and logs it.
func Error(c *gin.Context, status int, code, detail string, extra interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"detail":     detail,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if docID := c.Param("doc_id"); docID != "" {
		fields["doc_id"] = docID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorBody{
		Detail: detail,
		Code:   code,
		Extra:  extra,
	})
}
