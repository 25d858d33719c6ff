package server

import (
	"github.com/gin-gonic/gin"

	"tailor-backend/internal/documents"
	"tailor-backend/internal/jobsearch"
	"tailor-backend/internal/shared/metrics"
	"tailor-backend/internal/shared/server/middleware"
	"tailor-backend/internal/tailoring"
)

// RouterDeps carries the handlers and cross-cutting settings the router needs.
type RouterDeps struct {
	Env             string
	CORSAllowOrigin []string

	Documents *documents.Handler
	Tailoring *tailoring.Handler
	JobSearch *jobsearch.Handler
}

// jobSearchRule throttles the proxy to the external job board.
var jobSearchRule = middleware.RateLimitRule{Rate: 1, Burst: 5}

// NewRouter builds the gin engine with middleware and all API routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(deps.CORSAllowOrigin))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	if deps.Env != "production" {
		router.GET("/metrics", metrics.Handler())
	}

	api := router.Group("/api")
	deps.Documents.RegisterRoutes(api)
	deps.Tailoring.RegisterRoutes(api)

	limited := api.Group("")
	limited.Use(middleware.RateLimit(middleware.NewRateLimiter(nil), jobSearchRule))
	deps.JobSearch.RegisterRoutes(limited)

	return router
}

// Addr formats a port into a listen address.
func Addr(port string) string {
	return ":" + port
}
