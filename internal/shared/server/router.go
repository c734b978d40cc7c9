package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/reports"
	"career-backend/internal/services/health"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

const submitGroup = "SUBMIT"

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config        config.Config
	ReportHandler *reports.Handler
	Health        *health.Service
	// Limiter is shared across routers when set, mainly so tests can control its clock.
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: deps.Limiter,
			GroupFor: func(c *gin.Context) string {
				if c.FullPath() == "/api/submit-assessment" {
					return submitGroup
				}
				return ""
			},
			Rules: map[string]middleware.RateLimitRule{
				submitGroup: {
					Rate:    deps.Config.SubmitRatePerSec,
					Burst:   deps.Config.SubmitRateBurst,
					Message: "Too many submissions, please try again later",
				},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		payload, healthy := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, payload)
	})
	if deps.ReportHandler != nil {
		deps.ReportHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3001"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
