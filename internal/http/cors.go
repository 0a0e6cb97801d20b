package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Browser clients may call every /v1 route and read the request id and rate limit headers.
var (
	corsMethods        = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
	corsRequestHeaders = []string{"Authorization", "Content-Type", "X-Request-Id"}
	corsExposedHeaders = []string{"X-Request-Id", "Retry-After"}
)

// createCORSMiddleware returns nil when CORS is off or allowOrigins names no origin, so the
// router can skip it entirely.
func createCORSMiddleware(enabled bool, allowOrigins string, maxAge time.Duration, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOrigins)
	if len(origins) == 0 {
		logger.Warn("cors enabled without allowed origins, skipping middleware",
			slog.String("cors_allow_origins", allowOrigins))
		return nil
	}

	logger.Info("cors enabled", slog.Any("origins", origins), slog.Duration("max_age", maxAge))

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     corsMethods,
		AllowHeaders:     corsRequestHeaders,
		ExposeHeaders:    corsExposedHeaders,
		AllowCredentials: true,
		MaxAge:           maxAge,
	})
}

// parseOrigins splits a comma separated list, dropping blanks.
func parseOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
