package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/milk-ledger/internal/config"
)

// CORSMiddleware applies the configured CORS policy, filling gaps from
// config.DefaultCORS. An origin of "*" allows any origin without credentials.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	policy := cfg.WithDefaults()

	corsConfig := cors.Config{
		AllowMethods: policy.AllowedMethods,
		AllowHeaders: policy.AllowedHeaders,
		ExposeHeaders: []string{
			"Content-Disposition",
			"X-Request-ID",
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"Retry-After",
		},
		MaxAge: 12 * time.Hour,
	}

	if slices.Contains(policy.AllowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = policy.AllowedOrigins
		corsConfig.AllowCredentials = true
	}

	return cors.New(corsConfig)
}
