package middleware

import (
	"time"

	"github.com/barberoil/fuelpos/internal/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	// The tablet UI is served from the device itself
	defaultOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:8080"}
	defaultMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	defaultHeaders = []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Request-ID"}
)

// CORSMiddleware allows the local UI origins. Sessions travel in the
// Authorization header, so credentials (cookies) are not allowed.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:  orDefault(cfg.AllowedOrigins, defaultOrigins),
		AllowMethods:  orDefault(cfg.AllowedMethods, defaultMethods),
		AllowHeaders:  orDefault(cfg.AllowedHeaders, defaultHeaders),
		ExposeHeaders: []string{"Content-Disposition", "X-Request-ID", "X-Export-Rows"},
		MaxAge:        12 * time.Hour,
	})
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}
