package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS accepts requests from the allow-listed origins and requests without an
// Origin header. Other cross-origin requests are aborted with 403.
func CORS(allowed []string) gin.HandlerFunc {
	allowed = slices.Clone(allowed)
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return slices.Contains(allowed, origin)
		},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Cookie"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
