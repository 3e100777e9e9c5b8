package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	handler := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-API-Key", "X-Trace-ID"},
		ExposedHeaders: []string{"X-Trace-ID"},
		MaxAge:         600,

		OptionsSuccessStatus: http.StatusNoContent,
	})

	return func(c *gin.Context) {
		handler.HandlerFunc(c.Writer, c.Request)

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			if c.Writer.Written() {
				c.Abort()
			} else {
				c.AbortWithStatus(http.StatusNoContent)
			}
			return
		}
		c.Next()
	}
}
