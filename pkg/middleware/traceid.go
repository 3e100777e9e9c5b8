package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smarttravel/pkg/logger"
)

// TraceIDMiddleware reuses a caller supplied X-Trace-ID when it is a UUID.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Trace-ID")
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.New().String()
		}
		c.Set("trace_id", traceID)
		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), traceID))
		c.Writer.Header().Set("X-Trace-ID", traceID)
		c.Next()
	}
}
