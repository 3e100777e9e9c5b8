package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

// RespondFailure reports a handled pipeline failure. The HTTP status stays 200
// so callers only need to branch on the success flag.
func RespondFailure(c *gin.Context, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: false,
		Code:    http.StatusOK,
		Error:   message,
		TraceID: c.GetString("trace_id"),
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Success: false,
		Code:    code,
		Error:   message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	traceID := c.GetString("trace_id")

	switch {
	case errors.Is(err, ErrPrecondition):
		RespondFailure(c, err.Error())
	case errors.Is(err, ErrUnhandled):
		zap.L().Error("unhandled pipeline error", zap.String("trace_id", traceID), zap.Error(err))
		RespondFailure(c, "Internal server error: "+err.Error())
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidDate):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Invalid or missing API key")
	case errors.Is(err, ErrFlightProviderUnavailable):
		zap.L().Warn("flight provider unavailable", zap.String("trace_id", traceID), zap.Error(err))
		RespondError(c, http.StatusServiceUnavailable, "Flight search is not available")
	default:
		zap.L().Error("unknown error", zap.String("trace_id", traceID), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
