package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smarttravel/internal/config"
	"smarttravel/internal/infra"
	"smarttravel/internal/models/response_models"
)

type HealthController struct {
	generationConfigured bool
	db                   *gorm.DB
	now                  func() time.Time
}

// NewHealthController takes a nil db when no database is configured.
func NewHealthController(cfg config.AppConfig, db *gorm.DB) *HealthController {
	return &HealthController{
		generationConfigured: cfg.Generation().APIKey != "",
		db:                   db,
		now:                  time.Now,
	}
}

func (h *HealthController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": config.APITitle,
		"version": config.APIVersion,
		"status":  "running",
	})
}

func (h *HealthController) Health(c *gin.Context) {
	resp := response_models.HealthResponse{
		Status:    "healthy",
		Version:   config.APIVersion,
		Timestamp: h.now().Format(time.RFC3339),
		GeminiAI:  map[string]bool{"configured": h.generationConfigured},
		Database:  map[string]any{"configured": h.db != nil},
	}

	if h.db != nil {
		if err := infra.Ping(c.Request.Context(), h.db); err != nil {
			resp.Status = "degraded"
			resp.Database["connected"] = false
			resp.Message = "database unreachable: " + err.Error()
		} else {
			resp.Database["connected"] = true
		}
	}
	if !h.generationConfigured {
		resp.Message = joinMessage(resp.Message, "generation provider not configured, fallback itineraries only")
	}

	c.JSON(http.StatusOK, resp)
}

func joinMessage(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}
