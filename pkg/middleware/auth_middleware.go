package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"smarttravel/pkg/utils"
)

type AuthConfig struct {
	APIKey     string
	APIKeyHash string
	JWTSecret  string
}

func (a AuthConfig) enabled() bool {
	return a.APIKey != "" || a.APIKeyHash != "" || a.JWTSecret != ""
}

// APIAuthMiddleware accepts an X-API-Key header (plain or bcrypt-hashed key)
// or a Bearer JWT. With nothing configured every request passes.
func APIAuthMiddleware(cfg AuthConfig) gin.HandlerFunc {

	return func(c *gin.Context) {
		if !cfg.enabled() {
			c.Next()
			return
		}

		if key := c.GetHeader("X-API-Key"); key != "" && validAPIKey(cfg, key) {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if cfg.JWTSecret != "" && strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := utils.ValidateToken([]byte(cfg.JWTSecret), tokenString)
			if err != nil {
				utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
				c.Abort()
				return
			}

			c.Set("user_id", claims.UserID)
			c.Next()
			return
		}

		utils.RespondError(c, http.StatusUnauthorized, "Invalid or missing API key")
		c.Abort()
	}
}

func validAPIKey(cfg AuthConfig, key string) bool {
	if cfg.APIKey != "" && subtle.ConstantTimeCompare([]byte(cfg.APIKey), []byte(key)) == 1 {
		return true
	}
	if cfg.APIKeyHash != "" && utils.CompareSecret(cfg.APIKeyHash, key) == nil {
		return true
	}
	return false
}
