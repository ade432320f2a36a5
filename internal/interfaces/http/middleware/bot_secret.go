// internal/interfaces/http/middleware/bot_secret.go
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/coffee-miniapp/internal/config"
)

// BotSecretHeader carries the shared secret on bot-only endpoints.
const BotSecretHeader = "X-Bot-Secret"

// RequireBotSecret guards endpoints that only the chat bot may call. With no
// secret configured the endpoints are closed entirely.
func RequireBotSecret(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := cfg.Telegram.BotSecret
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "BOT_INTERNAL_SECRET не задан",
			})
			return
		}

		provided := c.GetHeader(BotSecretHeader)
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Неверный или отсутствующий X-Bot-Secret",
			})
			return
		}

		c.Next()
	}
}
