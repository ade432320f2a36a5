// internal/interfaces/http/middleware/bot_secret_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/coffee-miniapp/internal/config"
)

func botSecretRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Telegram.BotSecret = secret

	router := gin.New()
	router.Use(RequireBotSecret(cfg))
	router.GET("/protected", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestRequireBotSecretAccepts(t *testing.T) {
	router := botSecretRouter("s3cret")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(BotSecretHeader, "s3cret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireBotSecretRejectsWrongSecret(t *testing.T) {
	router := botSecretRouter("s3cret")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(BotSecretHeader, "wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireBotSecretRejectsMissingHeader(t *testing.T) {
	router := botSecretRouter("s3cret")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireBotSecretClosedWhenUnconfigured(t *testing.T) {
	router := botSecretRouter("")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(BotSecretHeader, "anything")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
