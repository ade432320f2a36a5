// internal/infrastructure/telegram/client.go
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-miniapp/internal/config"
)

// Client sends messages through the Telegram Bot API. Notifications are a
// courtesy: failures are logged and never propagated to the caller.
type Client struct {
	baseURL  string
	botToken string
	http     *http.Client
	log      *logrus.Logger
}

// NewClient creates a new Telegram Bot API client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.Telegram.APIBaseURL, "/"),
		botToken: cfg.Telegram.BotToken,
		http:     &http.Client{Timeout: 5 * time.Second},
		log:      log,
	}
}

// SendMessage delivers a plain text message to a chat. No-op when the bot
// token or the chat id is missing.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) {
	if c.botToken == "" || chatID == 0 {
		return
	}

	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		c.log.WithError(err).Warn("failed to marshal telegram message")
		return
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		c.log.WithError(err).Warn("failed to create telegram request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("chat_id", chatID).Warn("failed to send telegram message")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.WithFields(logrus.Fields{
			"chat_id": chatID,
			"status":  resp.StatusCode,
		}).Warn("telegram API rejected message")
	}
}
