// internal/domain/payment/service.go
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/your-org/coffee-miniapp/internal/infrastructure/database/redis"
)

// pendingTTL bounds how long an unpaid cart waits for its payment. Expired
// entries simply vanish; the bot reports the token as unknown after that.
const pendingTTL = 30 * time.Minute

// ErrNotFound is returned when a payment token is unknown or already consumed.
var ErrNotFound = fmt.Errorf("pending payment not found")

// PendingPayment is a cart frozen between payment preparation and order
// creation. Items and Client stay as raw JSON: the service only stores and
// replays them, it never interprets them.
type PendingPayment struct {
	Token      string          `json:"token"`
	TelegramID int64           `json:"telegram_id"`
	Items      json.RawMessage `json:"items"`
	Total      float64         `json:"total"`
	Client     json.RawMessage `json:"client"`
	Comment    string          `json:"comment"`
	YooKassaID string          `json:"yookassa_payment_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Service handles pending payment storage
type Service struct {
	redis *redis.Client
}

// NewService creates a new payment service
func NewService(redisClient *redis.Client) *Service {
	return &Service{
		redis: redisClient,
	}
}

// NewToken generates a payment token.
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func pendingKey(token string) string {
	return fmt.Sprintf("payment:pending:%s", token)
}

// CreatePending stores a new pending payment under its token.
func (s *Service) CreatePending(ctx context.Context, pending *PendingPayment) error {
	if pending.Token == "" {
		return fmt.Errorf("payment token is required")
	}
	pending.CreatedAt = time.Now().UTC()

	if err := s.redis.SetJSON(ctx, pendingKey(pending.Token), pending, pendingTTL); err != nil {
		return fmt.Errorf("failed to store pending payment: %w", err)
	}
	return nil
}

// GetPending retrieves a pending payment by token.
func (s *Service) GetPending(ctx context.Context, token string) (*PendingPayment, error) {
	var pending PendingPayment
	err := s.redis.GetJSON(ctx, pendingKey(token), &pending)
	if err == goredis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pending payment: %w", err)
	}
	return &pending, nil
}

// SetYooKassaID attaches the created YooKassa payment id to a pending
// payment, keeping the remaining TTL semantics by rewriting the entry.
func (s *Service) SetYooKassaID(ctx context.Context, token, yookassaID string) error {
	pending, err := s.GetPending(ctx, token)
	if err != nil {
		return err
	}
	pending.YooKassaID = yookassaID

	if err := s.redis.SetJSON(ctx, pendingKey(token), pending, pendingTTL); err != nil {
		return fmt.Errorf("failed to update pending payment: %w", err)
	}
	return nil
}

// DeletePending removes a consumed pending payment.
func (s *Service) DeletePending(ctx context.Context, token string) error {
	if err := s.redis.Del(ctx, pendingKey(token)); err != nil {
		return fmt.Errorf("failed to delete pending payment: %w", err)
	}
	return nil
}
