// internal/infrastructure/history/redis_store.go
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-miniapp/internal/domain/history"
	"github.com/your-org/coffee-miniapp/internal/infrastructure/database/redis"
)

// historyTTL keeps order history around for three months of inactivity.
const historyTTL = 90 * 24 * time.Hour

// RedisStore persists one user's order history as a single JSON blob.
// Both directions are best effort: a broken or missing blob reads as an
// empty history and write failures are only logged.
type RedisStore struct {
	redis      *redis.Client
	telegramID int64
	log        *logrus.Logger
}

// NewRedisStore creates a history store bound to one user.
func NewRedisStore(redisClient *redis.Client, telegramID int64, log *logrus.Logger) *RedisStore {
	return &RedisStore{
		redis:      redisClient,
		telegramID: telegramID,
		log:        log,
	}
}

func (s *RedisStore) key() string {
	return fmt.Sprintf("orders:user:%d", s.telegramID)
}

// Load reads the persisted history, empty on any failure.
func (s *RedisStore) Load() []history.SavedOrder {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var orders []history.SavedOrder
	if err := s.redis.GetJSON(ctx, s.key(), &orders); err != nil {
		return nil
	}
	return orders
}

// Save rewrites the persisted history whole.
func (s *RedisStore) Save(orders []history.SavedOrder) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := s.redis.SetJSON(ctx, s.key(), orders, historyTTL); err != nil {
		s.log.WithError(err).WithField("telegram_id", s.telegramID).Warn("failed to persist order history")
	}
}
