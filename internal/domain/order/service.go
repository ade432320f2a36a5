// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Service handles order record persistence
type Service struct {
	db *gorm.DB
}

// NewService creates a new order service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
	}
}

// Create stores a new order record
func (s *Service) Create(ctx context.Context, record *Record) error {
	if record.Status == "" {
		record.Status = StatusPending
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create order record: %w", err)
	}
	return nil
}

// UpdateStatusByGUID updates the status of the order identified by its POS
// guid and returns the updated record.
func (s *Service) UpdateStatusByGUID(ctx context.Context, posGUID, status string) (*Record, error) {
	var record Record
	if err := s.db.WithContext(ctx).Where("pos_guid = ?", posGUID).First(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", posGUID, err)
	}

	record.Status = status
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", posGUID, err)
	}

	return &record, nil
}

// ListByUser returns the orders of one user, most recent first.
func (s *Service) ListByUser(ctx context.Context, telegramID int64, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	var records []Record
	err := s.db.WithContext(ctx).
		Where("user_telegram_id = ?", telegramID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %d: %w", telegramID, err)
	}

	return records, nil
}
