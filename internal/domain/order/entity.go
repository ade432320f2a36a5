// internal/domain/order/entity.go
package order

import "time"

// Order statuses as reported by the POS webhook. StatusPending marks orders
// accepted by us but not yet acknowledged by the POS.
const (
	StatusPending   = "pending"
	StatusCreated   = "CREATED"
	StatusAccepted  = "ACCEPTED"
	StatusCancelled = "CANCELLED"
)

// Record is one submitted order as stored in the database. POSGUID is the
// order guid we generated and sent to the POS; status webhooks address the
// record through it.
type Record struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserTelegramID int64     `json:"user_telegram_id" gorm:"index"`
	POSGUID        string    `json:"pos_guid" gorm:"uniqueIndex;size:64;not null"`
	TotalPrice     float64   `json:"total_price" gorm:"not null"`
	Status         string    `json:"status" gorm:"size:32;default:'pending'"`
	ItemsJSON      string    `json:"items_json" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the table name for the Record model
func (Record) TableName() string {
	return "orders"
}
