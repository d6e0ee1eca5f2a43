package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a tracked spending record. The challenge core reads these;
// writes belong to the expense service.
type Expense struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index:idx_expenses_user_date"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	Category  string          `gorm:"column:category;type:text;not null"`
	Notes     *string         `gorm:"column:notes;type:text"`
	Date      time.Time       `gorm:"column:date;not null;index:idx_expenses_user_date"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
