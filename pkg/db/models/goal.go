package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal is a savings goal with running progress.
type Goal struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index"`
	Name          string          `gorm:"column:name;type:text;not null"`
	TargetAmount  decimal.Decimal `gorm:"column:target_amount;type:numeric(12,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"column:current_amount;type:numeric(12,2);not null;default:0"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}
