package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget caps spending over a date range, either overall or for one category.
type Budget struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index"`
	BudgetType   string          `gorm:"column:budget_type;type:text;not null;default:'overall'"`
	CategoryName *string         `gorm:"column:category_name;type:text"`
	BudgetAmount decimal.Decimal `gorm:"column:budget_amount;type:numeric(12,2);not null"`
	StartDate    time.Time       `gorm:"column:start_date;not null"`
	EndDate      time.Time       `gorm:"column:end_date;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}
