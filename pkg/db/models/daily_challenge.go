package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyChallenge is one assigned daily task for a user on a given day.
type DailyChallenge struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_daily_challenges_user_date"`
	Title       string     `gorm:"column:title;type:text;not null"`
	Date        time.Time  `gorm:"column:date;not null;index:idx_daily_challenges_user_date"`
	IsCompleted bool       `gorm:"column:is_completed;not null;default:false"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}
