package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the canonical identity record. VirtualCurrency is the authoritative
// cache of the ledger sum; it is only ever mutated through the ledger
// append primitive.
type User struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username        string     `gorm:"column:username;type:text;not null;uniqueIndex"`
	Email           string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash    string     `gorm:"column:password_hash;not null"`
	VirtualCurrency int        `gorm:"column:virtual_currency;not null;default:0"`
	XP              int        `gorm:"column:xp;not null;default:0"`
	Level           int        `gorm:"column:level;not null;default:1"`
	CurrentStreak   int        `gorm:"column:current_streak;not null;default:0"`
	IsActive        bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt     *time.Time `gorm:"column:last_login_at"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
