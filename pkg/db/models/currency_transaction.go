package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/coinquestapp/coinquest-backend/pkg/enums"
)

// CurrencyTransaction is an immutable ledger entry. BalanceAfter must equal
// BalanceBefore + Amount and must match the user's live balance at append
// time; the ledger repository enforces this under a row lock.
type CurrencyTransaction struct {
	ID                 uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID             uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index:idx_currency_transactions_user_created"`
	Amount             int                   `gorm:"column:amount;not null"`
	Type               enums.TransactionType `gorm:"column:type;type:transaction_type_enum;not null;index"`
	BalanceBefore      int                   `gorm:"column:balance_before;not null"`
	BalanceAfter       int                   `gorm:"column:balance_after;not null"`
	Description        string                `gorm:"column:description;type:text;not null"`
	RelatedChallengeID *uuid.UUID            `gorm:"column:related_challenge_id;type:uuid"`
	RelatedUserID      *uuid.UUID            `gorm:"column:related_user_id;type:uuid"`
	CreatedAt          time.Time             `gorm:"column:created_at;autoCreateTime;index:idx_currency_transactions_user_created"`
}
