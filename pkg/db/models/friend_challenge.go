package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/coinquestapp/coinquest-backend/pkg/enums"
)

// FriendChallenge is a wagered head-to-head challenge between two friends.
// Rows are never deleted; terminal statuses are retained for audit.
type FriendChallenge struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ChallengerID  uuid.UUID             `gorm:"column:challenger_id;type:uuid;not null;index:idx_friend_challenges_challenger_status"`
	ChallengedID  uuid.UUID             `gorm:"column:challenged_id;type:uuid;not null;index:idx_friend_challenges_challenged_status"`
	ChallengeType enums.ChallengeType   `gorm:"column:challenge_type;type:challenge_type_enum;not null"`
	Title         string                `gorm:"column:title;type:text;not null"`
	Description   string                `gorm:"column:description;type:text;not null"`
	WagerAmount   int                   `gorm:"column:wager_amount;not null"`
	Status        enums.ChallengeStatus `gorm:"column:status;type:challenge_status_enum;not null;default:'pending';index:idx_friend_challenges_challenger_status;index:idx_friend_challenges_challenged_status"`

	AcceptDeadline     time.Time  `gorm:"column:accept_deadline;not null;index"`
	CompletionDeadline time.Time  `gorm:"column:completion_deadline;not null;index"`
	AcceptedAt         *time.Time `gorm:"column:accepted_at"`
	CompletedAt        *time.Time `gorm:"column:completed_at"`

	WinnerID        *uuid.UUID      `gorm:"column:winner_id;type:uuid"`
	TargetValue     *int            `gorm:"column:target_value"`
	CurrentProgress int             `gorm:"column:current_progress;not null;default:0"`
	ProofData       json.RawMessage `gorm:"column:proof_data;type:jsonb"`

	// Baseline snapshot captured at acceptance; delta rules measure from here.
	XPAtStart           *int `gorm:"column:xp_at_start"`
	LevelAtStart        *int `gorm:"column:level_at_start"`
	FriendsCountAtStart *int `gorm:"column:friends_count_at_start"`

	VerificationCriteria json.RawMessage `gorm:"column:verification_criteria;type:jsonb;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
