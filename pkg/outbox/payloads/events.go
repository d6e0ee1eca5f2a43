package payloads

import (
	"time"

	"github.com/coinquestapp/coinquest-backend/pkg/enums"
	"github.com/google/uuid"
)

// ChallengeCreatedEvent signals a new wagered challenge awaiting acceptance.
type ChallengeCreatedEvent struct {
	ChallengeID    uuid.UUID           `json:"challenge_id"`
	ChallengerID   uuid.UUID           `json:"challenger_id"`
	ChallengedID   uuid.UUID           `json:"challenged_id"`
	ChallengeType  enums.ChallengeType `json:"challenge_type"`
	WagerAmount    int                 `json:"wager_amount"`
	AcceptDeadline time.Time           `json:"accept_deadline"`
}

// ChallengeAcceptedEvent is emitted when the challenged friend locks in.
type ChallengeAcceptedEvent struct {
	ChallengeID        uuid.UUID `json:"challenge_id"`
	ChallengerID       uuid.UUID `json:"challenger_id"`
	ChallengedID       uuid.UUID `json:"challenged_id"`
	AcceptedAt         time.Time `json:"accepted_at"`
	CompletionDeadline time.Time `json:"completion_deadline"`
}

// ChallengeRejectedEvent is emitted when the challenged friend declines.
type ChallengeRejectedEvent struct {
	ChallengeID  uuid.UUID `json:"challenge_id"`
	ChallengerID uuid.UUID `json:"challenger_id"`
	ChallengedID uuid.UUID `json:"challenged_id"`
}

// ChallengeCancelledEvent is emitted when the challenger withdraws a pending challenge.
type ChallengeCancelledEvent struct {
	ChallengeID  uuid.UUID `json:"challenge_id"`
	ChallengerID uuid.UUID `json:"challenger_id"`
	ChallengedID uuid.UUID `json:"challenged_id"`
	CancelledAt  time.Time `json:"cancelled_at"`
}

// ChallengeSettledEvent carries the outcome of a decided challenge, including
// the two ledger entries that moved the wager. A clamped stake of zero moves
// nothing; the transaction ids are then zero and the event is the record.
type ChallengeSettledEvent struct {
	ChallengeID         uuid.UUID             `json:"challenge_id"`
	WinnerID            uuid.UUID             `json:"winner_id"`
	LoserID             uuid.UUID             `json:"loser_id"`
	WagerAmount         int                   `json:"wager_amount"`
	Outcome             enums.ChallengeStatus `json:"outcome"`
	WinnerTransactionID uuid.UUID             `json:"winner_transaction_id"`
	LoserTransactionID  uuid.UUID             `json:"loser_transaction_id"`
	SettledAt           time.Time             `json:"settled_at"`
}

// ChallengeExpiredEvent is emitted by the sweeper for challenges nobody accepted.
type ChallengeExpiredEvent struct {
	ChallengeID    uuid.UUID `json:"challenge_id"`
	ChallengerID   uuid.UUID `json:"challenger_id"`
	ChallengedID   uuid.UUID `json:"challenged_id"`
	AcceptDeadline time.Time `json:"accept_deadline"`
	ExpiredAt      time.Time `json:"expired_at"`
}
