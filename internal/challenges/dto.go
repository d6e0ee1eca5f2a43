package challenges

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/coinquestapp/coinquest-backend/internal/verification"
	"github.com/coinquestapp/coinquest-backend/pkg/db/models"
	"github.com/coinquestapp/coinquest-backend/pkg/enums"
)

// CreateChallengeRequest creates a challenge from a catalog template or, when
// TemplateID is empty, from fully custom fields.
type CreateChallengeRequest struct {
	ChallengedID uuid.UUID `json:"challenged_id" validate:"required"`
	TemplateID   string    `json:"template_id,omitempty"`
	WagerAmount  int       `json:"wager_amount" validate:"required,min=1"`
	// Days overrides the template suggestion; required for custom challenges.
	Days int `json:"days,omitempty"`

	// Custom-challenge fields, ignored when TemplateID is set.
	Title         string                 `json:"title,omitempty"`
	Description   string                 `json:"description,omitempty"`
	ChallengeType enums.ChallengeType    `json:"challenge_type,omitempty"`
	Criteria      *verification.Criteria `json:"verification_criteria,omitempty"`
}

// ChallengeDTO is the transport shape of a friend challenge.
type ChallengeDTO struct {
	ID                 uuid.UUID             `json:"id"`
	ChallengerID       uuid.UUID             `json:"challenger_id"`
	ChallengedID       uuid.UUID             `json:"challenged_id"`
	ChallengeType      enums.ChallengeType   `json:"challenge_type"`
	Title              string                `json:"title"`
	Description        string                `json:"description"`
	WagerAmount        int                   `json:"wager_amount"`
	Status             enums.ChallengeStatus `json:"status"`
	AcceptDeadline     time.Time             `json:"accept_deadline"`
	CompletionDeadline time.Time             `json:"completion_deadline"`
	AcceptedAt         *time.Time            `json:"accepted_at,omitempty"`
	CompletedAt        *time.Time            `json:"completed_at,omitempty"`
	WinnerID           *uuid.UUID            `json:"winner_id,omitempty"`
	TargetValue        *int                  `json:"target_value,omitempty"`
	CurrentProgress    int                   `json:"current_progress"`
	ProofData          json.RawMessage       `json:"proof_data,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// CheckCompletionResponse reports a verification pass and, when the challenge
// settled, the terminal outcome.
type CheckCompletionResponse struct {
	Challenge *ChallengeDTO `json:"challenge"`
	Completed bool          `json:"completed"`
	Failed    bool          `json:"failed"`
	Progress  int           `json:"progress"`
	Settled   bool          `json:"settled"`
}

// FromModel converts a persisted challenge into its transport shape.
func FromModel(c *models.FriendChallenge) *ChallengeDTO {
	if c == nil {
		return nil
	}
	return &ChallengeDTO{
		ID:                 c.ID,
		ChallengerID:       c.ChallengerID,
		ChallengedID:       c.ChallengedID,
		ChallengeType:      c.ChallengeType,
		Title:              c.Title,
		Description:        c.Description,
		WagerAmount:        c.WagerAmount,
		Status:             c.Status,
		AcceptDeadline:     c.AcceptDeadline,
		CompletionDeadline: c.CompletionDeadline,
		AcceptedAt:         c.AcceptedAt,
		CompletedAt:        c.CompletedAt,
		WinnerID:           c.WinnerID,
		TargetValue:        c.TargetValue,
		CurrentProgress:    c.CurrentProgress,
		ProofData:          c.ProofData,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
