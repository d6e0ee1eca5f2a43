package challenges

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/coinquestapp/coinquest-backend/pkg/db/models"
	"github.com/coinquestapp/coinquest-backend/pkg/enums"
	"github.com/coinquestapp/coinquest-backend/pkg/pagination"
)

// Repository exposes friend-challenge persistence. Every state transition is
// a conditional UPDATE so concurrent writers can never double-apply one.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, challenge *models.FriendChallenge) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FriendChallenge, error)
	ListForUser(ctx context.Context, userID uuid.UUID, filter ListFilter, limit int, cursor *pagination.Cursor) ([]models.FriendChallenge, error)
	MarkAccepted(ctx context.Context, id uuid.UUID, acceptedAt time.Time, baseline Baseline) (bool, error)
	TransitionFromPending(ctx context.Context, id uuid.UUID, to enums.ChallengeStatus) (bool, error)
	Settle(ctx context.Context, id uuid.UUID, outcome enums.ChallengeStatus, winnerID uuid.UUID, settledAt time.Time, progress int, proof json.RawMessage) (bool, error)
	UpdateProgress(ctx context.Context, id uuid.UUID, progress int, proof json.RawMessage) error
	GetUserForUpdate(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListPendingPastAcceptDeadline(ctx context.Context, now time.Time, limit int) ([]models.FriendChallenge, error)
	ListAcceptedPastCompletionDeadline(ctx context.Context, now time.Time, limit int) ([]models.FriendChallenge, error)
}

// ListFilter narrows a per-user challenge listing.
type ListFilter struct {
	Status *enums.ChallengeStatus
	// Role limits to challenges the user sent or received; empty means both.
	Role string
}

// Roles accepted by ListFilter.
const (
	RoleChallenger = "challenger"
	RoleChallenged = "challenged"
)

// Baseline is the challenged user's snapshot captured at acceptance.
type Baseline struct {
	XP           int
	Level        int
	FriendsCount int
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a challenges repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, challenge *models.FriendChallenge) error {
	return r.db.WithContext(ctx).Create(challenge).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.FriendChallenge, error) {
	var challenge models.FriendChallenge
	if err := r.db.WithContext(ctx).First(&challenge, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *repository) ListForUser(ctx context.Context, userID uuid.UUID, filter ListFilter, limit int, cursor *pagination.Cursor) ([]models.FriendChallenge, error) {
	q := r.db.WithContext(ctx).Model(&models.FriendChallenge{})

	switch filter.Role {
	case RoleChallenger:
		q = q.Where("challenger_id = ?", userID)
	case RoleChallenged:
		q = q.Where("challenged_id = ?", userID)
	default:
		q = q.Where("challenger_id = ? OR challenged_id = ?", userID, userID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var challenges []models.FriendChallenge
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&challenges).Error
	if err != nil {
		return nil, err
	}
	return challenges, nil
}

// MarkAccepted flips pending -> accepted and records the baseline snapshot.
// Returns false when the row was not in pending (lost race or wrong state).
func (r *repository) MarkAccepted(ctx context.Context, id uuid.UUID, acceptedAt time.Time, baseline Baseline) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.FriendChallenge{}).
		Where("id = ? AND status = ?", id, enums.ChallengeStatusPending).
		Updates(map[string]any{
			"status":                 enums.ChallengeStatusAccepted,
			"accepted_at":            acceptedAt,
			"xp_at_start":            baseline.XP,
			"level_at_start":         baseline.Level,
			"friends_count_at_start": baseline.FriendsCount,
		})
	return res.RowsAffected == 1, res.Error
}

// TransitionFromPending moves pending -> to (cancelled or expired). Returns
// false when the row already left pending.
func (r *repository) TransitionFromPending(ctx context.Context, id uuid.UUID, to enums.ChallengeStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.FriendChallenge{}).
		Where("id = ? AND status = ?", id, enums.ChallengeStatusPending).
		Update("status", to)
	return res.RowsAffected == 1, res.Error
}

// Settle is the at-most-once guard for money movement: only a row still in
// accepted can transition into a terminal money-moving state, and only one
// concurrent caller can win the conditional update.
func (r *repository) Settle(ctx context.Context, id uuid.UUID, outcome enums.ChallengeStatus, winnerID uuid.UUID, settledAt time.Time, progress int, proof json.RawMessage) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.FriendChallenge{}).
		Where("id = ? AND status = ?", id, enums.ChallengeStatusAccepted).
		Updates(map[string]any{
			"status":           outcome,
			"winner_id":        winnerID,
			"completed_at":     settledAt,
			"current_progress": progress,
			"proof_data":       proof,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *repository) UpdateProgress(ctx context.Context, id uuid.UUID, progress int, proof json.RawMessage) error {
	return r.db.WithContext(ctx).
		Model(&models.FriendChallenge{}).
		Where("id = ? AND status = ?", id, enums.ChallengeStatusAccepted).
		Updates(map[string]any{
			"current_progress": progress,
			"proof_data":       proof,
		}).Error
}

// GetUserForUpdate loads a user row, locked for the duration of the
// surrounding transaction on Postgres.
func (r *repository) GetUserForUpdate(ctx context.Context, id uuid.UUID) (*models.User, error) {
	q := r.db.WithContext(ctx)
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var user models.User
	if err := q.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) ListPendingPastAcceptDeadline(ctx context.Context, now time.Time, limit int) ([]models.FriendChallenge, error) {
	var challenges []models.FriendChallenge
	err := r.db.WithContext(ctx).
		Where("status = ? AND accept_deadline < ?", enums.ChallengeStatusPending, now).
		Order("accept_deadline ASC").
		Limit(limit).
		Find(&challenges).Error
	if err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *repository) ListAcceptedPastCompletionDeadline(ctx context.Context, now time.Time, limit int) ([]models.FriendChallenge, error) {
	var challenges []models.FriendChallenge
	err := r.db.WithContext(ctx).
		Where("status = ? AND completion_deadline < ?", enums.ChallengeStatusAccepted, now).
		Order("completion_deadline ASC").
		Limit(limit).
		Find(&challenges).Error
	if err != nil {
		return nil, err
	}
	return challenges, nil
}
