package challenges

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/coinquestapp/coinquest-backend/pkg/db/models"
	"github.com/coinquestapp/coinquest-backend/pkg/enums"
)

func setupChallengeTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  virtual_currency INTEGER NOT NULL DEFAULT 0,
  xp INTEGER NOT NULL DEFAULT 0,
  level INTEGER NOT NULL DEFAULT 1,
  current_streak INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS friend_challenges (
  id TEXT PRIMARY KEY,
  challenger_id TEXT NOT NULL,
  challenged_id TEXT NOT NULL,
  challenge_type TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  wager_amount INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  accept_deadline DATETIME NOT NULL,
  completion_deadline DATETIME NOT NULL,
  accepted_at DATETIME,
  completed_at DATETIME,
  winner_id TEXT,
  target_value INTEGER,
  current_progress INTEGER NOT NULL DEFAULT 0,
  proof_data TEXT,
  xp_at_start INTEGER,
  level_at_start INTEGER,
  friends_count_at_start INTEGER,
  verification_criteria TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedChallenge(t *testing.T, db *gorm.DB, status enums.ChallengeStatus, mutate func(*models.FriendChallenge)) *models.FriendChallenge {
	t.Helper()

	now := time.Now().UTC()
	c := &models.FriendChallenge{
		ID:                   uuid.New(),
		ChallengerID:         uuid.New(),
		ChallengedID:         uuid.New(),
		ChallengeType:        enums.ChallengeTypeExpenseTracking,
		Title:                "Expense Tracker",
		Description:          "Track 5 expenses",
		WagerAmount:          20,
		Status:               status,
		AcceptDeadline:       now.Add(24 * time.Hour),
		CompletionDeadline:   now.Add(7 * 24 * time.Hour),
		VerificationCriteria: json.RawMessage(`{"type":"expense_count","targetValue":5}`),
		CreatedAt:            now,
	}
	if mutate != nil {
		mutate(c)
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func TestRepositorySettleCAS(t *testing.T) {
	db := setupChallengeTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	accepted := time.Now().UTC().Add(-time.Hour)
	c := seedChallenge(t, db, enums.ChallengeStatusAccepted, func(c *models.FriendChallenge) {
		c.AcceptedAt = &accepted
	})

	winner := c.ChallengedID
	ok, err := repo.Settle(ctx, c.ID, enums.ChallengeStatusCompleted, winner, time.Now().UTC(), 5, json.RawMessage(`{"completed":true}`))
	require.NoError(t, err)
	assert.True(t, ok)

	// Second attempt loses the conditional update.
	ok, err = repo.Settle(ctx, c.ID, enums.ChallengeStatusFailed, c.ChallengerID, time.Now().UTC(), 0, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	reloaded, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ChallengeStatusCompleted, reloaded.Status)
	require.NotNil(t, reloaded.WinnerID)
	assert.Equal(t, winner, *reloaded.WinnerID)
	assert.Equal(t, 5, reloaded.CurrentProgress)
}

func TestRepositoryTransitionFromPending(t *testing.T) {
	db := setupChallengeTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	c := seedChallenge(t, db, enums.ChallengeStatusPending, nil)

	ok, err := repo.TransitionFromPending(ctx, c.ID, enums.ChallengeStatusCancelled)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TransitionFromPending(ctx, c.ID, enums.ChallengeStatusExpired)
	require.NoError(t, err)
	assert.False(t, ok, "terminal rows must not transition again")
}

func TestRepositoryMarkAccepted(t *testing.T) {
	db := setupChallengeTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	c := seedChallenge(t, db, enums.ChallengeStatusPending, nil)
	acceptedAt := time.Now().UTC()

	ok, err := repo.MarkAccepted(ctx, c.ID, acceptedAt, Baseline{XP: 300, Level: 4, FriendsCount: 2})
	require.NoError(t, err)
	assert.True(t, ok)

	reloaded, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ChallengeStatusAccepted, reloaded.Status)
	require.NotNil(t, reloaded.XPAtStart)
	assert.Equal(t, 300, *reloaded.XPAtStart)
	require.NotNil(t, reloaded.AcceptedAt)

	ok, err = repo.MarkAccepted(ctx, c.ID, acceptedAt, Baseline{})
	require.NoError(t, err)
	assert.False(t, ok, "double accept must lose the conditional update")
}

func TestRepositoryListForUser(t *testing.T) {
	db := setupChallengeTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	sent := seedChallenge(t, db, enums.ChallengeStatusPending, func(c *models.FriendChallenge) {
		c.ChallengerID = userID
	})
	received := seedChallenge(t, db, enums.ChallengeStatusAccepted, func(c *models.FriendChallenge) {
		c.ChallengedID = userID
		now := time.Now().UTC()
		c.AcceptedAt = &now
	})
	seedChallenge(t, db, enums.ChallengeStatusPending, nil) // unrelated

	both, err := repo.ListForUser(ctx, userID, ListFilter{}, 10, nil)
	require.NoError(t, err)
	assert.Len(t, both, 2)

	sentOnly, err := repo.ListForUser(ctx, userID, ListFilter{Role: RoleChallenger}, 10, nil)
	require.NoError(t, err)
	require.Len(t, sentOnly, 1)
	assert.Equal(t, sent.ID, sentOnly[0].ID)

	accepted := enums.ChallengeStatusAccepted
	active, err := repo.ListForUser(ctx, userID, ListFilter{Status: &accepted}, 10, nil)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, received.ID, active[0].ID)
}

func TestRepositoryDeadlineListings(t *testing.T) {
	db := setupChallengeTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()

	stalePending := seedChallenge(t, db, enums.ChallengeStatusPending, func(c *models.FriendChallenge) {
		c.AcceptDeadline = now.Add(-time.Hour)
	})
	seedChallenge(t, db, enums.ChallengeStatusPending, nil) // deadline in the future

	overdueAccepted := seedChallenge(t, db, enums.ChallengeStatusAccepted, func(c *models.FriendChallenge) {
		accepted := now.Add(-48 * time.Hour)
		c.AcceptedAt = &accepted
		c.CompletionDeadline = now.Add(-time.Minute)
	})

	expirable, err := repo.ListPendingPastAcceptDeadline(ctx, now, 50)
	require.NoError(t, err)
	require.Len(t, expirable, 1)
	assert.Equal(t, stalePending.ID, expirable[0].ID)

	overdue, err := repo.ListAcceptedPastCompletionDeadline(ctx, now, 50)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, overdueAccepted.ID, overdue[0].ID)
}
