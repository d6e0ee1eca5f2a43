package verification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/coinquestapp/coinquest-backend/pkg/db/models"
)

// DataSource exposes the read models the verifier evaluates rules against.
// internal/activity provides the gorm-backed implementation.
type DataSource interface {
	// Expenses.
	CountExpenses(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	CountExpensesWithNotes(ctx context.Context, userID uuid.UUID, since time.Time, minNoteLength int) (int, error)
	CountExpensesInCategory(ctx context.Context, userID uuid.UUID, category string, since time.Time) (int, error)
	CountExpensesBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
	CountAllExpenses(ctx context.Context, userID uuid.UUID) (int, error)
	SumExpenses(ctx context.Context, userID uuid.UUID, category string, from, to time.Time) (decimal.Decimal, error)

	// Budgets and goals.
	ActiveBudgets(ctx context.Context, userID uuid.UUID, category string, activeThrough, activeFrom time.Time) ([]models.Budget, error)
	CountBudgetsCreated(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	CountGoalsCreated(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	SumGoalSavings(ctx context.Context, userID uuid.UUID, createdSince time.Time) (decimal.Decimal, error)

	// Daily challenges.
	CountDailyChallengesCompleted(ctx context.Context, userID uuid.UUID, completedSince time.Time) (int, error)
	DailyChallengeCountsOnDay(ctx context.Context, userID uuid.UUID, dayStart, dayEnd time.Time) (total int, completed int, err error)

	// Users and social.
	GetUserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error)
	FriendsCount(ctx context.Context, userID uuid.UUID) (int, error)
	LeaderboardRank(ctx context.Context, userID uuid.UUID) (int, error)
}

// UserStats is the slice of the user record the verifier reads.
type UserStats struct {
	XP            int
	Level         int
	CurrentStreak int
}
