// Package activity provides read models over the tracked finance data
// (expenses, budgets, goals, daily challenges) that challenge verification
// evaluates against. It never writes; the owning services do.
package activity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/coinquestapp/coinquest-backend/internal/verification"
	"github.com/coinquestapp/coinquest-backend/pkg/db/models"
)

// Repository implements verification.DataSource with gorm queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository returns an activity reader bound to the provided database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ verification.DataSource = (*Repository)(nil)

func (r *Repository) CountExpenses(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("user_id = ? AND date >= ?", userID, since).
		Count(&count).Error
	return int(count), err
}

func (r *Repository) CountExpensesWithNotes(ctx context.Context, userID uuid.UUID, since time.Time, minNoteLength int) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("user_id = ? AND date >= ?", userID, since).
		Where("notes IS NOT NULL AND LENGTH(notes) >= ?", minNoteLength).
		Count(&count).Error
	return int(count), err
}

func (r *Repository) CountExpensesInCategory(ctx context.Context, userID uuid.UUID, category string, since time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("user_id = ? AND category = ? AND date >= ?", userID, category, since).
		Count(&count).Error
	return int(count), err
}

func (r *Repository) CountExpensesBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Count(&count).Error
	return int(count), err
}

func (r *Repository) CountAllExpenses(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return int(count), err
}

func (r *Repository) SumExpenses(ctx context.Context, userID uuid.UUID, category string, from, to time.Time) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var sum decimal.NullDecimal
	if err := q.Select("SUM(amount)").Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// ActiveBudgets returns budgets whose window touches the challenge window.
// An empty category matches budgets of any type; otherwise only category
// budgets for that category qualify.
func (r *Repository) ActiveBudgets(ctx context.Context, userID uuid.UUID, category string, activeThrough, activeFrom time.Time) ([]models.Budget, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND start_date <= ? AND end_date >= ?", userID, activeThrough, activeFrom)
	if category != "" {
		q = q.Where("budget_type = ? AND category_name = ?", "category", category)
	}
	var budgets []models.Budget
	if err := q.Find(&budgets).Error; err != nil {
		return nil, err
	}
	return budgets, nil
}

func (r *Repository) CountBudgetsCreated(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Budget{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return int(count), err
}

func (r *Repository) CountGoalsCreated(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Goal{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return int(count), err
}

func (r *Repository) SumGoalSavings(ctx context.Context, userID uuid.UUID, createdSince time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Goal{}).
		Where("user_id = ? AND created_at >= ?", userID, createdSince).
		Select("SUM(current_amount)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *Repository) CountDailyChallengesCompleted(ctx context.Context, userID uuid.UUID, completedSince time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DailyChallenge{}).
		Where("user_id = ? AND is_completed = ? AND completed_at >= ?", userID, true, completedSince).
		Count(&count).Error
	return int(count), err
}

func (r *Repository) DailyChallengeCountsOnDay(ctx context.Context, userID uuid.UUID, dayStart, dayEnd time.Time) (int, int, error) {
	var total, completed int64
	base := r.db.WithContext(ctx).
		Model(&models.DailyChallenge{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd)
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := base.Session(&gorm.Session{}).Where("is_completed = ?", true).Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	return int(total), int(completed), nil
}

func (r *Repository) GetUserStats(ctx context.Context, userID uuid.UUID) (*verification.UserStats, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &verification.UserStats{Level: 1}, nil
		}
		return nil, err
	}
	return &verification.UserStats{
		XP:            user.XP,
		Level:         user.Level,
		CurrentStreak: user.CurrentStreak,
	}, nil
}

func (r *Repository) FriendsCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return int(count), err
}

// LeaderboardRank ranks users by XP descending; rank 1 is the top user.
// Returns 0 when the user does not exist.
func (r *Repository) LeaderboardRank(ctx context.Context, userID uuid.UUID) (int, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	var ahead int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("xp > ?", user.XP).
		Count(&ahead).Error; err != nil {
		return 0, err
	}
	return int(ahead) + 1, nil
}
