package ledger

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/coinquestapp/coinquest-backend/pkg/db/models"
	"github.com/coinquestapp/coinquest-backend/pkg/pagination"
)

// Repository manages persistence for the currency ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetUserForUpdate(ctx context.Context, userID uuid.UUID) (*models.User, error)
	CreateTransaction(ctx context.Context, txn *models.CurrencyTransaction) error
	SetUserBalance(ctx context.Context, userID uuid.UUID, balance int) error
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.CurrencyTransaction, error)
	SumByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// GetUserForUpdate loads the user row under a row lock so concurrent appends
// for the same user serialize.
func (r *repository) GetUserForUpdate(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	q := r.db.WithContext(ctx)
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var user models.User
	if err := q.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) CreateTransaction(ctx context.Context, txn *models.CurrencyTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *repository) SetUserBalance(ctx context.Context, userID uuid.UUID, balance int) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("virtual_currency", balance).Error
}

func (r *repository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.CurrencyTransaction, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit)
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	var rows []models.CurrencyTransaction
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SumByUserID recomputes the balance from the ledger itself, used by
// reconciliation checks.
func (r *repository) SumByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var sum *int64
	err := r.db.WithContext(ctx).
		Model(&models.CurrencyTransaction{}).
		Where("user_id = ?", userID).
		Select("SUM(amount)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
