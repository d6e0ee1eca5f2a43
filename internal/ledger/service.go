package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coinquestapp/coinquest-backend/pkg/db/models"
	"github.com/coinquestapp/coinquest-backend/pkg/enums"
	"github.com/coinquestapp/coinquest-backend/pkg/errors"
	"github.com/coinquestapp/coinquest-backend/pkg/pagination"
)

// Service defines operations against the virtual currency ledger. Append is
// the only way balances change anywhere in the system.
type Service interface {
	Append(ctx context.Context, tx *gorm.DB, input AppendInput) (*models.CurrencyTransaction, error)
	Balance(ctx context.Context, userID uuid.UUID) (int, error)
	ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.CurrencyTransaction, string, error)
}

type service struct {
	repo Repository
}

// AppendInput captures the immutable data a ledger entry requires. Amount is
// signed: positive credits the user, negative debits them.
type AppendInput struct {
	UserID             uuid.UUID
	Amount             int
	Type               enums.TransactionType
	Description        string
	RelatedChallengeID *uuid.UUID
	RelatedUserID      *uuid.UUID
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo}, nil
}

// Append locks the user row, derives balance_before/balance_after from the
// live balance, inserts the ledger entry, and writes the new balance back.
// It must run inside the caller's transaction so the entry commits or rolls
// back together with whatever business change justified it.
func (s *service) Append(ctx context.Context, tx *gorm.DB, input AppendInput) (*models.CurrencyTransaction, error) {
	if tx == nil {
		return nil, errors.New(errors.CodeInternal, "ledger append requires a transaction")
	}
	if input.UserID == uuid.Nil {
		return nil, errors.New(errors.CodeValidation, "user id is required")
	}
	if input.Amount == 0 {
		return nil, errors.New(errors.CodeValidation, "amount must be non-zero")
	}
	if !input.Type.IsValid() {
		return nil, errors.New(errors.CodeValidation, fmt.Sprintf("invalid transaction type %q", input.Type))
	}
	if input.Description == "" {
		return nil, errors.New(errors.CodeValidation, "description is required")
	}

	repo := s.repo.WithTx(tx)
	user, err := repo.GetUserForUpdate(ctx, input.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.CodeNotFound, "user not found")
		}
		return nil, err
	}

	balanceBefore := user.VirtualCurrency
	balanceAfter := balanceBefore + input.Amount
	if balanceAfter < 0 {
		return nil, errors.New(errors.CodeStateConflict, "insufficient balance")
	}

	txn := &models.CurrencyTransaction{
		UserID:             input.UserID,
		Amount:             input.Amount,
		Type:               input.Type,
		BalanceBefore:      balanceBefore,
		BalanceAfter:       balanceAfter,
		Description:        input.Description,
		RelatedChallengeID: input.RelatedChallengeID,
		RelatedUserID:      input.RelatedUserID,
	}
	if err := repo.CreateTransaction(ctx, txn); err != nil {
		return nil, err
	}
	if err := repo.SetUserBalance(ctx, input.UserID, balanceAfter); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *service) Balance(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, errors.New(errors.CodeValidation, "user id is required")
	}
	sum, err := s.repo.SumByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int(sum), nil
}

// ListForUser returns the user's transaction feed newest-first with an opaque
// cursor for the next page.
func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.CurrencyTransaction, string, error) {
	if userID == uuid.Nil {
		return nil, "", errors.New(errors.CodeValidation, "user id is required")
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", errors.Wrap(errors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListByUserID(ctx, userID, pagination.LimitWithBuffer(params.Limit), cursor)
	if err != nil {
		return nil, "", err
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}
