package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coinquestapp/coinquest-backend/pkg/db/models"
	"github.com/coinquestapp/coinquest-backend/pkg/enums"
	apperrors "github.com/coinquestapp/coinquest-backend/pkg/errors"
	"github.com/coinquestapp/coinquest-backend/pkg/pagination"
)

type fakeRepository struct {
	user        *models.User
	getErr      error
	createErr   error
	created     *models.CurrencyTransaction
	setBalance  *int
	listRows    []models.CurrencyTransaction
	sumResult   int64
	sumErr      error
	lockedCalls int
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) GetUserForUpdate(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	f.lockedCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.user == nil || f.user.ID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.user, nil
}

func (f *fakeRepository) CreateTransaction(ctx context.Context, txn *models.CurrencyTransaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = txn
	return nil
}

func (f *fakeRepository) SetUserBalance(ctx context.Context, userID uuid.UUID, balance int) error {
	f.setBalance = &balance
	return nil
}

func (f *fakeRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.CurrencyTransaction, error) {
	if limit < len(f.listRows) {
		return f.listRows[:limit], nil
	}
	return f.listRows, nil
}

func (f *fakeRepository) SumByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	return f.sumResult, f.sumErr
}

func TestService_AppendCredit(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepository{user: &models.User{ID: userID, VirtualCurrency: 100}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	challengeID := uuid.New()
	txn, err := svc.Append(context.Background(), &gorm.DB{}, AppendInput{
		UserID:             userID,
		Amount:             50,
		Type:               enums.TransactionTypeChallengeWin,
		Description:        "won wagered challenge",
		RelatedChallengeID: &challengeID,
	})
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if txn.BalanceBefore != 100 || txn.BalanceAfter != 150 {
		t.Fatalf("unexpected balances: before=%d after=%d", txn.BalanceBefore, txn.BalanceAfter)
	}
	if repo.created != txn {
		t.Fatal("expected transaction to be persisted")
	}
	if repo.setBalance == nil || *repo.setBalance != 150 {
		t.Fatalf("expected balance write of 150, got %v", repo.setBalance)
	}
	if repo.lockedCalls != 1 {
		t.Fatalf("expected one locked read, got %d", repo.lockedCalls)
	}
	if txn.RelatedChallengeID == nil || *txn.RelatedChallengeID != challengeID {
		t.Fatal("related challenge id not preserved")
	}
}

func TestService_AppendDebitInsufficient(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepository{user: &models.User{ID: userID, VirtualCurrency: 30}}
	svc, _ := NewService(repo)

	_, err := svc.Append(context.Background(), &gorm.DB{}, AppendInput{
		UserID:      userID,
		Amount:      -50,
		Type:        enums.TransactionTypeChallengeLoss,
		Description: "lost wagered challenge",
	})
	if err == nil {
		t.Fatal("expected insufficient balance error")
	}
	typed := apperrors.As(err)
	if typed == nil || typed.Code() != apperrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("no transaction should be written on failure")
	}
}

func TestService_AppendValidation(t *testing.T) {
	repo := &fakeRepository{}
	svc, _ := NewService(repo)

	tests := []struct {
		name  string
		tx    *gorm.DB
		input AppendInput
	}{
		{
			name: "missing transaction",
			tx:   nil,
			input: AppendInput{
				UserID:      uuid.New(),
				Amount:      10,
				Type:        enums.TransactionTypeChallengeWin,
				Description: "x",
			},
		},
		{
			name: "missing user id",
			tx:   &gorm.DB{},
			input: AppendInput{
				Amount:      10,
				Type:        enums.TransactionTypeChallengeWin,
				Description: "x",
			},
		},
		{
			name: "zero amount",
			tx:   &gorm.DB{},
			input: AppendInput{
				UserID:      uuid.New(),
				Type:        enums.TransactionTypeChallengeWin,
				Description: "x",
			},
		},
		{
			name: "invalid type",
			tx:   &gorm.DB{},
			input: AppendInput{
				UserID:      uuid.New(),
				Amount:      10,
				Type:        enums.TransactionType("not_real"),
				Description: "x",
			},
		},
		{
			name: "missing description",
			tx:   &gorm.DB{},
			input: AppendInput{
				UserID: uuid.New(),
				Amount: 10,
				Type:   enums.TransactionTypeChallengeWin,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Append(context.Background(), tc.tx, tc.input); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestService_AppendUserNotFound(t *testing.T) {
	repo := &fakeRepository{}
	svc, _ := NewService(repo)

	_, err := svc.Append(context.Background(), &gorm.DB{}, AppendInput{
		UserID:      uuid.New(),
		Amount:      10,
		Type:        enums.TransactionTypeChallengeWin,
		Description: "x",
	})
	typed := apperrors.As(err)
	if typed == nil || typed.Code() != apperrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_AppendRepoError(t *testing.T) {
	userID := uuid.New()
	expectedErr := errors.New("boom")
	repo := &fakeRepository{
		user:      &models.User{ID: userID, VirtualCurrency: 10},
		createErr: expectedErr,
	}
	svc, _ := NewService(repo)

	if _, err := svc.Append(context.Background(), &gorm.DB{}, AppendInput{
		UserID:      userID,
		Amount:      5,
		Type:        enums.TransactionTypeDailyChallengeReward,
		Description: "daily reward",
	}); !errors.Is(err, expectedErr) {
		t.Fatalf("expected repo error to bubble up, got %v", err)
	}
}

func TestService_Balance(t *testing.T) {
	repo := &fakeRepository{sumResult: 275}
	svc, _ := NewService(repo)

	balance, err := svc.Balance(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	if balance != 275 {
		t.Fatalf("expected 275, got %d", balance)
	}
}
