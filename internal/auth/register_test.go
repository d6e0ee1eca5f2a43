package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coinquestapp/coinquest-backend/internal/ledger"
	"github.com/coinquestapp/coinquest-backend/internal/users"
	"github.com/coinquestapp/coinquest-backend/pkg/config"
	"github.com/coinquestapp/coinquest-backend/pkg/db/models"
	"github.com/coinquestapp/coinquest-backend/pkg/enums"
	pkgerrors "github.com/coinquestapp/coinquest-backend/pkg/errors"
	"github.com/coinquestapp/coinquest-backend/pkg/pagination"
	"github.com/coinquestapp/coinquest-backend/pkg/security"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

type stubUserStore struct {
	byEmail    map[string]*models.User
	byUsername map[string]*models.User
	created    *models.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{
		byEmail:    map[string]*models.User{},
		byUsername: map[string]*models.User{},
	}
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if user, ok := s.byUsername[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	user.ID = uuid.New()
	s.byEmail[dto.Email] = user
	s.byUsername[dto.Username] = user
	s.created = user
	return user, nil
}

type stubLedger struct {
	appends []ledger.AppendInput
	err     error
}

func (s *stubLedger) Append(_ context.Context, _ *gorm.DB, input ledger.AppendInput) (*models.CurrencyTransaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.appends = append(s.appends, input)
	return &models.CurrencyTransaction{ID: uuid.New(), UserID: input.UserID, Amount: input.Amount}, nil
}

func (s *stubLedger) Balance(_ context.Context, _ uuid.UUID) (int, error) {
	return 0, nil
}

func (s *stubLedger) ListForUser(_ context.Context, _ uuid.UUID, _ pagination.Params) ([]models.CurrencyTransaction, string, error) {
	return nil, "", nil
}

func newTestRegisterService(t *testing.T, store *stubUserStore, ledgerSvc *stubLedger) RegisterService {
	t.Helper()

	svc, err := NewRegisterService(RegisterServiceParams{
		DB:              stubTxRunner{},
		UserRepo:        store,
		Ledger:          ledgerSvc,
		PasswordConfig:  testPasswordConfig(),
		ChallengeConfig: config.ChallengeConfig{StartingBalance: 100},
	})
	if err != nil {
		t.Fatalf("NewRegisterService: %v", err)
	}
	return svc
}

func TestRegisterCreatesUserWithStartingBalance(t *testing.T) {
	store := newStubUserStore()
	ledgerSvc := &stubLedger{}
	svc := newTestRegisterService(t, store, ledgerSvc)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Username: "penny_pincher",
		Email:    "Penny@Example.com",
		Password: "correct-horse-battery",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Email != "penny@example.com" {
		t.Fatalf("expected lowercased email, got %q", resp.Email)
	}
	if resp.VirtualCurrency != 100 {
		t.Fatalf("expected starting balance 100, got %d", resp.VirtualCurrency)
	}

	if len(ledgerSvc.appends) != 1 {
		t.Fatalf("expected one ledger append, got %d", len(ledgerSvc.appends))
	}
	entry := ledgerSvc.appends[0]
	if entry.Amount != 100 || entry.Type != enums.TransactionTypeCredit {
		t.Fatalf("unexpected ledger entry %+v", entry)
	}

	ok, err := security.VerifyPassword("correct-horse-battery", store.created.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("stored hash must verify: ok=%v err=%v", ok, err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	store := newStubUserStore()
	svc := newTestRegisterService(t, store, &stubLedger{})

	if _, err := svc.Register(context.Background(), RegisterRequest{
		Username: "penny_pincher",
		Email:    "penny@example.com",
		Password: "correct-horse-battery",
	}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "other_name",
		Email:    "penny@example.com",
		Password: "correct-horse-battery",
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict on email, got %v", err)
	}

	_, err = svc.Register(context.Background(), RegisterRequest{
		Username: "penny_pincher",
		Email:    "other@example.com",
		Password: "correct-horse-battery",
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict on username, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestRegisterService(t, newStubUserStore(), &stubLedger{})

	cases := []RegisterRequest{
		{Username: "ab", Email: "a@example.com", Password: "correct-horse-battery"},
		{Username: "has spaces", Email: "a@example.com", Password: "correct-horse-battery"},
		{Username: "fine_name", Email: "", Password: "correct-horse-battery"},
		{Username: "fine_name", Email: "a@example.com", Password: "short"},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %+v, got %v", req, err)
		}
	}
}
