package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/coinquestapp/coinquest-backend/pkg/db/models"
	"github.com/coinquestapp/coinquest-backend/pkg/enums"
	"github.com/coinquestapp/coinquest-backend/pkg/pagination"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
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
);`
	transactions := `
CREATE TABLE IF NOT EXISTS currency_transactions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  amount INTEGER NOT NULL,
  type TEXT NOT NULL,
  balance_before INTEGER NOT NULL,
  balance_after INTEGER NOT NULL,
  description TEXT NOT NULL,
  related_challenge_id TEXT,
  related_user_id TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(users).Error)
	require.NoError(t, db.Exec(transactions).Error)
	return db
}

func newUser(t *testing.T, db *gorm.DB, balance int) *models.User {
	t.Helper()

	user := &models.User{
		ID:              uuid.New(),
		Username:        "user-" + uuid.NewString()[:8],
		Email:           uuid.NewString()[:8] + "@example.com",
		PasswordHash:    "x",
		VirtualCurrency: balance,
		Level:           1,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newTransaction(t *testing.T, db *gorm.DB, userID uuid.UUID, amount, before int, created time.Time) *models.CurrencyTransaction {
	t.Helper()

	txn := &models.CurrencyTransaction{
		ID:            uuid.New(),
		UserID:        userID,
		Amount:        amount,
		Type:          enums.TransactionTypeChallengeWin,
		BalanceBefore: before,
		BalanceAfter:  before + amount,
		Description:   "test entry",
		CreatedAt:     created,
	}
	require.NoError(t, db.Create(txn).Error)
	return txn
}

func TestRepositoryGetUserForUpdate(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)

	user := newUser(t, db, 120)

	got, err := repo.GetUserForUpdate(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, 120, got.VirtualCurrency)

	_, err = repo.GetUserForUpdate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositorySetUserBalance(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)

	user := newUser(t, db, 10)
	require.NoError(t, repo.SetUserBalance(context.Background(), user.ID, 85))

	var reloaded models.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&reloaded).Error)
	assert.Equal(t, 85, reloaded.VirtualCurrency)
}

func TestRepositoryListByUserID_pagination(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)

	user := newUser(t, db, 0)
	other := newUser(t, db, 0)
	now := time.Now().UTC()

	oldest := newTransaction(t, db, user.ID, 10, 0, now.Add(-2*time.Hour))
	middle := newTransaction(t, db, user.ID, -5, 10, now.Add(-time.Hour))
	newest := newTransaction(t, db, user.ID, 20, 5, now)
	newTransaction(t, db, other.ID, 99, 0, now)

	page, err := repo.ListByUserID(context.Background(), user.ID, 2, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, newest.ID, page[0].ID)
	assert.Equal(t, middle.ID, page[1].ID)

	cursor := &pagination.Cursor{CreatedAt: page[1].CreatedAt, ID: page[1].ID}
	rest, err := repo.ListByUserID(context.Background(), user.ID, 2, cursor)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, oldest.ID, rest[0].ID)
}

func TestRepositorySumByUserID(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)

	user := newUser(t, db, 0)
	now := time.Now().UTC()
	newTransaction(t, db, user.ID, 100, 0, now.Add(-time.Minute))
	newTransaction(t, db, user.ID, -40, 100, now)

	sum, err := repo.SumByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(60), sum)

	empty, err := repo.SumByUserID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, empty)
}
