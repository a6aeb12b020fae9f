package wallet

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWalletMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func walletRows(balanceKobo int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "balance_kobo", "currency", "created_at", "updated_at"}).
		AddRow("w-1", "u-1", balanceKobo, "NGN", time.Now(), time.Now())
}

func TestCreateWallet(t *testing.T) {
	repo, mock, closer := setupWalletMock(t)
	defer closer()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO wallets (user_id, currency) VALUES ($1, $2) RETURNING id, user_id, balance_kobo, currency, created_at, updated_at")).
		WithArgs("u-1", "NGN").
		WillReturnRows(walletRows(0))

	w, err := repo.CreateWallet(context.Background(), "u-1", "NGN")
	require.NoError(t, err)
	assert.Equal(t, "u-1", w.UserID)
	assert.Equal(t, int64(0), w.BalanceKobo)
}

func TestGetByUserID_NotFound(t *testing.T) {
	repo, mock, closer := setupWalletMock(t)
	defer closer()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, balance_kobo, currency, created_at, updated_at FROM wallets WHERE user_id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUserID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestCredit(t *testing.T) {
	repo, mock, closer := setupWalletMock(t)
	defer closer()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE wallets SET balance_kobo = balance_kobo + $1, updated_at = NOW() WHERE user_id = $2")).
		WithArgs(int64(50000), "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Credit(context.Background(), "u-1", 50000)
	require.NoError(t, err)
}

func TestCredit_WalletNotFound(t *testing.T) {
	repo, mock, closer := setupWalletMock(t)
	defer closer()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE wallets SET balance_kobo = balance_kobo + $1, updated_at = NOW() WHERE user_id = $2")).
		WithArgs(int64(50000), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Credit(context.Background(), "missing", 50000)
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestCredit_InvalidAmount(t *testing.T) {
	repo, _, closer := setupWalletMock(t)
	defer closer()

	assert.ErrorIs(t, repo.Credit(context.Background(), "u-1", 0), ErrInvalidAmount)
	assert.ErrorIs(t, repo.Credit(context.Background(), "u-1", -100), ErrInvalidAmount)
}

func TestDebit(t *testing.T) {
	repo, mock, closer := setupWalletMock(t)
	defer closer()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE wallets SET balance_kobo = balance_kobo - $1, updated_at = NOW() WHERE user_id = $2 AND balance_kobo >= $1")).
		WithArgs(int64(50000), "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Debit(context.Background(), "u-1", 50000)
	require.NoError(t, err)
}

func TestDebit_InsufficientFunds(t *testing.T) {
	repo, mock, closer := setupWalletMock(t)
	defer closer()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE wallets SET balance_kobo = balance_kobo - $1, updated_at = NOW() WHERE user_id = $2 AND balance_kobo >= $1")).
		WithArgs(int64(50000), "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Conditional update touched nothing; the wallet does exist, so the
	// balance was the problem.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, balance_kobo, currency, created_at, updated_at FROM wallets WHERE user_id = $1")).
		WithArgs("u-1").
		WillReturnRows(walletRows(100))

	err := repo.Debit(context.Background(), "u-1", 50000)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestDebit_WalletNotFound(t *testing.T) {
	repo, mock, closer := setupWalletMock(t)
	defer closer()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE wallets SET balance_kobo = balance_kobo - $1, updated_at = NOW() WHERE user_id = $2 AND balance_kobo >= $1")).
		WithArgs(int64(50000), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, balance_kobo, currency, created_at, updated_at FROM wallets WHERE user_id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	err := repo.Debit(context.Background(), "missing", 50000)
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestDebit_InvalidAmount(t *testing.T) {
	repo, _, closer := setupWalletMock(t)
	defer closer()

	assert.ErrorIs(t, repo.Debit(context.Background(), "u-1", 0), ErrInvalidAmount)
}

func TestNairaToKobo(t *testing.T) {
	assert.Equal(t, int64(50000), NairaToKobo(500))
	assert.Equal(t, int64(99900), NairaToKobo(999))
	assert.Equal(t, int64(150), NairaToKobo(1.499))
	assert.Equal(t, float64(500), KoboToNaira(50000))
}
