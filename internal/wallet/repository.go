package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrWalletNotFound    = errors.New("wallet not found for user")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrInvalidAmount     = errors.New("amount must be a positive number")
)

type Repository interface {
	CreateWallet(ctx context.Context, userID, currency string) (*Wallet, error)
	GetByUserID(ctx context.Context, userID string) (*Wallet, error)
	Credit(ctx context.Context, userID string, amountKobo int64) error
	Debit(ctx context.Context, userID string, amountKobo int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateWallet(ctx context.Context, userID, currency string) (*Wallet, error) {
	w := &Wallet{}
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO wallets (user_id, currency)
		 VALUES ($1, $2)
		 RETURNING id, user_id, balance_kobo, currency, created_at, updated_at`,
		userID, currency,
	).StructScan(w)
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	return w, nil
}

func (r *postgresRepository) GetByUserID(ctx context.Context, userID string) (*Wallet, error) {
	w := &Wallet{}
	err := r.db.GetContext(ctx, w,
		`SELECT id, user_id, balance_kobo, currency, created_at, updated_at
		 FROM wallets WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}

	return w, nil
}

// Credit adds amountKobo to the wallet in a single unconditional update.
func (r *postgresRepository) Credit(ctx context.Context, userID string, amountKobo int64) error {
	if amountKobo <= 0 {
		return ErrInvalidAmount
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE wallets
		 SET balance_kobo = balance_kobo + $1, updated_at = NOW()
		 WHERE user_id = $2`,
		amountKobo, userID,
	)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrWalletNotFound
	}

	return nil
}

// Debit subtracts amountKobo only if the balance covers it. The conditional
// single-statement update keeps concurrent debits on one wallet linearizable
// without read-then-write races.
func (r *postgresRepository) Debit(ctx context.Context, userID string, amountKobo int64) error {
	if amountKobo <= 0 {
		return ErrInvalidAmount
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE wallets
		 SET balance_kobo = balance_kobo - $1, updated_at = NOW()
		 WHERE user_id = $2 AND balance_kobo >= $1`,
		amountKobo, userID,
	)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Zero rows means either no wallet or not enough balance.
		if _, err := r.GetByUserID(ctx, userID); err != nil {
			return err
		}
		return ErrInsufficientFunds
	}

	return nil
}
