package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/John-Akins/jago-backend/internal/db"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	Create(ctx context.Context, email, name, passwordHash string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, email, name, passwordHash string) (*User, error) {
	u := &User{}
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO users (email, name, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, name, password_hash, email_verified, created_at, updated_at`,
		email, name, passwordHash,
	).StructScan(u)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	u := &User{}
	err := r.db.GetContext(ctx, u,
		`SELECT id, email, name, password_hash, email_verified, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id string) (*User, error) {
	u := &User{}
	err := r.db.GetContext(ctx, u,
		`SELECT id, email, name, password_hash, email_verified, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *postgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`,
		email,
	)
}
