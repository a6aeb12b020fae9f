package kyc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/John-Akins/jago-backend/internal/db"
)

var (
	ErrKycNotFound = errors.New("kyc record not found")
	ErrKycExists   = errors.New("kyc already submitted for user")
)

type Repository interface {
	Create(ctx context.Context, rec *Record) (*Record, error)
	FindByUserID(ctx context.Context, userID string) (*Record, error)
	ExistsForUser(ctx context.Context, userID string) (bool, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, rec *Record) (*Record, error) {
	created := &Record{}
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO kyc_records (user_id, bvn, first_name, last_name, date_of_birth, phone_number, identification_type, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, user_id, bvn, first_name, last_name, date_of_birth, phone_number, identification_type, status, created_at, updated_at`,
		rec.UserID, rec.BVN, rec.FirstName, rec.LastName, rec.DateOfBirth,
		rec.PhoneNumber, rec.IdentificationType, rec.Status,
	).StructScan(created)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *postgresRepository) FindByUserID(ctx context.Context, userID string) (*Record, error) {
	rec := &Record{}
	err := r.db.GetContext(ctx, rec,
		`SELECT id, user_id, bvn, first_name, last_name, date_of_birth, phone_number, identification_type, status, created_at, updated_at
		 FROM kyc_records WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKycNotFound
		}
		return nil, err
	}

	return rec, nil
}

func (r *postgresRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	return db.Exists(ctx, r.db,
		`SELECT EXISTS(SELECT 1 FROM kyc_records WHERE user_id = $1)`,
		userID,
	)
}
