package kyc

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

func setupKycMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func kycColumns() []string {
	return []string{
		"id", "user_id", "bvn", "first_name", "last_name", "date_of_birth",
		"phone_number", "identification_type", "status", "created_at", "updated_at",
	}
}

func TestCreateRecord(t *testing.T) {
	repo, mock, closer := setupKycMock(t)
	defer closer()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO kyc_records")).
		WithArgs("u-1", "12345678901", "Ade", "Okafor", "1990-04-12", "+2348031234567", "NIN", StatusVerified).
		WillReturnRows(sqlmock.NewRows(kycColumns()).
			AddRow("kyc-1", "u-1", "12345678901", "Ade", "Okafor", "1990-04-12",
				"+2348031234567", "NIN", StatusVerified, time.Now(), time.Now()))

	rec, err := repo.Create(context.Background(), &Record{
		UserID:             "u-1",
		BVN:                "12345678901",
		FirstName:          "Ade",
		LastName:           "Okafor",
		DateOfBirth:        "1990-04-12",
		PhoneNumber:        "+2348031234567",
		IdentificationType: "NIN",
		Status:             StatusVerified,
	})
	require.NoError(t, err)
	assert.Equal(t, "kyc-1", rec.ID)
	assert.Equal(t, StatusVerified, rec.Status)
}

func TestFindByUserID_NotFound(t *testing.T) {
	repo, mock, closer := setupKycMock(t)
	defer closer()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, bvn, first_name, last_name, date_of_birth, phone_number, identification_type, status, created_at, updated_at FROM kyc_records WHERE user_id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUserID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrKycNotFound)
}

func TestExistsForUser(t *testing.T) {
	repo, mock, closer := setupKycMock(t)
	defer closer()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM kyc_records WHERE user_id = $1)")).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsForUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.True(t, exists)
}
