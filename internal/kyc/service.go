package kyc

import (
	"context"
	"errors"

	"github.com/John-Akins/jago-backend/internal/logger"
	"github.com/John-Akins/jago-backend/internal/user"
)

const StatusVerified = "VERIFIED"

var ErrInvalidBVN = errors.New("bvn must be exactly 11 digits")

type Service interface {
	Submit(ctx context.Context, userID string, req SubmitRequest) (*Record, error)
	GetByUserID(ctx context.Context, userID string) (*Record, error)
}

type service struct {
	repo     Repository
	userRepo user.Repository
}

func NewService(repo Repository, userRepo user.Repository) Service {
	return &service{repo: repo, userRepo: userRepo}
}

// Submit verifies the caller's BVN and stores the resolved identity. There is
// no live BVN registry here; the identity is derived deterministically from
// the BVN so repeated submissions of the same number resolve identically.
func (s *service) Submit(ctx context.Context, userID string, req SubmitRequest) (*Record, error) {
	if !validBVN(req.BVN) {
		return nil, ErrInvalidBVN
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrKycExists
	}

	gen := newIdentityGenerator(req.BVN)
	rec := &Record{
		UserID:             userID,
		BVN:                req.BVN,
		FirstName:          gen.FirstName(),
		LastName:           gen.LastName(),
		DateOfBirth:        gen.DateOfBirth(),
		PhoneNumber:        gen.PhoneNumber(),
		IdentificationType: req.IdentificationType,
		Status:             StatusVerified,
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, err
	}

	logger.Info("kyc verified", "user_id", userID, "identification_type", req.IdentificationType)

	return created, nil
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*Record, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func validBVN(bvn string) bool {
	if len(bvn) != 11 {
		return false
	}
	for _, c := range bvn {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
