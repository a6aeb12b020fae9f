package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/John-Akins/jago-backend/internal/auth"
	"github.com/John-Akins/jago-backend/internal/logger"
	"github.com/John-Akins/jago-backend/internal/wallet"
)

var (
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*User, error)
	Signin(ctx context.Context, req SigninRequest) (*User, string, error)
	GetByID(ctx context.Context, userID string) (*User, error)
}

type service struct {
	repo       Repository
	walletRepo wallet.Repository
	jwtSecret  string
}

func NewService(repo Repository, walletRepo wallet.Repository, jwtSecret string) Service {
	return &service{
		repo:       repo,
		walletRepo: walletRepo,
		jwtSecret:  jwtSecret,
	}
}

// Signup registers the user and opens their NGN wallet in the same flow, so
// every user has a wallet before the first funding request.
func (s *service) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, req.Email, req.Name, passwordHash)
	if err != nil {
		return nil, err
	}

	if _, err := s.walletRepo.CreateWallet(ctx, u.ID, "NGN"); err != nil {
		return nil, fmt.Errorf("failed to create wallet for new user: %w", err)
	}

	logger.Info("user registered", "user_id", u.ID)

	return u, nil
}

func (s *service) Signin(ctx context.Context, req SigninRequest) (*User, string, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(u.ID, u.Email, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

func (s *service) GetByID(ctx context.Context, userID string) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}
