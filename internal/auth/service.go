package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clientdesk/portal/internal/config"
	"github.com/clientdesk/portal/internal/user"
)

const tokenTTL = 30 * 24 * time.Hour

// credentialsStore looks up stored password hashes. Satisfied by Repository;
// tests substitute a fake.
type credentialsStore interface {
	GetCredentials(ctx context.Context, email string) (*credentials, error)
}

// userGetter loads the profile of an authenticated user.
type userGetter interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// Service contains the business logic for password-based sign-in.
type Service struct {
	repo    credentialsStore
	userSvc userGetter
	cfg     *config.Config
}

// NewService creates a new auth Service.
func NewService(repo credentialsStore, userSvc userGetter, cfg *config.Config) *Service {
	return &Service{repo: repo, userSvc: userSvc, cfg: cfg}
}

// Login verifies the email/password pair and returns a signed session token
// together with the user profile. Unknown emails and wrong passwords both
// return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	creds, err := s.repo.GetCredentials(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	u, err := s.userSvc.GetByID(ctx, creds.UserID)
	if err != nil {
		return "", nil, fmt.Errorf("load user profile: %w", err)
	}

	token, err := s.issueToken(u)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, u, nil
}

// issueToken creates a signed JWT carrying the caller identity claims.
func (s *Service) issueToken(u *user.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	if u.AccountType != nil {
		claims["accountType"] = *u.AccountType
	}
	if u.OrgID != nil {
		claims["orgId"] = *u.OrgID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
