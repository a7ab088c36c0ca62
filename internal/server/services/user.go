// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and per-request token
// verification.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/auth"
	"github.com/dmitrijs2005/inkwell/internal/server/config"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create credentials and mint a session token
// - Login: verify credentials and mint a session token
// - Authenticate: recover the verified subject id from a bearer token
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a credential for the given username/email and returns the
// stored user together with a fresh session token. A taken username or email
// yields common.ErrorConflict; the unique indexes in the store decide, so two
// concurrent registrations cannot both win.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, "", common.ErrorConflict
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateToken(u.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return u, token, nil
}

// Login verifies the password for the credential registered under email and,
// on success, returns the user and a new session token. An unknown email and
// a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorInvalidCredentials
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", common.ErrorInvalidCredentials
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Authenticate recovers the verified subject id from a session token. Every
// failure mode (missing, malformed, bad signature, expired) collapses to
// common.ErrorUnauthorized at this boundary.
func (s *UserService) Authenticate(token string) (string, error) {
	if token == "" {
		return "", common.ErrorUnauthorized
	}
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return "", common.ErrorUnauthorized
	}
	return userID, nil
}

// GetProfile returns the sanitized profile for a verified subject id.
// A token whose subject no longer resolves is treated as unauthorized.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.PublicUser, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return user.Public(), nil
}

func (s *UserService) generateToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.tokenValidityDuration)
}
