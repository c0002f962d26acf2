// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/leadtrack/internal/core"
	"github.com/carterperez-dev/leadtrack/internal/middleware"
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ChangePassword(
		ctx context.Context,
		userID string,
		req ChangePasswordRequest,
	) error

	middleware.IdentityVerifier
}

type service struct {
	users  UserProvider
	jwt    *JWTManager
	logger *slog.Logger
}

func NewService(
	users UserProvider,
	jwt *JWTManager,
	logger *slog.Logger,
) Service {
	return &service{
		users:  users,
		jwt:    jwt,
		logger: logger,
	}
}

// Login verifies credentials against the stored hash. The password
// check runs even when no account matches, so response timing does not
// reveal which identifiers exist.
func (s *service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResponse, error) {
	account, err := s.users.FindByIdentifier(ctx, req.Identifier)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	var storedHash *string
	if account != nil {
		storedHash = &account.PasswordHash
	}

	match, err := core.VerifyPasswordTimingSafe(req.Password, storedHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if account == nil || !match {
		return nil, fmt.Errorf("invalid credentials: %w", core.ErrUnauthorized)
	}

	if !account.IsActive {
		return nil, fmt.Errorf("account disabled: %w", core.ErrUnauthorized)
	}

	token, err := s.jwt.CreateToken(TokenClaims{
		UserID:   account.ID,
		Username: account.Username,
		Role:     account.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	if err := s.users.RecordLogin(ctx, account.ID, time.Now()); err != nil {
		s.logger.Warn("record last login failed",
			slog.String("user_id", account.ID),
			slog.String("error", err.Error()),
		)
	}

	return &LoginResponse{
		Token: token,
		User:  toUserInfo(account),
	}, nil
}

// Authenticate resolves a bearer token to a live identity. Permissions
// come from the account's current role, not from the token, so a role
// change takes effect on the next request.
func (s *service) Authenticate(
	ctx context.Context,
	token string,
) (*middleware.Identity, error) {
	claims, err := s.jwt.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	account, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if !account.IsActive {
		return nil, fmt.Errorf("account disabled: %w", core.ErrUnauthorized)
	}

	return &middleware.Identity{
		UserID:      account.ID,
		Username:    account.Username,
		Email:       account.Email,
		Role:        account.Role,
		Permissions: account.Permissions,
	}, nil
}

func (s *service) ChangePassword(
	ctx context.Context,
	userID string,
	req ChangePasswordRequest,
) error {
	account, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	match, err := core.VerifyPassword(req.CurrentPassword, account.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return fmt.Errorf(
			"current password incorrect: %w", core.ErrUnauthorized)
	}

	hash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.users.SetPassword(ctx, userID, hash)
}
