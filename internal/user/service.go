// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/leadtrack/internal/auth"
	"github.com/carterperez-dev/leadtrack/internal/core"
)

type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	GetUser(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context) ([]UserResponse, error)
	UpdateUser(
		ctx context.Context,
		id string,
		req UpdateUserRequest,
	) (*UserResponse, error)

	auth.UserProvider
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateUser(
	ctx context.Context,
	req CreateUserRequest,
) (*UserResponse, error) {
	role := req.Role
	if role == "" {
		role = RoleAnalyst
	}
	if !ValidRole(role) {
		return nil, fmt.Errorf("invalid role %q: %w", role, core.ErrInvalidInput)
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("username or email taken: %w", core.ErrDuplicateKey)
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

func (s *service) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

func (s *service) ListUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserResponseList(users), nil
}

func (s *service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		if !ValidRole(*req.Role) {
			return nil, fmt.Errorf(
				"invalid role %q: %w", *req.Role, core.ErrInvalidInput)
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

// FindByIdentifier and the methods below satisfy auth.UserProvider.

func (s *service) FindByIdentifier(
	ctx context.Context,
	identifier string,
) (*auth.Account, error) {
	user, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return toAccount(user), nil
}

func (s *service) FindByID(
	ctx context.Context,
	id string,
) (*auth.Account, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAccount(user), nil
}

func (s *service) SetPassword(ctx context.Context, id, hash string) error {
	return s.repo.UpdatePassword(ctx, id, hash)
}

func (s *service) RecordLogin(
	ctx context.Context,
	id string,
	at time.Time,
) error {
	return s.repo.UpdateLastLogin(ctx, id, at)
}

func toAccount(u *User) *auth.Account {
	return &auth.Account{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		IsActive:     u.IsActive,
		Permissions:  u.Permissions().Map(),
	}
}
