// AngelaMos | 2026
// dto.go

package auth

import (
	"context"
	"time"
)

// Account is the auth-facing view of a stored user. The user package
// adapts its entity into this shape so auth never depends on it.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	Permissions  map[string]bool
}

// UserProvider is implemented by the user service.
type UserProvider interface {
	FindByIdentifier(ctx context.Context, identifier string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	SetPassword(ctx context.Context, id, hash string) error
	RecordLogin(ctx context.Context, id string, at time.Time) error
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}

type UserInfo struct {
	ID          string          `json:"id"`
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type VerifyResponse struct {
	Valid bool     `json:"valid"`
	User  UserInfo `json:"user"`
}

func toUserInfo(account *Account) UserInfo {
	return UserInfo{
		ID:          account.ID,
		Username:    account.Username,
		Email:       account.Email,
		Role:        account.Role,
		Permissions: account.Permissions,
	}
}
