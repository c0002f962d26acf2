// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/carterperez-dev/leadtrack/internal/config"
	"github.com/carterperez-dev/leadtrack/internal/core"
)

type fakeProvider struct {
	account    *Account
	lastLogin  time.Time
	newHash    string
	loginCalls int
}

func (f *fakeProvider) FindByIdentifier(
	_ context.Context,
	identifier string,
) (*Account, error) {
	if f.account == nil ||
		(identifier != f.account.Username && identifier != f.account.Email) {
		return nil, fmt.Errorf("lookup: %w", core.ErrNotFound)
	}
	return f.account, nil
}

func (f *fakeProvider) FindByID(
	_ context.Context,
	id string,
) (*Account, error) {
	if f.account == nil || id != f.account.ID {
		return nil, fmt.Errorf("lookup: %w", core.ErrNotFound)
	}
	return f.account, nil
}

func (f *fakeProvider) SetPassword(_ context.Context, _, hash string) error {
	f.newHash = hash
	return nil
}

func (f *fakeProvider) RecordLogin(
	_ context.Context,
	_ string,
	at time.Time,
) error {
	f.loginCalls++
	f.lastLogin = at
	return nil
}

func newTestJWT(t *testing.T) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	private := filepath.Join(dir, "jwt.pem")
	public := filepath.Join(dir, "jwt.pub.pem")

	if err := GenerateKeyPair(private, public); err != nil {
		t.Fatalf("generate key pair: %v", err)
	}

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    private,
		PublicKeyPath:     public,
		AccessTokenExpire: time.Hour,
		Issuer:            "leadtrack-test",
		Audience:          "leadtrack",
	})
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}

	return manager
}

func newTestAccount(t *testing.T) *Account {
	t.Helper()

	hash, err := core.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	return &Account{
		ID:           "u-1",
		Username:     "jane",
		Email:        "jane@example.com",
		PasswordHash: hash,
		Role:         "manager",
		IsActive:     true,
		Permissions: map[string]bool{
			"viewSubmissions": true,
			"exportData":      true,
			"viewAnalytics":   true,
		},
	}
}

func newTestService(t *testing.T, provider *fakeProvider) Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(provider, newTestJWT(t), logger)
}

func TestLoginRoundTrip(t *testing.T) {
	provider := &fakeProvider{account: newTestAccount(t)}
	svc := newTestService(t, provider)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Identifier: "jane@example.com",
		Password:   "correct horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if resp.Token == "" {
		t.Fatal("empty token")
	}
	if resp.User.Role != "manager" || !resp.User.Permissions["exportData"] {
		t.Errorf("user payload = %+v", resp.User)
	}
	if provider.loginCalls != 1 {
		t.Errorf("RecordLogin called %d times", provider.loginCalls)
	}

	identity, err := svc.Authenticate(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if identity.UserID != "u-1" || identity.Role != "manager" {
		t.Errorf("identity = %+v", identity)
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	provider := &fakeProvider{account: newTestAccount(t)}
	svc := newTestService(t, provider)

	_, wrongPassword := svc.Login(context.Background(), LoginRequest{
		Identifier: "jane",
		Password:   "wrong",
	})
	_, unknownUser := svc.Login(context.Background(), LoginRequest{
		Identifier: "nobody",
		Password:   "wrong",
	})

	if wrongPassword == nil || unknownUser == nil {
		t.Fatal("expected both logins to fail")
	}
	if !errors.Is(wrongPassword, core.ErrUnauthorized) ||
		!errors.Is(unknownUser, core.ErrUnauthorized) {
		t.Error("failures should map to the unauthorized sentinel")
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Errorf("messages differ, leaking user existence: %q vs %q",
			wrongPassword, unknownUser)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	account := newTestAccount(t)
	account.IsActive = false
	svc := newTestService(t, &fakeProvider{account: account})

	_, err := svc.Login(context.Background(), LoginRequest{
		Identifier: "jane",
		Password:   "correct horse",
	})
	if !errors.Is(err, core.ErrUnauthorized) {
		t.Errorf("err = %v, want unauthorized", err)
	}
}

func TestAuthenticateRejectsDeactivatedUser(t *testing.T) {
	provider := &fakeProvider{account: newTestAccount(t)}
	svc := newTestService(t, provider)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Identifier: "jane",
		Password:   "correct horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	provider.account.IsActive = false

	if _, err := svc.Authenticate(context.Background(), resp.Token); err == nil {
		t.Error("deactivated user's token should be rejected")
	}
}

func TestAuthenticateGarbageToken(t *testing.T) {
	svc := newTestService(t, &fakeProvider{account: newTestAccount(t)})

	_, err := svc.Authenticate(context.Background(), "not.a.jwt")
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Errorf("err = %v, want token invalid", err)
	}
}

func TestChangePassword(t *testing.T) {
	provider := &fakeProvider{account: newTestAccount(t)}
	svc := newTestService(t, provider)

	err := svc.ChangePassword(context.Background(), "u-1",
		ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "new password",
		})
	if !errors.Is(err, core.ErrUnauthorized) {
		t.Errorf("wrong current password: err = %v", err)
	}
	if provider.newHash != "" {
		t.Error("password stored despite failed verification")
	}

	err = svc.ChangePassword(context.Background(), "u-1",
		ChangePasswordRequest{
			CurrentPassword: "correct horse",
			NewPassword:     "new password",
		})
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if provider.newHash == "" {
		t.Error("new hash not stored")
	}

	match, err := core.VerifyPassword("new password", provider.newHash)
	if err != nil || !match {
		t.Errorf("stored hash does not verify: match=%v err=%v", match, err)
	}
}
