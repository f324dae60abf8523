package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/example/task-manager-api/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	jwtConfig := JWTConfig{
		SecretKey: "test-secret-key",
		TokenTTL:  60 * time.Minute,
		Issuer:    "test-issuer",
	}

	return NewAuthService(
		NewUserRepository(db),
		NewPasswordHasher(),
		NewJWTManager(jwtConfig),
		NewMemoryBlocklist(),
	)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.ID == "" {
		t.Error("Register() returned user without ID")
	}
	if user.Name != "Alice" {
		t.Errorf("user.Name = %v, want Alice", user.Name)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("user.Email = %v, want alice@example.com", user.Email)
	}
	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Error("Register() stored the password without hashing it")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	ctx := context.Background()

	longString := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'a'
		}
		return string(b)
	}

	tests := []struct {
		name         string
		userName     string
		email        string
		password     string
		confirmation string
		wantErr      error
	}{
		{
			name:         "missing name",
			userName:     "",
			email:        "a@example.com",
			password:     "secret1",
			confirmation: "secret1",
			wantErr:      ErrNameRequired,
		},
		{
			name:         "name too long",
			userName:     longString(256),
			email:        "a@example.com",
			password:     "secret1",
			confirmation: "secret1",
			wantErr:      ErrNameTooLong,
		},
		{
			name:         "invalid email",
			userName:     "Alice",
			email:        "not-an-email",
			password:     "secret1",
			confirmation: "secret1",
			wantErr:      ErrInvalidEmail,
		},
		{
			name:         "password too short",
			userName:     "Alice",
			email:        "a@example.com",
			password:     "abcd",
			confirmation: "abcd",
			wantErr:      ErrWeakPassword,
		},
		{
			name:         "password too long",
			userName:     "Alice",
			email:        "a@example.com",
			password:     longString(73),
			confirmation: longString(73),
			wantErr:      ErrPasswordTooLong,
		},
		{
			name:         "confirmation mismatch",
			userName:     "Alice",
			email:        "a@example.com",
			password:     "secret1",
			confirmation: "secret2",
			wantErr:      ErrPasswordMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			_, err := svc.Register(ctx, tt.userName, tt.email, tt.password, tt.confirmation)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "secret1", "secret1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Register(ctx, "Other Alice", "alice@example.com", "secret2", "secret2")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("Register() error = %v, want ErrUserExists", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, err := svc.Login(ctx, "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if token.Token == "" {
		t.Error("Login() returned empty token")
	}
	if token.TokenType != "Bearer" {
		t.Errorf("token.TokenType = %v, want Bearer", token.TokenType)
	}
	if token.ExpiresIn != 60*60 {
		t.Errorf("token.ExpiresIn = %v, want %v", token.ExpiresIn, 60*60)
	}

	claims, err := svc.ValidateToken(ctx, token.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, user.ID)
	}
	if claims.Email != user.Email {
		t.Errorf("claims.Email = %v, want %v", claims.Email, user.Email)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "secret1", "secret1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "wrong-password",
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "secret1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "secret1", "secret1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	token, err := svc.Login(ctx, "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := svc.Logout(ctx, token.Token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	_, err = svc.ValidateToken(ctx, token.Token)
	if !errors.Is(err, ErrRevokedToken) {
		t.Errorf("ValidateToken() after logout error = %v, want ErrRevokedToken", err)
	}

	// A revoked token cannot be logged out or refreshed again.
	if err := svc.Logout(ctx, token.Token); !errors.Is(err, ErrRevokedToken) {
		t.Errorf("Logout() of revoked token error = %v, want ErrRevokedToken", err)
	}
	if _, err := svc.Refresh(ctx, token.Token); !errors.Is(err, ErrRevokedToken) {
		t.Errorf("Refresh() of revoked token error = %v, want ErrRevokedToken", err)
	}
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	oldToken, err := svc.Login(ctx, "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	newToken, err := svc.Refresh(ctx, oldToken.Token)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if newToken.Token == oldToken.Token {
		t.Error("Refresh() returned the same token")
	}

	// The old token is revoked, the new one works.
	if _, err := svc.ValidateToken(ctx, oldToken.Token); !errors.Is(err, ErrRevokedToken) {
		t.Errorf("ValidateToken() of old token error = %v, want ErrRevokedToken", err)
	}
	claims, err := svc.ValidateToken(ctx, newToken.Token)
	if err != nil {
		t.Fatalf("ValidateToken() of new token error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, user.ID)
	}
}

func TestAuthService_GetUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Register(ctx, "Alice", "alice@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := svc.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("user.Email = %v, want alice@example.com", user.Email)
	}

	_, err = svc.GetUser(ctx, "missing-id")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUser() error = %v, want ErrUserNotFound", err)
	}
}
