package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	domain "github.com/example/task-manager-api/domain/user"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidEmail is returned when email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrEmailTooLong is returned when email exceeds the column limit.
	ErrEmailTooLong = errors.New("email must be at most 255 characters")
	// ErrNameRequired is returned when the name is missing.
	ErrNameRequired = errors.New("name is required")
	// ErrNameTooLong is returned when the name exceeds the column limit.
	ErrNameTooLong = errors.New("name must be at most 255 characters")
	// ErrWeakPassword is returned when password is too short.
	ErrWeakPassword = errors.New("password must be at least 5 characters")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
	// ErrPasswordMismatch is returned when password confirmation differs.
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	// ErrRevokedToken is returned when the token's jti is on the blocklist.
	ErrRevokedToken = errors.New("token has been revoked")
)

// AuthService handles authentication business logic.
type AuthService struct {
	repo      *UserRepository
	hasher    *PasswordHasher
	jwt       *JWTManager
	blocklist Blocklist
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager, blocklist Blocklist) *AuthService {
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		jwt:       jwt,
		blocklist: blocklist,
	}
}

// Register creates a new user account. The password is stored only as a
// salted bcrypt hash.
func (s *AuthService) Register(_ context.Context, name, email, password, passwordConfirmation string) (*domain.User, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(name) > 255 {
		return nil, ErrNameTooLong
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(email) > 255 {
		return nil, ErrEmailTooLong
	}

	if len(password) < 5 {
		return nil, ErrWeakPassword
	}
	if len(password) > 72 {
		return nil, ErrPasswordTooLong
	}
	if password != passwordConfirmation {
		return nil, ErrPasswordMismatch
	}

	exists, err := s.repo.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns a bearer token.
func (s *AuthService) Login(_ context.Context, email, password string) (*domain.Token, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user.ID, user.Email)
}

// Logout revokes the presented token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.resolveClaims(ctx, token)
	if err != nil {
		return err
	}
	if err := s.blocklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// Refresh revokes the presented token and issues a fresh one for the same
// user.
func (s *AuthService) Refresh(ctx context.Context, token string) (*domain.Token, error) {
	claims, err := s.resolveClaims(ctx, token)
	if err != nil {
		return nil, err
	}

	// Verify the user still exists before issuing a new token.
	user, err := s.repo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.blocklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return nil, fmt.Errorf("failed to revoke token: %w", err)
	}

	return s.issueToken(user.ID, user.Email)
}

// ValidateToken validates a bearer token against signature, expiry and the
// blocklist, and returns its claims.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	claims, err := s.resolveClaims(ctx, token)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{
		UserID:  claims.UserID,
		Email:   claims.Email,
		TokenID: claims.ID,
	}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(_ context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(userID)
}

// resolveClaims parses and verifies a token, then checks revocation.
func (s *AuthService) resolveClaims(ctx context.Context, token string) (*JWTClaims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.blocklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, ErrRevokedToken
	}

	return claims, nil
}

// issueToken signs a new token for the user.
func (s *AuthService) issueToken(userID, email string) (*domain.Token, error) {
	signed, err := s.jwt.GenerateToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &domain.Token{
		Token:     signed,
		ExpiresIn: s.jwt.TokenTTL(),
		TokenType: "Bearer",
	}, nil
}
