package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	domain "github.com/example/task-manager-api/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AuthModule provides authentication services.
type AuthModule struct {
	db        *gorm.DB
	rdb       *redis.Client
	service   *AuthService
	dbPath    string
	redisAddr string
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule.
func NewModule() *AuthModule {
	dbPath := os.Getenv("AUTH_DB_PATH")
	if dbPath == "" {
		dbPath = "auth.db"
	}
	return &AuthModule{
		dbPath:    dbPath,
		redisAddr: os.Getenv("AUTH_REDIS_ADDR"),
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start initializes the auth module.
func (m *AuthModule) Start(ctx context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	blocklist, err := m.openBlocklist(ctx)
	if err != nil {
		return err
	}

	repo := NewUserRepository(db)
	hasher := NewPasswordHasher()
	jwtManager := NewJWTManager(loadJWTConfig())

	m.service = NewAuthService(repo, hasher, jwtManager, blocklist)

	log.Printf("[auth] Module started (database: %s)", m.dbPath)
	return nil
}

// openBlocklist connects the Redis blocklist when AUTH_REDIS_ADDR is set,
// otherwise falls back to the in-process store.
func (m *AuthModule) openBlocklist(ctx context.Context) (Blocklist, error) {
	if m.redisAddr == "" {
		log.Println("[auth] Token blocklist: in-memory")
		return NewMemoryBlocklist(), nil
	}

	m.rdb = redis.NewClient(&redis.Options{
		Addr:         m.redisAddr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := m.rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", m.redisAddr, err)
	}

	log.Printf("[auth] Token blocklist: Redis at %s", m.redisAddr)
	return NewRedisBlocklist(m.rdb), nil
}

// Stop shuts down the module.
func (m *AuthModule) Stop(_ context.Context) error {
	if m.rdb != nil {
		if err := m.rdb.Close(); err != nil {
			log.Printf("[auth] Error closing Redis connection: %v", err)
		}
	}
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	blocklist := "memory"
	if m.rdb != nil {
		blocklist = "redis"
		if err := m.rdb.Ping(ctx).Err(); err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: fmt.Sprintf("redis ping failed: %v", err),
			}
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database":  m.dbPath,
			"blocklist": blocklist,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func(mono.ServiceContainer) error{
		"register": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "register", json.Unmarshal, json.Marshal, m.handleRegister)
		},
		"login": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "login", json.Unmarshal, json.Marshal, m.handleLogin)
		},
		"logout": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "logout", json.Unmarshal, json.Marshal, m.handleLogout)
		},
		"refresh-token": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "refresh-token", json.Unmarshal, json.Marshal, m.handleRefresh)
		},
		"validate-token": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "validate-token", json.Unmarshal, json.Marshal, m.handleValidateToken)
		},
		"get-user": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "get-user", json.Unmarshal, json.Marshal, m.handleGetUser)
		},
	}

	for name, register := range services {
		if err := register(container); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[auth] Registered services: register, login, logout, refresh-token, validate-token, get-user")
	return nil
}

// handleRegister handles user registration.
func (m *AuthModule) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (RegisterResponse, error) {
	user, err := m.service.Register(ctx, req.Name, req.Email, req.Password, req.PasswordConfirmation)
	if err != nil {
		return RegisterResponse{}, err
	}

	return RegisterResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// handleLogin handles user login.
func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	token, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{
		Token:     token.Token,
		ExpiresIn: token.ExpiresIn,
		TokenType: token.TokenType,
	}, nil
}

// handleLogout handles token revocation.
func (m *AuthModule) handleLogout(ctx context.Context, req LogoutRequest, _ *mono.Msg) (LogoutResponse, error) {
	if err := m.service.Logout(ctx, req.Token); err != nil {
		return LogoutResponse{Revoked: false}, err
	}
	return LogoutResponse{Revoked: true}, nil
}

// handleRefresh handles token rotation.
func (m *AuthModule) handleRefresh(ctx context.Context, req RefreshRequest, _ *mono.Msg) (RefreshResponse, error) {
	token, err := m.service.Refresh(ctx, req.Token)
	if err != nil {
		return RefreshResponse{}, err
	}

	return RefreshResponse{
		Token:     token.Token,
		ExpiresIn: token.ExpiresIn,
		TokenType: token.TokenType,
	}, nil
}

// handleValidateToken handles token validation.
func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		errMsg := "invalid token"
		switch {
		case errors.Is(err, ErrExpiredToken):
			errMsg = "token expired"
		case errors.Is(err, ErrRevokedToken):
			errMsg = "token revoked"
		}
		return ValidateTokenResponse{
			Valid: false,
			Error: errMsg,
		}, nil // Return response, not error, for validation failures
	}

	return ValidateTokenResponse{
		Valid:   true,
		UserID:  claims.UserID,
		Email:   claims.Email,
		TokenID: claims.TokenID,
	}, nil
}

// handleGetUser handles get user requests.
func (m *AuthModule) handleGetUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (GetUserResponse, error) {
	user, err := m.service.GetUser(ctx, req.UserID)
	if err != nil {
		return GetUserResponse{}, err
	}

	return GetUserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

// loadJWTConfig loads JWT configuration from environment variables.
func loadJWTConfig() JWTConfig {
	config := DefaultJWTConfig()

	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.SecretKey = secret
	}
	if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
		config.Issuer = issuer
	}
	if ttl := os.Getenv("JWT_TOKEN_TTL"); ttl != "" {
		if minutes, err := strconv.Atoi(ttl); err == nil && minutes > 0 {
			config.TokenTTL = time.Duration(minutes) * time.Minute
		}
	}

	return config
}
