package service

import (
	"context"
	"strings"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/core/utils"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin/repository"
)

// SessionStore throttles logins and revokes tokens.
type SessionStore interface {
	IncrementLoginAttempt(ctx context.Context, key string) (int64, error)
	IsLoginBlocked(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

type AuthServiceInterface interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
	Logout(ctx context.Context, token string, expiresAt time.Time) *errors.AppError
	SeedAdmin(ctx context.Context, username, password string) error
}

type AuthService struct {
	repo     repository.AdminRepositoryInterface
	sessions SessionStore
	ttl      time.Duration
}

func NewAuthService(repo repository.AdminRepositoryInterface, sessions SessionStore, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{repo: repo, sessions: sessions, ttl: ttl}
}

// Login checks the password and issues an admin access token. Five failed
// attempts block the username for BlockDuration.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	loginKey := "admin:" + strings.ToLower(strings.TrimSpace(req.Username))

	blocked, err := s.sessions.IsLoginBlocked(ctx, loginKey)
	if err != nil {
		logger.Error("AdminAuthService:Login:IsLoginBlocked:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get login attempt", err)
	}
	if blocked {
		return nil, errors.NewAppError(errors.ErrLoginBlocked, "Too many failed attempts, try again in 15 minutes", nil)
	}

	account, err := s.repo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get admin account", err)
	}
	if account == nil || account.RoleID != constants.RoleAdmin || !utils.ComparePassword(account.PasswordHash, req.Password) {
		return nil, s.failAttempt(ctx, loginKey)
	}

	token, expiresAt, err := utils.GenerateToken(account.ID, account.RoleID, constants.ScopeTokenAccess, s.ttl)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}

	if err := s.sessions.Del(ctx, constants.RedisKeyLoginAttempt+loginKey); err != nil {
		logger.Warn("AdminAuthService:Login:ClearAttempts", "error", err)
	}

	logger.Info("AdminAuthService:Login:Success", "admin_id", account.ID)
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Admin: dto.AdminResponse{
			ID:       account.ID,
			Username: account.Username,
			RoleID:   account.RoleID,
		},
	}, nil
}

func (s *AuthService) failAttempt(ctx context.Context, loginKey string) *errors.AppError {
	n, err := s.sessions.IncrementLoginAttempt(ctx, loginKey)
	if err != nil {
		logger.Error("AdminAuthService:Login:IncrementLoginAttempt:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to increment login attempt", err)
	}
	if n >= constants.MaxLoginAttempts {
		if err := s.sessions.Expire(ctx, constants.RedisKeyLoginAttempt+loginKey, constants.BlockDuration); err != nil {
			logger.Error("AdminAuthService:Login:Expire:Error:", err)
		}
		return errors.NewAppError(errors.ErrLoginBlocked, "Too many failed attempts, try again in 15 minutes", nil)
	}
	return errors.NewAppError(errors.ErrUnauthorized, "Invalid username or password", nil)
}

// Logout revokes token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, token string, expiresAt time.Time) *errors.AppError {
	if err := s.sessions.AddToTokenBlacklist(ctx, token, time.Until(expiresAt)); err != nil {
		logger.Error("AdminAuthService:Logout:AddToBlacklist:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to add token to blacklist", err)
	}
	return nil
}

// SeedAdmin creates the bootstrap admin account when it does not exist yet.
func (s *AuthService) SeedAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	created, err := s.repo.CreateIfMissing(ctx, username, hash, constants.RoleAdmin)
	if err != nil {
		return err
	}
	if created {
		logger.Info("AdminAuthService:SeedAdmin:Created", "username", username)
	}
	return nil
}
