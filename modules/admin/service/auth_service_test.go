package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/config"
	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/utils"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin/entity"

	"github.com/google/uuid"
)

type memoryAccounts struct {
	accounts map[string]*entity.AdminAccount
}

func (m *memoryAccounts) GetByUsername(_ context.Context, username string) (*entity.AdminAccount, error) {
	return m.accounts[strings.ToLower(username)], nil
}

func (m *memoryAccounts) CreateIfMissing(_ context.Context, username, hash string, roleID int) (bool, error) {
	key := strings.ToLower(username)
	if _, ok := m.accounts[key]; ok {
		return false, nil
	}
	m.accounts[key] = &entity.AdminAccount{ID: uuid.New(), Username: username, PasswordHash: hash, RoleID: roleID}
	return true, nil
}

type memorySessions struct {
	attempts    map[string]int64
	blacklisted map[string]time.Duration
}

func newMemorySessions() *memorySessions {
	return &memorySessions{attempts: map[string]int64{}, blacklisted: map[string]time.Duration{}}
}

func (m *memorySessions) IncrementLoginAttempt(_ context.Context, key string) (int64, error) {
	m.attempts[key]++
	return m.attempts[key], nil
}

func (m *memorySessions) IsLoginBlocked(_ context.Context, key string) (bool, error) {
	return m.attempts[key] >= constants.MaxLoginAttempts, nil
}

func (m *memorySessions) Expire(context.Context, string, time.Duration) error { return nil }

func (m *memorySessions) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.attempts, strings.TrimPrefix(k, constants.RedisKeyLoginAttempt))
	}
	return nil
}

func (m *memorySessions) AddToTokenBlacklist(_ context.Context, token string, ttl time.Duration) error {
	m.blacklisted[token] = ttl
	return nil
}

func newTestService(t *testing.T) (*AuthService, *memoryAccounts, *memorySessions) {
	t.Helper()
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "testsecret"}})
	accounts := &memoryAccounts{accounts: map[string]*entity.AdminAccount{}}
	sessions := newMemorySessions()
	svc := NewAuthService(accounts, sessions, time.Hour)
	if err := svc.SeedAdmin(context.Background(), "root", "correct horse"); err != nil {
		t.Fatalf("SeedAdmin() error = %v", err)
	}
	return svc, accounts, sessions
}

func TestLoginIssuesAdminToken(t *testing.T) {
	svc, accounts, _ := newTestService(t)

	resp, appErr := svc.Login(context.Background(), &dto.LoginRequest{Username: "Root", Password: "correct horse"})
	if appErr != nil {
		t.Fatalf("Login() error = %v", appErr)
	}
	claims, err := utils.ValidateAndParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAndParseToken() error = %v", err)
	}
	if claims.RoleID != constants.RoleAdmin || claims.Scope != constants.ScopeTokenAccess {
		t.Errorf("claims = %+v, want admin access token", claims)
	}
	if claims.UserID != accounts.accounts["root"].ID {
		t.Errorf("user id = %s, want seeded admin", claims.UserID)
	}
}

func TestLoginBlocksAfterFailures(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	bad := &dto.LoginRequest{Username: "root", Password: "wrong"}

	for i := 1; i < constants.MaxLoginAttempts; i++ {
		if _, appErr := svc.Login(ctx, bad); appErr == nil || appErr.Code != errors.ErrUnauthorized {
			t.Fatalf("attempt %d = %v, want UNAUTHORIZED", i, appErr)
		}
	}
	if _, appErr := svc.Login(ctx, bad); appErr == nil || appErr.Code != errors.ErrLoginBlocked {
		t.Fatalf("attempt %d = %v, want LOGIN_BLOCKED", constants.MaxLoginAttempts, appErr)
	}
	if _, appErr := svc.Login(ctx, &dto.LoginRequest{Username: "root", Password: "correct horse"}); appErr == nil || appErr.Code != errors.ErrLoginBlocked {
		t.Fatalf("correct password while blocked = %v, want LOGIN_BLOCKED", appErr)
	}
}

func TestLoginSuccessClearsAttempts(t *testing.T) {
	svc, _, sessions := newTestService(t)
	ctx := context.Background()

	_, _ = svc.Login(ctx, &dto.LoginRequest{Username: "root", Password: "wrong"})
	if _, appErr := svc.Login(ctx, &dto.LoginRequest{Username: "root", Password: "correct horse"}); appErr != nil {
		t.Fatalf("Login() error = %v", appErr)
	}
	if n := sessions.attempts["admin:root"]; n != 0 {
		t.Errorf("attempts = %d, want 0", n)
	}
}

func TestLoginRejectsNonAdminRole(t *testing.T) {
	svc, accounts, _ := newTestService(t)
	hash, _ := utils.HashPassword("pw")
	accounts.accounts["staff"] = &entity.AdminAccount{ID: uuid.New(), Username: "staff", PasswordHash: hash, RoleID: constants.RoleUser}

	if _, appErr := svc.Login(context.Background(), &dto.LoginRequest{Username: "staff", Password: "pw"}); appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("Login() = %v, want UNAUTHORIZED", appErr)
	}
}

func TestLogoutBlacklistsUntilExpiry(t *testing.T) {
	svc, _, sessions := newTestService(t)

	if appErr := svc.Logout(context.Background(), "tok", time.Now().Add(30*time.Minute)); appErr != nil {
		t.Fatalf("Logout() error = %v", appErr)
	}
	ttl, ok := sessions.blacklisted["tok"]
	if !ok || ttl <= 29*time.Minute || ttl > 30*time.Minute {
		t.Errorf("blacklist ttl = %v, want about 30m", ttl)
	}
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	svc, accounts, _ := newTestService(t)
	first := accounts.accounts["root"].PasswordHash

	if err := svc.SeedAdmin(context.Background(), "root", "another"); err != nil {
		t.Fatalf("SeedAdmin() error = %v", err)
	}
	if accounts.accounts["root"].PasswordHash != first {
		t.Error("existing admin password was overwritten")
	}
}
