package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/config"
	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"

	"github.com/google/uuid"
)

func TestGenerateEventCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateEventCode()
		if err != nil {
			t.Fatalf("GenerateEventCode() error = %v", err)
		}
		if !IsValidEventCode(code) {
			t.Fatalf("GenerateEventCode() = %q, not a valid code", code)
		}
	}
}

func TestIsValidEventCode(t *testing.T) {
	tests := map[string]bool{
		"AB12CD":  true,
		"000000":  true,
		"ab12cd":  false,
		"AB12C":   false,
		"AB12CDE": false,
		"AB-2CD":  false,
		"":        false,
	}
	for code, want := range tests {
		if got := IsValidEventCode(code); got != want {
			t.Errorf("IsValidEventCode(%q) = %v, want %v", code, got, want)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "test-secret"}})

	userID := uuid.New()
	token, exp, err := GenerateToken(userID, constants.RoleAdmin, constants.ScopeTokenAccess, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry %v is not in the future", exp)
	}

	claims, err := ValidateAndParseToken(token)
	if err != nil {
		t.Fatalf("ValidateAndParseToken() error = %v", err)
	}
	if claims.UserID != userID || claims.RoleID != constants.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateAndParseTokenExpired(t *testing.T) {
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "test-secret"}})

	token, _, err := GenerateToken(uuid.New(), constants.RoleUser, constants.ScopeTokenAccess, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	_, err = ValidateAndParseToken(token)
	if !errors.Is(err, errors.ErrTokenExpired) {
		t.Fatalf("err = %v, want %s", err, errors.ErrTokenExpired)
	}
}

func TestValidateAndParseTokenWrongSecret(t *testing.T) {
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "one"}})
	token, _, err := GenerateToken(uuid.New(), constants.RoleUser, constants.ScopeTokenAccess, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "two"}})
	if _, err := ValidateAndParseToken(token); !errors.Is(err, errors.ErrInvalidTokenFormat) {
		t.Fatalf("err = %v, want %s", err, errors.ErrInvalidTokenFormat)
	}
}

func TestGetTokenFromHeader(t *testing.T) {
	if _, err := GetTokenFromHeader(""); !errors.Is(err, errors.ErrMissingAuthorizationHeader) {
		t.Errorf("empty header err = %v", err)
	}
	if _, err := GetTokenFromHeader("Basic abc"); !errors.Is(err, errors.ErrInvalidTokenFormat) {
		t.Errorf("basic header err = %v", err)
	}
	got, err := GetTokenFromHeader("Bearer abc.def")
	if err != nil || got != "abc.def" {
		t.Errorf("GetTokenFromHeader() = %q, %v", got, err)
	}
}

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(hashed, "s3cret") {
		t.Fatal("hash contains the password")
	}
	if !ComparePassword(hashed, "s3cret") || ComparePassword(hashed, "other") {
		t.Fatal("ComparePassword mismatch")
	}
}

func TestConvert(t *testing.T) {
	id := uuid.New()
	if got := ToUUID(id.String()); got != id {
		t.Errorf("ToUUID() = %v, want %v", got, id)
	}
	if got := ToUUID("nope"); got != uuid.Nil {
		t.Errorf("ToUUID(invalid) = %v", got)
	}
	if got := ToNumberWithDefault("25", 0); got != 25 {
		t.Errorf("ToNumberWithDefault() = %d", got)
	}
	if got := ToNumberWithDefault("", 7); got != 7 {
		t.Errorf("ToNumberWithDefault(empty) = %d", got)
	}
}
