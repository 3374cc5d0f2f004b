package utils

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/config"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	RoleID int       `json:"role_id"`
	Scope  string    `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

func secret() ([]byte, error) {
	cfg, ok := config.GetSafe()
	if !ok || cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret not configured")
	}
	return []byte(cfg.JWT.Secret), nil
}

// GenerateToken signs an HS256 token for userID. The returned time is the expiry.
func GenerateToken(userID uuid.UUID, roleID int, scope string, ttl time.Duration) (string, time.Time, error) {
	key, err := secret()
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := TokenClaims{
		UserID: userID,
		RoleID: roleID,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	key, err := secret()
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "token validation unavailable", err)
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "token expired", err)
		}
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid token", err)
	}
	if !token.Valid {
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid token", nil)
	}

	// Tokens from the identity provider carry the user id in sub only.
	if claims.UserID == uuid.Nil && claims.Subject != "" {
		id, err := uuid.Parse(claims.Subject)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid token subject", err)
		}
		claims.UserID = id
	}
	if claims.UserID == uuid.Nil {
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "token has no user", nil)
	}
	return claims, nil
}

// GetTokenFromHeader extracts the bearer token from an Authorization header value.
func GetTokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", errors.NewAppError(errors.ErrMissingAuthorizationHeader, "missing authorization header", nil)
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.NewAppError(errors.ErrInvalidTokenFormat, "authorization header must be Bearer <token>", nil)
	}
	return strings.TrimSpace(parts[1]), nil
}
