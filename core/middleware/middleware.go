package middleware

import (
	"context"
	"net/http"

	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/controller"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/core/utils"

	"github.com/labstack/echo/v4"
)

// TokenBlacklist reports revoked tokens.
type TokenBlacklist interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

type Middleware struct {
	blacklist TokenBlacklist
}

func NewMiddleware(blacklist TokenBlacklist) *Middleware {
	return &Middleware{blacklist: blacklist}
}

// AuthMiddleware verifies the bearer token and stores its claims on the context.
// Websocket upgrades may pass the token as ?token= since browsers cannot set headers there.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := tokenFromRequest(c)
			if err != nil {
				return unauthorized(err)
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				return unauthorized(err)
			}

			if claims.Scope != "" && claims.Scope != constants.ScopeTokenAccess {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "token scope not allowed")
			}

			if m.blacklist != nil {
				blacklisted, err := m.blacklist.IsTokenBlacklisted(c.Request().Context(), token)
				if err != nil {
					logger.Error("Middleware:AuthMiddleware:IsTokenBlacklisted", "error", err)
					return controller.NewErrorResponse(http.StatusInternalServerError, errors.ErrInternalServer, "failed to check token")
				}
				if blacklisted {
					return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "token has been revoked")
				}
			}

			c.Set(constants.ContextTokenData, claims)
			c.Set(constants.ContextRawToken, token)
			return next(c)
		}
	}
}

// AdminMiddleware must run after AuthMiddleware and allows role_id 2 only.
func (m *Middleware) AdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := controller.TokenClaims(c)
			if err != nil {
				return unauthorized(err)
			}
			if claims.RoleID != constants.RoleAdmin {
				logger.Warn("Middleware:AdminMiddleware:Forbidden", "user_id", claims.UserID, "role_id", claims.RoleID)
				return controller.NewErrorResponse(http.StatusForbidden, errors.ErrForbidden, "admin access required")
			}
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" && c.IsWebSocket() {
		if token := c.QueryParam("token"); token != "" {
			return token, nil
		}
	}
	return utils.GetTokenFromHeader(header)
}

func unauthorized(err error) *echo.HTTPError {
	if ae, ok := err.(*errors.AppError); ok {
		return controller.NewErrorResponse(http.StatusUnauthorized, ae.Code, ae.Message)
	}
	return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "unauthorized")
}
