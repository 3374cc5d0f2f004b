package controller

import (
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/controller"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/validator"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin/service"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	service service.AuthServiceInterface
	controller.BaseController
}

func NewAuthController(service service.AuthServiceInterface) *AuthController {
	return &AuthController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// Login authenticates an admin account
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} controller.ErrorResponse
// @Failure 429 {object} controller.ErrorResponse
// @Router /admin/login [post]
func (c *AuthController) Login(ctx echo.Context) error {
	req := new(dto.LoginRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.Struct(req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result.Errors)
	}

	result, appErr := c.service.Login(ctx.Request().Context(), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Login successful")
}

// Logout revokes the presented admin token
// @Summary Admin logout
// @Tags Admin
// @Security BearerAuth
// @Router /admin/logout [post]
func (c *AuthController) Logout(ctx echo.Context) error {
	claims, err := controller.TokenClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	token, _ := ctx.Get(constants.ContextRawToken).(string)
	if token == "" {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	expiresAt := time.Now().Add(constants.BlockDuration)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if appErr := c.service.Logout(ctx.Request().Context(), token, expiresAt); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Logout successful")
}
