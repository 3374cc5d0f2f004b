package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/controller"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/params"
	"github.com/neimd2025/web-ndrop-sub000/modules/card/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/card/service"
	"github.com/neimd2025/web-ndrop-sub000/modules/card/validator"

	"github.com/labstack/echo/v4"
)

type CardController struct {
	service service.CardServiceInterface
	controller.BaseController
}

func NewCardController(service service.CardServiceInterface) *CardController {
	return &CardController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// GetProfile returns the caller's profile and business card
// @Summary Get my profile
// @Tags Card
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /user/profile [get]
func (c *CardController) GetProfile(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	result, appErr := c.service.GetProfile(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Profile retrieved successfully")
}

// UpsertProfile creates or replaces the caller's profile
// @Summary Save my profile
// @Tags Card
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpsertProfileRequest true "Profile"
// @Success 200 {object} dto.ProfileResponse
// @Router /user/profile [put]
func (c *CardController) UpsertProfile(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.UpsertProfileRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.ValidateUpsertProfileRequest(req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result.Errors)
	}

	result, appErr := c.service.UpsertProfile(ctx.Request().Context(), userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Profile saved successfully")
}

// UploadProfileImage takes a multipart "file" and an optional "data" field
// holding the profile JSON.
// @Summary Upload profile image
// @Tags Card
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image"
// @Param data formData string false "Profile JSON"
// @Success 200 {object} dto.ProfileResponse
// @Router /user/profile/image [post]
func (c *CardController) UploadProfileImage(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	var req *dto.UpsertProfileRequest
	if raw := ctx.FormValue("data"); raw != "" {
		req = new(dto.UpsertProfileRequest)
		if err := json.Unmarshal([]byte(raw), req); err != nil {
			return c.BadRequest(errors.ErrInvalidRequestData, "data must be a JSON profile")
		}
		if result := validator.ValidateUpsertProfileRequest(req); result.HasError() {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result.Errors)
		}
	}

	file, appErr := readImage(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	if file == nil && req == nil {
		return c.BadRequest(errors.ErrInvalidInput, "file or data is required")
	}

	result, appErr := c.service.UploadProfileImage(ctx.Request().Context(), userID, req, file)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Profile saved successfully")
}

// readImage returns nil when the request carries no file part.
func readImage(ctx echo.Context) (*dto.ImageFile, *errors.AppError) {
	header, err := ctx.FormFile("file")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid multipart form", err)
	}
	if header.Size > constants.MaxUploadSize {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "File is too large", nil)
	}
	f, err := header.Open()
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidRequestData, "Cannot read file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, constants.MaxUploadSize+1))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidRequestData, "Cannot read file", err)
	}
	if len(data) > constants.MaxUploadSize {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "File is too large", nil)
	}
	return &dto.ImageFile{Filename: header.Filename, Data: data}, nil
}

// SetCardVisibility toggles whether other users can see the card
// @Router /user/card/visibility [put]
func (c *CardController) SetCardVisibility(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.VisibilityRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.ValidateVisibilityRequest(req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result.Errors)
	}

	result, appErr := c.service.SetCardVisibility(ctx.Request().Context(), userID, *req.IsPublic)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Card visibility updated")
}

// GetCard returns a public card, or the caller's own card
// @Summary Get business card
// @Tags Card
// @Security BearerAuth
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} dto.CardResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /cards/{id} [get]
func (c *CardController) GetCard(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	cardID, err := controller.ParamUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid card id")
	}

	result, appErr := c.service.GetCard(ctx.Request().Context(), cardID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Business card retrieved successfully")
}

// GetCollectedCards lists the caller's collected cards
// @Summary List collected cards
// @Tags Card
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Name or company"
// @Success 200 {object} dto.PaginatedCollectedCardResponse
// @Router /user/collected-cards [get]
func (c *CardController) GetCollectedCards(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	result, appErr := c.service.ListCollected(ctx.Request().Context(), userID, *params.NewQueryParams(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Collected cards retrieved successfully")
}

// CollectCard saves another user's card
// @Router /user/collected-cards [post]
func (c *CardController) CollectCard(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.CollectCardRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.ValidateCollectCardRequest(req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result.Errors)
	}

	result, appErr := c.service.CollectCard(ctx.Request().Context(), userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Card collected")
}

// RemoveCollectedCard
// @Router /user/collected-cards/{id} [delete]
func (c *CardController) RemoveCollectedCard(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	id, err := controller.ParamUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid collected card id")
	}

	if appErr := c.service.RemoveCollected(ctx.Request().Context(), userID, id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Collected card removed")
}
