package controller

import (
	"github.com/neimd2025/web-ndrop-sub000/core/controller"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/validator"
	"github.com/neimd2025/web-ndrop-sub000/modules/recommendation/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/recommendation/service"

	"github.com/labstack/echo/v4"
)

type RecommendationController struct {
	service service.RecommendationServiceInterface
	controller.BaseController
}

func NewRecommendationController(service service.RecommendationServiceInterface) *RecommendationController {
	return &RecommendationController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// GetBaseline returns the locally scored candidates
// @Summary Baseline recommendations
// @Tags Recommendation
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.RecommendationResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /events/{id}/matching/recommendations [get]
func (c *RecommendationController) GetBaseline(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	eventID, err := controller.ParamUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	result, appErr := c.service.Baseline(ctx.Request().Context(), eventID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Recommendations retrieved successfully")
}

// GetRecommendations returns AI ranked candidates, or the baseline
// @Summary AI recommendations
// @Tags Recommendation
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.RecommendationResponse
// @Router /events/{id}/matching/recommendations [post]
func (c *RecommendationController) GetRecommendations(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	eventID, err := controller.ParamUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	result, appErr := c.service.GetRecommendations(ctx.Request().Context(), eventID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Recommendations retrieved successfully")
}

// Proxy forwards a request to the AI service
// @Router /ai/recommendation [post]
func (c *RecommendationController) Proxy(ctx echo.Context) error {
	req := new(dto.AIRecommendationRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.Struct(req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result.Errors)
	}

	result, appErr := c.service.Proxy(ctx.Request().Context(), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Recommendations retrieved successfully")
}
