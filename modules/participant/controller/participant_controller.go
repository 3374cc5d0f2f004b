package controller

import (
	"github.com/neimd2025/web-ndrop-sub000/core/controller"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/validator"
	"github.com/neimd2025/web-ndrop-sub000/modules/participant/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/participant/service"

	"github.com/labstack/echo/v4"
)

type ParticipantController struct {
	service service.ParticipantServiceInterface
	controller.BaseController
}

func NewParticipantController(service service.ParticipantServiceInterface) *ParticipantController {
	return &ParticipantController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// JoinEvent joins the caller to an event by id or code
// @Summary Join event
// @Tags Participant
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.JoinEventRequest true "Event id or code"
// @Success 201 {object} dto.JoinEventResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Failure 422 {object} controller.ErrorResponse
// @Router /user/join-event [post]
func (c *ParticipantController) JoinEvent(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.JoinEventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.Struct(req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result.Errors)
	}

	result, appErr := c.service.Join(ctx.Request().Context(), userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Joined event successfully")
}

// LeaveEvent removes the caller's own participation
// @Router /user/leave-event [post]
func (c *ParticipantController) LeaveEvent(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.LeaveEventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.Struct(req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result.Errors)
	}

	if appErr := c.service.Leave(ctx.Request().Context(), userID, req.EventID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Left event successfully")
}

// GetMyEvents lists the events the caller is confirmed for
// @Router /user/events [get]
func (c *ParticipantController) GetMyEvents(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	result, appErr := c.service.ListMyEvents(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Events retrieved successfully")
}

// GetParticipants lists the confirmed participants of an event
// @Router /events/{id}/participants [get]
func (c *ParticipantController) GetParticipants(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	eventID, err := controller.ParamUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	result, appErr := c.service.GetParticipants(ctx.Request().Context(), eventID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Participants retrieved successfully")
}
