package controller

import (
	"github.com/neimd2025/web-ndrop-sub000/core/controller"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/validator"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/entity"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// MeetingController handles meeting request HTTP requests
type MeetingController struct {
	controller.BaseController
	MeetingService service.MeetingServiceInterface
}

func NewMeetingController(svc service.MeetingServiceInterface) *MeetingController {
	return &MeetingController{
		BaseController: controller.NewBaseController(),
		MeetingService: svc,
	}
}

// CreateMeeting handles POST /events/:id/meetings
// @Summary Request a meeting
// @Description Sends a meeting request to another participant of the event
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.CreateMeetingRequest true "Receiver and message"
// @Success 201 {object} dto.MeetingResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /events/{id}/meetings [post]
func (c *MeetingController) CreateMeeting(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	eventID, err := controller.ParamUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	var req dto.CreateMeetingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.Struct(&req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result.Errors)
	}

	result, appErr := c.MeetingService.Create(ctx.Request().Context(), eventID, userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Meeting request sent")
}

// GetMeetings handles GET /events/:id/meetings
// @Summary List my meetings in an event
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Param status query string false "Filter by status"
// @Success 200 {array} dto.MeetingResponse
// @Router /events/{id}/meetings [get]
func (c *MeetingController) GetMeetings(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	eventID, err := controller.ParamUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	result, appErr := c.MeetingService.List(ctx.Request().Context(), eventID, userID, ctx.QueryParam("status"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Meetings retrieved successfully")
}

// GetMeeting handles GET /events/:id/meetings/:meetingId
// @Router /events/{id}/meetings/{meetingId} [get]
func (c *MeetingController) GetMeeting(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	eventID, err := controller.ParamUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}
	meetingID, err := controller.ParamUUID(ctx, "meetingId")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting ID")
	}

	result, appErr := c.MeetingService.Get(ctx.Request().Context(), eventID, meetingID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Meeting retrieved successfully")
}

// UpdateMeeting handles PATCH /events/:id/meetings/:meetingId
// @Summary Accept, decline, cancel or confirm a meeting
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateMeetingRequest true "Action"
// @Success 200 {object} dto.MeetingResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /events/{id}/meetings/{meetingId} [patch]
func (c *MeetingController) UpdateMeeting(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	eventID, err := controller.ParamUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}
	meetingID, err := controller.ParamUUID(ctx, "meetingId")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting ID")
	}

	var req dto.UpdateMeetingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.Struct(&req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result.Errors)
	}

	result, appErr := c.MeetingService.Respond(ctx.Request().Context(), eventID, meetingID, userID, entity.Action(req.Action))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Meeting updated successfully")
}
