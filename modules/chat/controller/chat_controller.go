package controller

import (
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/controller"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/realtime"
	"github.com/neimd2025/web-ndrop-sub000/core/utils"
	"github.com/neimd2025/web-ndrop-sub000/core/validator"
	"github.com/neimd2025/web-ndrop-sub000/modules/chat/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/chat/entity"
	"github.com/neimd2025/web-ndrop-sub000/modules/chat/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ChatController struct {
	service  service.ChatServiceInterface
	streamer *realtime.Streamer
	controller.BaseController
}

func NewChatController(service service.ChatServiceInterface, streamer *realtime.Streamer) *ChatController {
	return &ChatController{
		service:        service,
		streamer:       streamer,
		BaseController: controller.NewBaseController(),
	}
}

// GetMessages lists a meeting's messages, newest first
// @Summary List meeting messages
// @Tags Chat
// @Security BearerAuth
// @Produce json
// @Param before query string false "RFC3339 cursor"
// @Param before_id query string false "Message id tiebreak for the cursor"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} dto.MessagePage
// @Failure 403 {object} controller.ErrorResponse
// @Router /events/{id}/meetings/{meetingId}/messages [get]
func (c *ChatController) GetMessages(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	eventID, err := controller.ParamUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}
	meetingID, err := controller.ParamUUID(ctx, "meetingId")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting id")
	}

	var cursor *entity.Cursor
	if raw := ctx.QueryParam("before"); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "before must be an RFC3339 timestamp")
		}
		cursor = &entity.Cursor{Before: t}
		if rawID := ctx.QueryParam("before_id"); rawID != "" {
			if cursor.BeforeID = utils.ToUUID(rawID); cursor.BeforeID == uuid.Nil {
				return c.BadRequest(errors.ErrInvalidInput, "before_id must be a message id")
			}
		}
	}
	limit := utils.ToNumberWithDefault(ctx.QueryParam("limit"), 0)

	result, appErr := c.service.ListMessages(ctx.Request().Context(), eventID, meetingID, userID, cursor, limit)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Messages retrieved successfully")
}

// SendMessage posts a message into an accepted or confirmed meeting
// @Summary Send meeting message
// @Tags Chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.MessageResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /events/{id}/meetings/{meetingId}/messages [post]
func (c *ChatController) SendMessage(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	eventID, err := controller.ParamUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}
	meetingID, err := controller.ParamUUID(ctx, "meetingId")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting id")
	}

	req := new(dto.SendMessageRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.Struct(req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result.Errors)
	}

	result, appErr := c.service.SendMessage(ctx.Request().Context(), eventID, meetingID, userID, req.Content)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Message sent")
}

// GetReadReceipt returns both parties' last read times
// @Router /meetings/{id}/read-receipt [get]
func (c *ChatController) GetReadReceipt(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	meetingID, err := controller.ParamUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting id")
	}

	result, appErr := c.service.GetReadReceipt(ctx.Request().Context(), meetingID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Read receipt retrieved")
}

// MarkRead records that the caller has read the meeting up to now
// @Router /meetings/{id}/read-receipt [post]
func (c *ChatController) MarkRead(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	meetingID, err := controller.ParamUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting id")
	}

	result, appErr := c.service.MarkRead(ctx.Request().Context(), meetingID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Marked as read")
}

// Stream upgrades to a websocket carrying new messages of the meeting.
func (c *ChatController) Stream(ctx echo.Context) error {
	userID, err := controller.UserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	meetingID, err := controller.ParamUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting id")
	}

	channel, appErr := c.service.StreamChannel(ctx.Request().Context(), meetingID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.streamer.Serve(ctx, channel)
}
