package controller

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/controller"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/core/params"
	"github.com/neimd2025/web-ndrop-sub000/core/storage"
	"github.com/neimd2025/web-ndrop-sub000/core/utils"
	"github.com/neimd2025/web-ndrop-sub000/core/validator"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin/service"
	eventDto "github.com/neimd2025/web-ndrop-sub000/modules/event/dto"
	notificationDto "github.com/neimd2025/web-ndrop-sub000/modules/notification/dto"
	participantDto "github.com/neimd2025/web-ndrop-sub000/modules/participant/dto"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const defaultImageFolder = "events"

type ConsoleController struct {
	console service.Console
	controller.BaseController
}

func NewConsoleController(console service.Console) *ConsoleController {
	return &ConsoleController{
		console:        console,
		BaseController: controller.NewBaseController(),
	}
}

// GetEvents lists events with their computed status
// @Summary List events
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Title or location"
// @Success 200 {object} eventDto.PaginatedEventResponse
// @Router /admin/get-events [get]
func (c *ConsoleController) GetEvents(ctx echo.Context) error {
	result, appErr := c.console.Events.List(ctx.Request().Context(), *params.NewQueryParams(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Events retrieved successfully")
}

// CreateEvent
// @Router /admin/create-event [post]
func (c *ConsoleController) CreateEvent(ctx echo.Context) error {
	req := new(eventDto.CreateEventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.Struct(req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result.Errors)
	}
	if claims, err := controller.TokenClaims(ctx); err == nil {
		req.CreatedBy = &claims.UserID
	}

	result, appErr := c.console.Events.Create(ctx.Request().Context(), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Event created successfully")
}

// UpdateEvent applies a partial update
// @Router /admin/update-event/{id} [put]
func (c *ConsoleController) UpdateEvent(ctx echo.Context) error {
	id, err := controller.ParamUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}
	req := new(eventDto.UpdateEventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.Struct(req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result.Errors)
	}

	result, appErr := c.console.Events.Update(ctx.Request().Context(), id, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event updated successfully")
}

// DeleteEvent
// @Router /admin/delete-event/{id} [delete]
func (c *ConsoleController) DeleteEvent(ctx echo.Context) error {
	id, err := controller.ParamUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	if appErr := c.console.Events.Delete(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Event deleted successfully")
}

// GenerateQR
// @Router /admin/generate-qr [post]
func (c *ConsoleController) GenerateQR(ctx echo.Context) error {
	req := new(eventDto.GenerateQRRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.Struct(req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result.Errors)
	}

	result, appErr := c.console.Events.GenerateQR(ctx.Request().Context(), req.EventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "QR code generated successfully")
}

// GetParticipants lists every participant of an event, removed ones included
// @Router /admin/get-participants [get]
func (c *ConsoleController) GetParticipants(ctx echo.Context) error {
	eventID := utils.ToUUID(ctx.QueryParam("event_id"))
	if eventID == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "event_id is required")
	}

	result, appErr := c.console.Participants.GetAllParticipants(ctx.Request().Context(), eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Participants retrieved successfully")
}

// RemoveParticipant
// @Router /admin/remove-participant [post]
func (c *ConsoleController) RemoveParticipant(ctx echo.Context) error {
	req := new(participantDto.RemoveParticipantRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.Struct(req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result.Errors)
	}

	result, appErr := c.console.Participants.Remove(ctx.Request().Context(), req.EventID, req.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Participant removed")
}

// SendNotice creates a notification for any target type
// @Router /admin/send-notice [post]
func (c *ConsoleController) SendNotice(ctx echo.Context) error {
	req := new(notificationDto.CreateNotificationRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.Struct(req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result.Errors)
	}
	if claims, err := controller.TokenClaims(ctx); err == nil {
		req.CreatedBy = &claims.UserID
	}

	result, appErr := c.console.Notifications.Create(ctx.Request().Context(), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Notice sent")
}

// UploadImage stores an event image and returns its public URL
// @Summary Upload image
// @Tags Admin
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image"
// @Param folder formData string false "Folder"
// @Success 200 {object} storage.UploadedImage
// @Router /admin/upload-image [post]
func (c *ConsoleController) UploadImage(ctx echo.Context) error {
	if c.console.Images == nil {
		return c.InternalServerError(errors.ErrInternalServer, "Image storage is not configured")
	}

	header, err := ctx.FormFile("file")
	if err == http.ErrMissingFile {
		return c.BadRequest(errors.ErrInvalidInput, "file is required")
	}
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid multipart form")
	}
	if header.Size > constants.MaxUploadSize {
		return c.BadRequest(errors.ErrInvalidInput, "File is too large")
	}
	f, err := header.Open()
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Cannot read file")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, constants.MaxUploadSize+1))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Cannot read file")
	}

	folder := ctx.FormValue("folder")
	if folder == "" {
		folder = defaultImageFolder
	}

	uploaded, err := c.console.Images.Upload(ctx.Request().Context(), folder, header.Filename, data)
	if stderrors.Is(err, storage.ErrInvalidImage) {
		return c.BadRequest(errors.ErrInvalidInput, err.Error())
	}
	if err != nil {
		logger.Error("AdminController:UploadImage:Error", "error", err)
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrUpstreamFailed, "Failed to store image", err))
	}

	return c.SuccessResponse(ctx, uploaded, "Image uploaded successfully")
}
