package service

import (
	"context"
	"encoding/base64"
	"net/url"
	"strings"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/params"
	"github.com/neimd2025/web-ndrop-sub000/core/utils"
	"github.com/neimd2025/web-ndrop-sub000/modules/event/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/event/mapper"
	"github.com/neimd2025/web-ndrop-sub000/modules/event/repository"
	"github.com/neimd2025/web-ndrop-sub000/modules/event/validator"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const (
	maxCodeAttempts = 5
	qrSize          = 256
)

type EventServiceInterface interface {
	Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError)
	FindByCode(ctx context.Context, code string) (*dto.EventResponse, *errors.AppError)
	List(ctx context.Context, queryParams params.QueryParams) (*dto.PaginatedEventResponse, *errors.AppError)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	Delete(ctx context.Context, id uuid.UUID) *errors.AppError
	GenerateQR(ctx context.Context, id uuid.UUID) (*dto.QRCodeResponse, *errors.AppError)
}

type EventService struct {
	repo    repository.EventRepositoryInterface
	origin  string
	now     func() time.Time
	newCode func() (string, error)
}

// NewEventService builds join links against origin.
func NewEventService(repo repository.EventRepositoryInterface, origin string) *EventService {
	return &EventService{
		repo:    repo,
		origin:  strings.TrimRight(origin, "/"),
		now:     time.Now,
		newCode: utils.GenerateEventCode,
	}
}

func (s *EventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if result := validator.ValidateCreateEventRequest(req); result.HasError() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, result.Errors[0].Field+" "+result.Errors[0].Message, nil).WithDetails(result.Errors)
	}

	event := mapper.ToEventEntity(req)
	for attempt := 1; ; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate event code", err)
		}
		event.EventCode = code

		err = s.repo.Create(ctx, event)
		if err == nil {
			break
		}
		if !database.IsUniqueViolation(err, repository.CodeConstraint) || attempt >= maxCodeAttempts {
			return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create event", err)
		}
	}

	return mapper.ToEventResponse(event, s.now()), nil
}

func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return mapper.ToEventResponse(event, s.now()), nil
}

// FindByCode returns nil when the code is malformed or unknown.
func (s *EventService) FindByCode(ctx context.Context, code string) (*dto.EventResponse, *errors.AppError) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !utils.IsValidEventCode(code) {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, nil
	}
	return mapper.ToEventResponse(event, s.now()), nil
}

func (s *EventService) List(ctx context.Context, queryParams params.QueryParams) (*dto.PaginatedEventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.List(ctx, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get events", err)
	}
	return mapper.ToEventPaginationResponse(page, s.now()), nil
}

func (s *EventService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if result := validator.ValidateUpdateEventRequest(req); result.HasError() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, result.Errors[0].Field+" "+result.Errors[0].Message, nil).WithDetails(result.Errors)
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	mapper.ApplyUpdate(event, req)
	if result := validator.ValidateDates(event.StartDate, event.EndDate); result.HasError() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "end_date must be after start_date", nil)
	}

	updated, err := s.repo.Update(ctx, event, req.MaxParticipants != nil)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update event", err)
	}
	if !updated {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
		}
		if current == nil {
			return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
		}
		return nil, errors.NewAppError(errors.ErrConflict, "max_participants is below the current participant count", nil)
	}

	return mapper.ToEventResponse(event, s.now()), nil
}

func (s *EventService) Delete(ctx context.Context, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete event", err)
	}
	if !deleted {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return nil
}

func (s *EventService) GenerateQR(ctx context.Context, id uuid.UUID) (*dto.QRCodeResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	joinURL := JoinURL(s.origin, event.EventCode)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, qrSize)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate QR code", err)
	}

	return &dto.QRCodeResponse{
		EventID:   event.ID,
		EventCode: event.EventCode,
		JoinURL:   joinURL,
		QRCode:    base64.StdEncoding.EncodeToString(png),
	}, nil
}

// JoinURL is the client link that joins an event by code.
func JoinURL(origin, code string) string {
	return strings.TrimRight(origin, "/") + constants.JoinPath + "?code=" + url.QueryEscape(code)
}
