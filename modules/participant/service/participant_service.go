package service

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	eventDto "github.com/neimd2025/web-ndrop-sub000/modules/event/dto"
	eventMapper "github.com/neimd2025/web-ndrop-sub000/modules/event/mapper"
	notificationDto "github.com/neimd2025/web-ndrop-sub000/modules/notification/dto"
	notificationEntity "github.com/neimd2025/web-ndrop-sub000/modules/notification/entity"
	"github.com/neimd2025/web-ndrop-sub000/modules/participant/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/participant/mapper"
	"github.com/neimd2025/web-ndrop-sub000/modules/participant/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// EventReader resolves events for the join flow.
type EventReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*eventDto.EventResponse, *errors.AppError)
	FindByCode(ctx context.Context, code string) (*eventDto.EventResponse, *errors.AppError)
}

// Notifier writes notifications.
type Notifier interface {
	Create(ctx context.Context, req *notificationDto.CreateNotificationRequest) (*notificationDto.NotificationResponse, *errors.AppError)
}

type ParticipantServiceInterface interface {
	Join(ctx context.Context, userID uuid.UUID, req *dto.JoinEventRequest) (*dto.JoinEventResponse, *errors.AppError)
	Leave(ctx context.Context, userID, eventID uuid.UUID) *errors.AppError
	Remove(ctx context.Context, eventID, userID uuid.UUID) (*dto.ParticipantResponse, *errors.AppError)
	GetParticipants(ctx context.Context, eventID, viewerID uuid.UUID) ([]dto.ParticipantResponse, *errors.AppError)
	GetAllParticipants(ctx context.Context, eventID uuid.UUID) ([]dto.ParticipantResponse, *errors.AppError)
	IsConfirmed(ctx context.Context, eventID, userID uuid.UUID) (bool, *errors.AppError)
	ListMyEvents(ctx context.Context, userID uuid.UUID) ([]eventDto.EventResponse, *errors.AppError)
	Reconcile(ctx context.Context) error
}

type ParticipantService struct {
	repo     repository.ParticipantRepositoryInterface
	events   EventReader
	notifier Notifier
}

func NewParticipantService(repo repository.ParticipantRepositoryInterface, events EventReader, notifier Notifier) *ParticipantService {
	return &ParticipantService{repo: repo, events: events, notifier: notifier}
}

// Join adds the user to an event given by id or join code.
func (s *ParticipantService) Join(ctx context.Context, userID uuid.UUID, req *dto.JoinEventRequest) (*dto.JoinEventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var (
		event  *eventDto.EventResponse
		appErr *errors.AppError
	)
	switch {
	case req.EventCode != "":
		event, appErr = s.events.FindByCode(ctx, req.EventCode)
		if appErr != nil {
			return nil, appErr
		}
		if event == nil {
			return nil, errors.NewAppError(errors.ErrInvalidEventCode, "Invalid event code", nil)
		}
	case req.EventID != nil:
		event, appErr = s.events.GetByID(ctx, *req.EventID)
		if appErr != nil {
			return nil, appErr
		}
	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "event_id or event_code is required", nil)
	}

	participant, err := s.repo.Join(ctx, event.ID, userID)
	if err != nil {
		return nil, toAppError(err, "Failed to join event")
	}

	s.notify(ctx, &notificationDto.CreateNotificationRequest{
		Title:      "Joined " + event.Title,
		Message:    "You have joined " + event.Title + ".",
		Type:       notificationEntity.TypeEventJoined,
		TargetType: string(notificationEntity.TargetSpecific),
		UserID:     &userID,
		Metadata:   map[string]any{"event_id": event.ID.String()},
	})

	return &dto.JoinEventResponse{
		Participant: *mapper.ToParticipantResponse(participant),
		EventTitle:  event.Title,
	}, nil
}

func (s *ParticipantService) Leave(ctx context.Context, userID, eventID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if err := s.repo.Leave(ctx, eventID, userID); err != nil {
		return toAppError(err, "Failed to leave event")
	}
	return nil
}

// Remove is the admin ban. The user can never rejoin the event afterwards.
func (s *ParticipantService) Remove(ctx context.Context, eventID, userID uuid.UUID) (*dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	participant, err := s.repo.Remove(ctx, eventID, userID)
	if err != nil {
		return nil, toAppError(err, "Failed to remove participant")
	}

	s.notify(ctx, &notificationDto.CreateNotificationRequest{
		Title:      "Removed from event",
		Message:    "You have been removed from an event by the organizer.",
		Type:       notificationEntity.TypeEventRemoved,
		TargetType: string(notificationEntity.TargetSpecific),
		UserID:     &userID,
		Metadata:   map[string]any{"event_id": eventID.String()},
	})

	return mapper.ToParticipantResponse(participant), nil
}

// GetParticipants is the attendee view: confirmed participants only, visible to
// confirmed participants only, with private cards left out.
func (s *ParticipantService) GetParticipants(ctx context.Context, eventID, viewerID uuid.UUID) ([]dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	ok, appErr := s.IsConfirmed(ctx, eventID, viewerID)
	if appErr != nil {
		return nil, appErr
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only participants can view this event's participants", nil)
	}

	rows, err := s.repo.List(ctx, eventID, viewerID, false)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get participants", err)
	}
	return mapper.ToParticipantDetailResponses(rows), nil
}

// GetAllParticipants is the admin view: every status and every card.
func (s *ParticipantService) GetAllParticipants(ctx context.Context, eventID uuid.UUID) ([]dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	rows, err := s.repo.List(ctx, eventID, uuid.Nil, true)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get participants", err)
	}
	return mapper.ToParticipantDetailResponses(rows), nil
}

func (s *ParticipantService) IsConfirmed(ctx context.Context, eventID, userID uuid.UUID) (bool, *errors.AppError) {
	ok, err := s.repo.IsConfirmed(ctx, eventID, userID)
	if err != nil {
		return false, errors.NewAppError(errors.ErrGetFailed, "Failed to check participation", err)
	}
	return ok, nil
}

func (s *ParticipantService) ListMyEvents(ctx context.Context, userID uuid.UUID) ([]eventDto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	events, err := s.repo.ListMyEvents(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get joined events", err)
	}
	now := time.Now()
	out := make([]eventDto.EventResponse, len(events))
	for i := range events {
		out[i] = *eventMapper.ToEventResponse(&events[i], now)
	}
	return out, nil
}

// Reconcile repairs drifted participant counters.
func (s *ParticipantService) Reconcile(ctx context.Context) error {
	n, err := s.repo.ReconcileCounts(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Warn("ParticipantService:Reconcile:Corrected", "events", n)
	} else {
		logger.Debug("ParticipantService:Reconcile:Clean")
	}
	return nil
}

// HandleReconcileTask is the asynq handler for queue.TypeParticipantsReconcile.
func (s *ParticipantService) HandleReconcileTask(ctx context.Context, _ *asynq.Task) error {
	return s.Reconcile(ctx)
}

func (s *ParticipantService) notify(ctx context.Context, req *notificationDto.CreateNotificationRequest) {
	if s.notifier == nil {
		return
	}
	if _, appErr := s.notifier.Create(ctx, req); appErr != nil {
		logger.Warn("ParticipantService:Notify:Failed", "type", req.Type, "error", appErr)
	}
}

func toAppError(err error, fallback string) *errors.AppError {
	switch {
	case stderrors.Is(err, repository.ErrEventNotFound):
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	case stderrors.Is(err, repository.ErrRemoved):
		return errors.NewAppError(errors.ErrParticipantRemoved, "You were removed from this event", nil)
	case stderrors.Is(err, repository.ErrAlreadyJoined):
		return errors.NewAppError(errors.ErrAlreadyExists, "Already joined this event", nil)
	case stderrors.Is(err, repository.ErrEventFull):
		return errors.NewAppError(errors.ErrEventFull, "Event is full", nil)
	case stderrors.Is(err, repository.ErrNotParticipant):
		return errors.NewAppError(errors.ErrNotFound, "Not a participant of this event", nil)
	default:
		return errors.NewAppError(errors.ErrInternalServer, fallback, err)
	}
}
