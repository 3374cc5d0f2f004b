package service

import (
	"context"

	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/entity"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/mapper"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/repository"
	notificationDto "github.com/neimd2025/web-ndrop-sub000/modules/notification/dto"
	notificationEntity "github.com/neimd2025/web-ndrop-sub000/modules/notification/entity"

	"github.com/google/uuid"
)

// ParticipantChecker reports confirmed participation in an event.
type ParticipantChecker interface {
	IsConfirmed(ctx context.Context, eventID, userID uuid.UUID) (bool, *errors.AppError)
}

type Notifier interface {
	Create(ctx context.Context, req *notificationDto.CreateNotificationRequest) (*notificationDto.NotificationResponse, *errors.AppError)
}

type MeetingServiceInterface interface {
	Create(ctx context.Context, eventID, requesterID uuid.UUID, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, *errors.AppError)
	List(ctx context.Context, eventID, userID uuid.UUID, status string) ([]dto.MeetingResponse, *errors.AppError)
	Get(ctx context.Context, eventID, meetingID, userID uuid.UUID) (*dto.MeetingResponse, *errors.AppError)
	Respond(ctx context.Context, eventID, meetingID, userID uuid.UUID, action entity.Action) (*dto.MeetingResponse, *errors.AppError)
	Find(ctx context.Context, meetingID uuid.UUID) (*entity.Meeting, *errors.AppError)
}

type MeetingService struct {
	repo         repository.MeetingRepositoryInterface
	participants ParticipantChecker
	notifier     Notifier
}

func NewMeetingService(repo repository.MeetingRepositoryInterface, participants ParticipantChecker, notifier Notifier) *MeetingService {
	return &MeetingService{repo: repo, participants: participants, notifier: notifier}
}

// Create opens a pending request from requester to the receiver.
func (s *MeetingService) Create(ctx context.Context, eventID, requesterID uuid.UUID, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if req.ReceiverID == requesterID {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Cannot request a meeting with yourself", nil)
	}

	for _, userID := range []uuid.UUID{requesterID, req.ReceiverID} {
		ok, appErr := s.participants.IsConfirmed(ctx, eventID, userID)
		if appErr != nil {
			return nil, appErr
		}
		if !ok {
			return nil, errors.NewAppError(errors.ErrForbidden, "Both users must be participants of the event", nil)
		}
	}

	meeting := &entity.Meeting{
		EventID:     eventID,
		RequesterID: requesterID,
		ReceiverID:  req.ReceiverID,
		Message:     req.Message,
	}
	if err := s.repo.Create(ctx, meeting); err != nil {
		if database.IsUniqueViolation(err, repository.OpenRequestConstraint) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "A pending request to this user already exists", nil)
		}
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create meeting request", err)
	}

	s.notify(ctx, meeting, notificationEntity.TypeMeetingRequest, meeting.ReceiverID,
		"New meeting request", "You have a new meeting request.")

	return mapper.ToMeetingResponse(meeting), nil
}

func (s *MeetingService) List(ctx context.Context, eventID, userID uuid.UUID, status string) ([]dto.MeetingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	filter := entity.Status(status)
	if filter != "" && !filter.Valid() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid status filter", nil)
	}

	meetings, err := s.repo.ListForUser(ctx, eventID, userID, filter)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get meetings", err)
	}
	return mapper.ToMeetingResponses(meetings), nil
}

func (s *MeetingService) Get(ctx context.Context, eventID, meetingID, userID uuid.UUID) (*dto.MeetingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	meeting, appErr := s.visible(ctx, eventID, meetingID, userID)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToMeetingResponse(meeting), nil
}

// Respond applies action as userID. The write is conditional on the expected current
// status, so a concurrent transition makes the loser fail with a conflict.
func (s *MeetingService) Respond(ctx context.Context, eventID, meetingID, userID uuid.UUID, action entity.Action) (*dto.MeetingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	transition, ok := entity.TransitionFor(action)
	if !ok {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Unknown action", nil)
	}

	meeting, appErr := s.visible(ctx, eventID, meetingID, userID)
	if appErr != nil {
		return nil, appErr
	}
	if !transition.Allows(meeting, userID) {
		return nil, errors.NewAppError(errors.ErrForbidden, "You cannot "+string(action)+" this meeting", nil)
	}

	updated, err := s.repo.UpdateStatus(ctx, meeting.ID, transition.From, transition.To)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update meeting", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrConflict, "Meeting is no longer "+string(transition.From), nil)
	}

	notifType, title := transitionNotice(transition.To)
	s.notify(ctx, updated, notifType, updated.Counterpart(userID), title, title+".")

	return mapper.ToMeetingResponse(updated), nil
}

// Find loads a meeting without any visibility check.
func (s *MeetingService) Find(ctx context.Context, meetingID uuid.UUID) (*entity.Meeting, *errors.AppError) {
	meeting, err := s.repo.GetByID(ctx, meetingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get meeting", err)
	}
	if meeting == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Meeting not found", nil)
	}
	return meeting, nil
}

// visible loads a meeting of the event that userID is a party to.
func (s *MeetingService) visible(ctx context.Context, eventID, meetingID, userID uuid.UUID) (*entity.Meeting, *errors.AppError) {
	meeting, appErr := s.Find(ctx, meetingID)
	if appErr != nil {
		return nil, appErr
	}
	if meeting.EventID != eventID || !meeting.IsParty(userID) {
		return nil, errors.NewAppError(errors.ErrNotFound, "Meeting not found", nil)
	}
	return meeting, nil
}

func transitionNotice(to entity.Status) (string, string) {
	switch to {
	case entity.StatusAccepted:
		return notificationEntity.TypeMeetingAccepted, "Meeting request accepted"
	case entity.StatusDeclined:
		return notificationEntity.TypeMeetingDeclined, "Meeting request declined"
	case entity.StatusCanceled:
		return notificationEntity.TypeMeetingCanceled, "Meeting request canceled"
	default:
		return notificationEntity.TypeMeetingConfirmed, "Meeting confirmed"
	}
}

func (s *MeetingService) notify(ctx context.Context, m *entity.Meeting, notifType string, recipient uuid.UUID, title, message string) {
	if s.notifier == nil {
		return
	}
	_, appErr := s.notifier.Create(ctx, &notificationDto.CreateNotificationRequest{
		Title:      title,
		Message:    message,
		Type:       notifType,
		TargetType: string(notificationEntity.TargetSpecific),
		UserID:     &recipient,
		Metadata: map[string]any{
			"event_id":   m.EventID.String(),
			"meeting_id": m.ID.String(),
		},
	})
	if appErr != nil {
		logger.Warn("MeetingService:Notify:Failed", "meeting_id", m.ID, "type", notifType, "error", appErr)
	}
}
