package service

import (
	"context"
	"encoding/json"

	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/core/params"
	"github.com/neimd2025/web-ndrop-sub000/core/queue"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification/entity"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification/mapper"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification/repository"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification/validator"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Publisher pushes a payload to a pub/sub channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type NotificationServiceInterface interface {
	Create(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, *errors.AppError)
	GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*dto.PaginatedNotificationResponse, *errors.AppError)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) *errors.AppError
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError
	CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError)
	StreamChannels(ctx context.Context, userID uuid.UUID) ([]string, *errors.AppError)
	Deliver(ctx context.Context, notificationID uuid.UUID) error
}

type NotificationService struct {
	repo      repository.NotificationRepositoryInterface
	queue     queue.Enqueuer
	publisher Publisher
}

func NewNotificationService(repo repository.NotificationRepositoryInterface, enqueuer queue.Enqueuer, publisher Publisher) *NotificationService {
	return &NotificationService{repo: repo, queue: enqueuer, publisher: publisher}
}

// Create stores one row for the logical notification and schedules its realtime delivery.
func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if result := validator.ValidateCreateNotificationRequest(req); result.HasError() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid notification", nil).WithDetails(result.Errors)
	}

	notif := mapper.ToNotificationEntity(req)
	if notif.TargetType == entity.TargetEventParticipants {
		exists, err := s.repo.EventExists(ctx, *notif.TargetEventID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to check target event", err)
		}
		if !exists {
			return nil, errors.NewAppError(errors.ErrNotFound, "Target event not found", nil)
		}
	}

	if err := s.repo.Create(ctx, notif); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create notification", err)
	}

	if s.queue != nil {
		err := s.queue.Enqueue(ctx, queue.TypeNotificationDeliver,
			dto.DeliverPayload{NotificationID: notif.ID},
			asynq.Queue(queue.QueueDefault), asynq.MaxRetry(3))
		if err != nil {
			logger.Warn("NotificationService:Create:Enqueue", "notification_id", notif.ID, "error", err)
		}
	}

	return mapper.ToNotificationResponse(notif, nil), nil
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*dto.PaginatedNotificationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.ListForUser(ctx, userID, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get notifications", err)
	}
	return mapper.ToNotificationPaginationResponse(page), nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, err := s.repo.MarkAsRead(ctx, userID, ids); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "Failed to mark as read", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	n, err := s.repo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "Failed to mark all as read", err)
	}
	logger.Debug("NotificationService:MarkAllAsRead", "user_id", userID, "marked", n)
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrGetFailed, "Failed to count unread", err)
	}
	return count, nil
}

// StreamChannels lists the pub/sub channels a user's notification stream listens on.
func (s *NotificationService) StreamChannels(ctx context.Context, userID uuid.UUID) ([]string, *errors.AppError) {
	eventIDs, err := s.repo.JoinedEventIDs(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load joined events", err)
	}
	channels := []string{
		constants.ChannelNotificationUser + userID.String(),
		constants.ChannelNotificationAll,
	}
	for _, id := range eventIDs {
		channels = append(channels, constants.ChannelNotificationEvt+id.String())
	}
	return channels, nil
}

// Deliver publishes a stored notification to its target channel.
func (s *NotificationService) Deliver(ctx context.Context, notificationID uuid.UUID) error {
	notif, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notif == nil {
		logger.Warn("NotificationService:Deliver:NotFound", "notification_id", notificationID)
		return nil
	}

	channel := ChannelFor(notif)
	if channel == "" || s.publisher == nil {
		return nil
	}

	payload, err := json.Marshal(mapper.ToRealtimeNotification(notif))
	if err != nil {
		return err
	}
	return s.publisher.Publish(ctx, channel, payload)
}

// ChannelFor returns the realtime channel for a notification's target.
func ChannelFor(n *entity.Notification) string {
	switch n.TargetType {
	case entity.TargetAll:
		return constants.ChannelNotificationAll
	case entity.TargetSpecific:
		if n.UserID != nil {
			return constants.ChannelNotificationUser + n.UserID.String()
		}
	case entity.TargetEventParticipants:
		if n.TargetEventID != nil {
			return constants.ChannelNotificationEvt + n.TargetEventID.String()
		}
	}
	return ""
}

// HandleDeliverTask is the asynq handler for queue.TypeNotificationDeliver.
func (s *NotificationService) HandleDeliverTask(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.Decode[dto.DeliverPayload](task)
	if err != nil {
		return err
	}
	return s.Deliver(ctx, payload.NotificationID)
}
