package service

import (
	"context"

	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/params"
	"github.com/neimd2025/web-ndrop-sub000/core/storage"
	eventDto "github.com/neimd2025/web-ndrop-sub000/modules/event/dto"
	notificationDto "github.com/neimd2025/web-ndrop-sub000/modules/notification/dto"
	participantDto "github.com/neimd2025/web-ndrop-sub000/modules/participant/dto"

	"github.com/google/uuid"
)

// The admin console delegates to the owning modules through these.

type EventManager interface {
	List(ctx context.Context, queryParams params.QueryParams) (*eventDto.PaginatedEventResponse, *errors.AppError)
	Create(ctx context.Context, req *eventDto.CreateEventRequest) (*eventDto.EventResponse, *errors.AppError)
	Update(ctx context.Context, id uuid.UUID, req *eventDto.UpdateEventRequest) (*eventDto.EventResponse, *errors.AppError)
	Delete(ctx context.Context, id uuid.UUID) *errors.AppError
	GenerateQR(ctx context.Context, id uuid.UUID) (*eventDto.QRCodeResponse, *errors.AppError)
}

type ParticipantManager interface {
	GetAllParticipants(ctx context.Context, eventID uuid.UUID) ([]participantDto.ParticipantResponse, *errors.AppError)
	Remove(ctx context.Context, eventID, userID uuid.UUID) (*participantDto.ParticipantResponse, *errors.AppError)
}

type NoticeSender interface {
	Create(ctx context.Context, req *notificationDto.CreateNotificationRequest) (*notificationDto.NotificationResponse, *errors.AppError)
}

type ImageUploader interface {
	Upload(ctx context.Context, folder, filename string, data []byte) (*storage.UploadedImage, error)
}

// Console bundles the services the admin routes act on. Images may be nil
// when object storage is not configured.
type Console struct {
	Events        EventManager
	Participants  ParticipantManager
	Notifications NoticeSender
	Images        ImageUploader
}
