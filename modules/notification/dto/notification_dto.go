package dto

import (
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/dto"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID            uuid.UUID      `json:"id"`
	Title         string         `json:"title"`
	Message       string         `json:"message"`
	Type          string         `json:"notification_type"`
	TargetType    string         `json:"target_type"`
	UserID        *uuid.UUID     `json:"user_id,omitempty"`
	TargetEventID *uuid.UUID     `json:"target_event_id,omitempty"`
	Metadata      map[string]any `json:"metadata"`
	IsRead        bool           `json:"is_read"`
	ReadAt        *time.Time     `json:"read_at"`
	CreatedAt     time.Time      `json:"created_at"`
}

type PaginatedNotificationResponse = dto.Pagination[NotificationResponse]

type MarkAsReadRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1,max=100"`
}

type CreateNotificationRequest struct {
	Title         string         `json:"title" validate:"required,max=200"`
	Message       string         `json:"message" validate:"required,max=2000"`
	Type          string         `json:"notification_type" validate:"omitempty,max=50"`
	TargetType    string         `json:"target_type" validate:"required,oneof=all specific event_participants"`
	UserID        *uuid.UUID     `json:"user_id"`
	TargetEventID *uuid.UUID     `json:"target_event_id"`
	Metadata      map[string]any `json:"metadata"`
	CreatedBy     *uuid.UUID     `json:"-"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

// RealtimeNotification is the payload published on notification channels.
type RealtimeNotification struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Type       string    `json:"notification_type"`
	TargetType string    `json:"target_type"`
	CreatedAt  time.Time `json:"created_at"`
}

type DeliverPayload struct {
	NotificationID uuid.UUID `json:"notification_id"`
}
