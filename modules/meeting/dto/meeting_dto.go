package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMeetingRequest struct {
	ReceiverID uuid.UUID `json:"receiver_id" validate:"required"`
	Message    string    `json:"message" validate:"max=1000"`
}

type UpdateMeetingRequest struct {
	Action string `json:"action" validate:"required,oneof=accept decline cancel confirm"`
}

type MeetingResponse struct {
	ID          uuid.UUID  `json:"id"`
	EventID     uuid.UUID  `json:"event_id"`
	RequesterID uuid.UUID  `json:"requester_id"`
	ReceiverID  uuid.UUID  `json:"receiver_id"`
	Status      string     `json:"status"`
	Message     string     `json:"message"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	RespondedAt *time.Time `json:"responded_at"`
}
