package dto

import (
	"time"

	"github.com/google/uuid"
)

// JoinEventRequest identifies the event by id or by its join code.
type JoinEventRequest struct {
	EventID   *uuid.UUID `json:"event_id"`
	EventCode string     `json:"event_code" validate:"omitempty,max=16"`
}

type LeaveEventRequest struct {
	EventID uuid.UUID `json:"event_id" validate:"required"`
}

type RemoveParticipantRequest struct {
	EventID uuid.UUID `json:"event_id" validate:"required"`
	UserID  uuid.UUID `json:"user_id" validate:"required"`
}

type ParticipantResponse struct {
	ID              uuid.UUID  `json:"id"`
	EventID         uuid.UUID  `json:"event_id"`
	UserID          uuid.UUID  `json:"user_id"`
	Status          string     `json:"status"`
	JoinedAt        time.Time  `json:"joined_at"`
	CardID          *uuid.UUID `json:"card_id,omitempty"`
	FullName        string     `json:"full_name,omitempty"`
	Company         string     `json:"company,omitempty"`
	JobTitle        string     `json:"job_title,omitempty"`
	ProfileImageURL *string    `json:"profile_image_url,omitempty"`
}

type JoinEventResponse struct {
	Participant ParticipantResponse `json:"participant"`
	EventTitle  string              `json:"event_title"`
}

type ReconcilePayload struct{}
