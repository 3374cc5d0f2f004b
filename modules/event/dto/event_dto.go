package dto

import (
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/dto"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title           string     `json:"title" validate:"required,max=200"`
	Description     string     `json:"description" validate:"max=5000"`
	StartDate       time.Time  `json:"start_date" validate:"required"`
	EndDate         time.Time  `json:"end_date" validate:"required"`
	Location        string     `json:"location" validate:"max=300"`
	MaxParticipants int        `json:"max_participants" validate:"min=0,max=100000"`
	ImageURL        *string    `json:"image_url" validate:"omitempty,url"`
	OrganizerName   string     `json:"organizer_name" validate:"max=100"`
	OrganizerEmail  string     `json:"organizer_email" validate:"omitempty,email"`
	OrganizerPhone  string     `json:"organizer_phone" validate:"max=50"`
	CreatedBy       *uuid.UUID `json:"-"`
}

// UpdateEventRequest is a partial update; nil fields are left untouched.
type UpdateEventRequest struct {
	Title           *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description     *string    `json:"description" validate:"omitempty,max=5000"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Location        *string    `json:"location" validate:"omitempty,max=300"`
	MaxParticipants *int       `json:"max_participants" validate:"omitempty,min=0,max=100000"`
	ImageURL        *string    `json:"image_url" validate:"omitempty,url"`
	OrganizerName   *string    `json:"organizer_name" validate:"omitempty,max=100"`
	OrganizerEmail  *string    `json:"organizer_email" validate:"omitempty,email"`
	OrganizerPhone  *string    `json:"organizer_phone" validate:"omitempty,max=50"`
}

type GenerateQRRequest struct {
	EventID uuid.UUID `json:"event_id" validate:"required"`
}

type EventResponse struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date"`
	Location            string    `json:"location"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	EventCode           string    `json:"event_code"`
	Status              string    `json:"status"`
	ImageURL            *string   `json:"image_url"`
	OrganizerName       string    `json:"organizer_name"`
	OrganizerEmail      string    `json:"organizer_email"`
	OrganizerPhone      string    `json:"organizer_phone"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type PaginatedEventResponse = dto.Pagination[EventResponse]

type QRCodeResponse struct {
	EventID   uuid.UUID `json:"event_id"`
	EventCode string    `json:"event_code"`
	JoinURL   string    `json:"join_url"`
	// PNG image, base64 encoded.
	QRCode string `json:"qr_code"`
}
