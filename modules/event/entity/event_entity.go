package entity

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID                  uuid.UUID  `db:"id"`
	Title               string     `db:"title"`
	Description         string     `db:"description"`
	StartDate           time.Time  `db:"start_date"`
	EndDate             time.Time  `db:"end_date"`
	Location            string     `db:"location"`
	MaxParticipants     int        `db:"max_participants"`
	CurrentParticipants int        `db:"current_participants"`
	EventCode           string     `db:"event_code"`
	ImageURL            *string    `db:"image_url"`
	OrganizerName       string     `db:"organizer_name"`
	OrganizerEmail      string     `db:"organizer_email"`
	OrganizerPhone      string     `db:"organizer_phone"`
	CreatedBy           *uuid.UUID `db:"created_by"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

// IsFull reports whether a capped event has no seats left. Zero means unlimited.
func (e *Event) IsFull() bool {
	return e.MaxParticipants > 0 && e.CurrentParticipants >= e.MaxParticipants
}

type PaginatedEvent struct {
	Items      []Event
	TotalItems int
	PageNumber int
	PageSize   int
}
