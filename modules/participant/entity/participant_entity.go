package entity

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusRemoved   Status = "removed"
)

type Participant struct {
	ID       uuid.UUID `db:"id"`
	EventID  uuid.UUID `db:"event_id"`
	UserID   uuid.UUID `db:"user_id"`
	Status   Status    `db:"status"`
	JoinedAt time.Time `db:"joined_at"`
}

// ParticipantDetail is a participant row joined with the member's business card.
type ParticipantDetail struct {
	Participant
	CardID          *uuid.UUID `db:"card_id"`
	FullName        *string    `db:"full_name"`
	Company         *string    `db:"company"`
	JobTitle        *string    `db:"job_title"`
	ProfileImageURL *string    `db:"profile_image_url"`
}
