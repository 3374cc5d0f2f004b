package entity

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusConfirmed Status = "confirmed"
	StatusDeclined  Status = "declined"
	StatusCanceled  Status = "canceled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusConfirmed, StatusDeclined, StatusCanceled:
		return true
	}
	return false
}

// ChatOpen reports whether messages may be exchanged in this status.
func (s Status) ChatOpen() bool {
	return s == StatusAccepted || s == StatusConfirmed
}

type Meeting struct {
	ID          uuid.UUID  `db:"id"`
	EventID     uuid.UUID  `db:"event_id"`
	RequesterID uuid.UUID  `db:"requester_id"`
	ReceiverID  uuid.UUID  `db:"receiver_id"`
	Status      Status     `db:"status"`
	Message     string     `db:"message"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	RespondedAt *time.Time `db:"responded_at"`
}

func (m *Meeting) IsParty(userID uuid.UUID) bool {
	return m.RequesterID == userID || m.ReceiverID == userID
}

// Counterpart returns the other party of the meeting.
func (m *Meeting) Counterpart(userID uuid.UUID) uuid.UUID {
	if m.RequesterID == userID {
		return m.ReceiverID
	}
	return m.RequesterID
}
