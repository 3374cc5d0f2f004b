package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/entity"

	"github.com/google/uuid"
)

type TargetType string

const (
	TargetAll               TargetType = "all"
	TargetSpecific          TargetType = "specific"
	TargetEventParticipants TargetType = "event_participants"
)

func (t TargetType) Valid() bool {
	switch t {
	case TargetAll, TargetSpecific, TargetEventParticipants:
		return true
	}
	return false
}

// Notification types written by the other modules.
const (
	TypeNotice           = "notice"
	TypeEventJoined      = "event_joined"
	TypeEventRemoved     = "event_removed"
	TypeMeetingRequest   = "meeting_request"
	TypeMeetingAccepted  = "meeting_accepted"
	TypeMeetingDeclined  = "meeting_declined"
	TypeMeetingCanceled  = "meeting_canceled"
	TypeMeetingConfirmed = "meeting_confirmed"
	TypeCardCollected    = "card_collected"
)

type Notification struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	Title            string     `db:"title" json:"title"`
	Message          string     `db:"message" json:"message"`
	NotificationType string     `db:"notification_type" json:"notification_type"`
	TargetType       TargetType `db:"target_type" json:"target_type"`
	UserID           *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	TargetEventID    *uuid.UUID `db:"target_event_id" json:"target_event_id,omitempty"`
	Metadata         JSONB      `db:"metadata" json:"metadata"`
	CreatedBy        *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// UserNotification is a notification as seen by one recipient.
type UserNotification struct {
	Notification
	ReadAt *time.Time `db:"read_at" json:"read_at"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

func (a *JSONB) Scan(value any) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, a)
}

type PaginatedUserNotification = entity.Pagination[UserNotification]
