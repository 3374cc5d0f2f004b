package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	MeetingID uuid.UUID `json:"meeting_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// MessagePage is newest first. NextBefore and NextBeforeID are set when another
// page may exist and are passed back as before and before_id.
type MessagePage struct {
	Items        []MessageResponse `json:"items"`
	NextBefore   *time.Time        `json:"next_before"`
	NextBeforeID *uuid.UUID        `json:"next_before_id"`
}

type ReadReceiptResponse struct {
	MeetingID         uuid.UUID  `json:"meeting_id"`
	MyLastReadAt      *time.Time `json:"my_last_read_at"`
	LastReadAtByOther *time.Time `json:"last_read_at_by_other"`
}
