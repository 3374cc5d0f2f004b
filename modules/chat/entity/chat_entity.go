package entity

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        uuid.UUID `db:"id"`
	MeetingID uuid.UUID `db:"meeting_id"`
	SenderID  uuid.UUID `db:"sender_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

type ReadReceipt struct {
	MeetingID  uuid.UUID `db:"meeting_id"`
	UserID     uuid.UUID `db:"user_id"`
	LastReadAt time.Time `db:"last_read_at"`
}

// Cursor is the position of the last message of a page. Pages are ordered by
// (created_at, id) descending; a nil BeforeID compares on created_at alone.
type Cursor struct {
	Before   time.Time
	BeforeID uuid.UUID
}

// After reports whether m sorts after the cursor, that is, m is older.
func (c Cursor) After(m *Message) bool {
	if !m.CreatedAt.Equal(c.Before) {
		return m.CreatedAt.Before(c.Before)
	}
	return bytes.Compare(m.ID[:], c.BeforeID[:]) < 0
}
