package repository

import (
	"context"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/modules/chat/entity"

	"github.com/google/uuid"
)

type ChatRepositoryInterface interface {
	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, meetingID uuid.UUID, cursor *entity.Cursor, limit int) ([]entity.Message, error)
	MarkRead(ctx context.Context, meetingID, userID uuid.UUID) (time.Time, error)
	GetReceipts(ctx context.Context, meetingID uuid.UUID) ([]entity.ReadReceipt, error)
}

type ChatRepository struct {
	db database.Database
}

func NewChatRepository(db database.Database) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	err := r.db.GetContext(ctx, message, `
		INSERT INTO event_meeting_messages (meeting_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, meeting_id, sender_id, content, created_at
	`, message.MeetingID, message.SenderID, message.Content)
	if err != nil {
		logger.Error("ChatRepository:CreateMessage:Error:", err)
		return err
	}
	return nil
}

func (r *ChatRepository) ListMessages(ctx context.Context, meetingID uuid.UUID, cursor *entity.Cursor, limit int) ([]entity.Message, error) {
	query := `
		SELECT id, meeting_id, sender_id, content, created_at
		FROM event_meeting_messages
		WHERE meeting_id = $1 AND ($2::timestamptz IS NULL OR (created_at, id) < ($2::timestamptz, $3::uuid))
		ORDER BY created_at DESC, id DESC
		LIMIT $4
	`
	var (
		before   *time.Time
		beforeID uuid.UUID
	)
	if cursor != nil {
		before, beforeID = &cursor.Before, cursor.BeforeID
	}
	messages := []entity.Message{}
	if err := r.db.SelectContext(ctx, &messages, query, meetingID, before, beforeID, limit); err != nil {
		logger.Error("ChatRepository:ListMessages:Error:", err)
		return nil, err
	}
	return messages, nil
}

func (r *ChatRepository) MarkRead(ctx context.Context, meetingID, userID uuid.UUID) (time.Time, error) {
	var readAt time.Time
	err := r.db.GetContext(ctx, &readAt, `
		INSERT INTO meeting_read_receipts (meeting_id, user_id, last_read_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (meeting_id, user_id) DO UPDATE SET last_read_at = EXCLUDED.last_read_at
		RETURNING last_read_at
	`, meetingID, userID)
	if err != nil {
		logger.Error("ChatRepository:MarkRead:Error:", err)
		return time.Time{}, err
	}
	return readAt, nil
}

func (r *ChatRepository) GetReceipts(ctx context.Context, meetingID uuid.UUID) ([]entity.ReadReceipt, error) {
	receipts := []entity.ReadReceipt{}
	err := r.db.SelectContext(ctx, &receipts, `
		SELECT meeting_id, user_id, last_read_at FROM meeting_read_receipts WHERE meeting_id = $1
	`, meetingID)
	if err != nil {
		logger.Error("ChatRepository:GetReceipts:Error:", err)
		return nil, err
	}
	return receipts, nil
}
