package repository

import (
	"context"
	"database/sql"

	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/core/params"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	EventExists(ctx context.Context, eventID uuid.UUID) (bool, error)
	ListForUser(ctx context.Context, userID uuid.UUID, params params.QueryParams) (*entity.PaginatedUserNotification, error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	JoinedEventIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type NotificationRepository struct {
	db database.Database
}

func NewNotificationRepository(db database.Database) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// visibleTo matches the notifications a user ($1) receives.
const visibleTo = `(
	n.target_type = 'all'
	OR (n.target_type = 'specific' AND n.user_id = $1)
	OR (n.target_type = 'event_participants' AND EXISTS (
		SELECT 1 FROM event_participants p
		WHERE p.event_id = n.target_event_id AND p.user_id = $1 AND p.status = 'confirmed'
	))
)`

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (title, message, notification_type, target_type, user_id, target_event_id, metadata, created_by)
		VALUES (:title, :message, :notification_type, :target_type, :user_id, :target_event_id, :metadata, :created_by)
		RETURNING id, created_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, notification)
	if err != nil {
		logger.Error("NotificationRepository:Create:Error:", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&notification.ID, &notification.CreatedAt)
	}
	return rows.Err()
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	var n entity.Notification
	err := r.db.GetContext(ctx, &n, `
		SELECT id, title, message, notification_type, target_type, user_id, target_event_id, metadata, created_by, created_at
		FROM notifications WHERE id = $1
	`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("NotificationRepository:GetByID:Error:", err)
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) EventExists(ctx context.Context, eventID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID)
	return exists, err
}

func (r *NotificationRepository) ListForUser(ctx context.Context, userID uuid.UUID, params params.QueryParams) (*entity.PaginatedUserNotification, error) {
	var totalItems int
	err := r.db.GetContext(ctx, &totalItems, `SELECT COUNT(*) FROM notifications n WHERE `+visibleTo, userID)
	if err != nil {
		logger.Error("NotificationRepository:ListForUser:Count:Error:", err)
		return nil, err
	}

	query := `
		SELECT n.id, n.title, n.message, n.notification_type, n.target_type, n.user_id,
		       n.target_event_id, n.metadata, n.created_by, n.created_at, r.read_at
		FROM notifications n
		LEFT JOIN notification_reads r ON r.notification_id = n.id AND r.user_id = $1
		WHERE ` + visibleTo + `
		ORDER BY n.created_at DESC
		LIMIT $2 OFFSET $3
	`
	notifications := []entity.UserNotification{}
	err = r.db.SelectContext(ctx, &notifications, query, userID, params.PageSize, params.Offset())
	if err != nil {
		logger.Error("NotificationRepository:ListForUser:Select:Error:", err)
		return nil, err
	}

	return &entity.PaginatedUserNotification{
		Items:      notifications,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

// MarkAsRead records reads for the visible notifications among ids. Already read rows are left alone.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	res, err := r.db.ExecResultContext(ctx, `
		INSERT INTO notification_reads (notification_id, user_id, read_at)
		SELECT n.id, $1, now() FROM notifications n
		WHERE n.id = ANY($2::uuid[]) AND `+visibleTo+`
		ON CONFLICT (notification_id, user_id) DO NOTHING
	`, userID, pq.Array(strIDs))
	if err != nil {
		logger.Error("NotificationRepository:MarkAsRead:Error:", err)
		return 0, err
	}
	return res.RowsAffected()
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res, err := r.db.ExecResultContext(ctx, `
		INSERT INTO notification_reads (notification_id, user_id, read_at)
		SELECT n.id, $1, now() FROM notifications n
		WHERE `+visibleTo+`
		ON CONFLICT (notification_id, user_id) DO NOTHING
	`, userID)
	if err != nil {
		logger.Error("NotificationRepository:MarkAllAsRead:Error:", err)
		return 0, err
	}
	return res.RowsAffected()
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM notifications n
		WHERE `+visibleTo+`
		AND NOT EXISTS (
			SELECT 1 FROM notification_reads r WHERE r.notification_id = n.id AND r.user_id = $1
		)
	`, userID)
	if err != nil {
		logger.Error("NotificationRepository:CountUnread:Error:", err)
		return 0, err
	}
	return count, nil
}

func (r *NotificationRepository) JoinedEventIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.db.SelectContext(ctx, &ids, `
		SELECT event_id FROM event_participants WHERE user_id = $1 AND status = 'confirmed'
	`, userID)
	if err != nil {
		logger.Error("NotificationRepository:JoinedEventIDs:Error:", err)
		return nil, err
	}
	return ids, nil
}
