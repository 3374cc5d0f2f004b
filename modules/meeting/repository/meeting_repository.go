package repository

import (
	"context"
	"database/sql"

	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/entity"

	"github.com/google/uuid"
)

// OpenRequestConstraint allows one pending request per direction.
const OpenRequestConstraint = "event_meetings_open_request_key"

type MeetingRepositoryInterface interface {
	Create(ctx context.Context, meeting *entity.Meeting) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error)
	ListForUser(ctx context.Context, eventID, userID uuid.UUID, status entity.Status) ([]entity.Meeting, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.Status) (*entity.Meeting, error)
}

type MeetingRepository struct {
	db database.Database
}

func NewMeetingRepository(db database.Database) *MeetingRepository {
	return &MeetingRepository{db: db}
}

const meetingColumns = `id, event_id, requester_id, receiver_id, status, message, created_at, updated_at, responded_at`

func (r *MeetingRepository) Create(ctx context.Context, meeting *entity.Meeting) error {
	query := `
		INSERT INTO event_meetings (event_id, requester_id, receiver_id, status, message)
		VALUES ($1, $2, $3, 'pending', $4)
		RETURNING ` + meetingColumns
	err := r.db.GetContext(ctx, meeting, query, meeting.EventID, meeting.RequesterID, meeting.ReceiverID, meeting.Message)
	if err != nil {
		if !database.IsUniqueViolation(err, OpenRequestConstraint) {
			logger.Error("MeetingRepository:Create:Error:", err)
		}
		return err
	}
	return nil
}

func (r *MeetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error) {
	var meeting entity.Meeting
	err := r.db.GetContext(ctx, &meeting, `SELECT `+meetingColumns+` FROM event_meetings WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MeetingRepository:GetByID:Error:", err)
		return nil, err
	}
	return &meeting, nil
}

// ListForUser returns the user's meetings in an event. An empty status means any.
func (r *MeetingRepository) ListForUser(ctx context.Context, eventID, userID uuid.UUID, status entity.Status) ([]entity.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM event_meetings
		WHERE event_id = $1 AND (requester_id = $2 OR receiver_id = $2) AND ($3 = '' OR status = $3)
		ORDER BY created_at DESC
	`
	meetings := []entity.Meeting{}
	if err := r.db.SelectContext(ctx, &meetings, query, eventID, userID, string(status)); err != nil {
		logger.Error("MeetingRepository:ListForUser:Error:", err)
		return nil, err
	}
	return meetings, nil
}

// UpdateStatus moves the meeting from one status to another. It returns nil when
// the meeting is no longer in the from status.
func (r *MeetingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.Status) (*entity.Meeting, error) {
	query := `
		UPDATE event_meetings
		SET status = $3, updated_at = NOW(),
		    responded_at = CASE WHEN status = 'pending' THEN NOW() ELSE responded_at END
		WHERE id = $1 AND status = $2
		RETURNING ` + meetingColumns
	var meeting entity.Meeting
	err := r.db.GetContext(ctx, &meeting, query, id, string(from), string(to))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MeetingRepository:UpdateStatus:Error:", err)
		return nil, err
	}
	return &meeting, nil
}
