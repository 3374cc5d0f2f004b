package repository

import (
	"context"
	"database/sql"

	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/core/params"
	"github.com/neimd2025/web-ndrop-sub000/modules/event/entity"

	"github.com/google/uuid"
)

// CodeConstraint is the unique constraint on events.event_code.
const CodeConstraint = "events_event_code_key"

type EventRepositoryInterface interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetByCode(ctx context.Context, code string) (*entity.Event, error)
	List(ctx context.Context, params params.QueryParams) (*entity.PaginatedEvent, error)
	Update(ctx context.Context, event *entity.Event, checkCapacity bool) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type EventRepository struct {
	db database.Database
}

func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, start_date, end_date, location, max_participants,
	current_participants, event_code, image_url, organizer_name, organizer_email, organizer_phone,
	created_by, created_at, updated_at`

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (title, description, start_date, end_date, location, max_participants,
			event_code, image_url, organizer_name, organizer_email, organizer_phone, created_by)
		VALUES (:title, :description, :start_date, :end_date, :location, :max_participants,
			:event_code, :image_url, :organizer_name, :organizer_email, :organizer_phone, :created_by)
		RETURNING id, current_participants, created_at, updated_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, event)
	if err != nil {
		if !database.IsUniqueViolation(err, CodeConstraint) {
			logger.Error("EventRepository:Create:Error:", err)
		}
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&event.ID, &event.CurrentParticipants, &event.CreatedAt, &event.UpdatedAt)
	}
	return rows.Err()
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var event entity.Event
	err := r.db.GetContext(ctx, &event, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID:Error:", err)
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) GetByCode(ctx context.Context, code string) (*entity.Event, error) {
	var event entity.Event
	err := r.db.GetContext(ctx, &event, `SELECT `+eventColumns+` FROM events WHERE event_code = $1`, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetByCode:Error:", err)
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) List(ctx context.Context, params params.QueryParams) (*entity.PaginatedEvent, error) {
	where := `WHERE $1 = '' OR title ILIKE '%' || $1 || '%' OR location ILIKE '%' || $1 || '%'`

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM events `+where, params.Search); err != nil {
		logger.Error("EventRepository:List:Count:Error:", err)
		return nil, err
	}

	events := []entity.Event{}
	query := `SELECT ` + eventColumns + ` FROM events ` + where + ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &events, query, params.Search, params.PageSize, params.Offset()); err != nil {
		logger.Error("EventRepository:List:Error:", err)
		return nil, err
	}

	return &entity.PaginatedEvent{
		Items:      events,
		TotalItems: total,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

// Update writes every mutable column. It reports false when the row is gone or, with
// checkCapacity, when max_participants would drop below the current head count.
func (r *EventRepository) Update(ctx context.Context, event *entity.Event, checkCapacity bool) (bool, error) {
	query := `
		UPDATE events
		SET title = $2, description = $3, start_date = $4, end_date = $5, location = $6,
		    max_participants = $7, image_url = $8, organizer_name = $9, organizer_email = $10,
		    organizer_phone = $11, updated_at = NOW()
		WHERE id = $1 AND (NOT $12 OR $7 = 0 OR $7 >= current_participants)
		RETURNING current_participants, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		event.ID, event.Title, event.Description, event.StartDate, event.EndDate, event.Location,
		event.MaxParticipants, event.ImageURL, event.OrganizerName, event.OrganizerEmail,
		event.OrganizerPhone, checkCapacity,
	).Scan(&event.CurrentParticipants, &event.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		logger.Error("EventRepository:Update:Error:", err)
		return false, err
	}
	return true, nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecResultContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		logger.Error("EventRepository:Delete:Error:", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
