package repository

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	eventEntity "github.com/neimd2025/web-ndrop-sub000/modules/event/entity"
	"github.com/neimd2025/web-ndrop-sub000/modules/participant/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const participantConstraint = "event_participants_event_user_key"

var (
	ErrEventNotFound  = stderrors.New("event not found")
	ErrRemoved        = stderrors.New("participant was removed from the event")
	ErrAlreadyJoined  = stderrors.New("participant already joined")
	ErrEventFull      = stderrors.New("event is full")
	ErrNotParticipant = stderrors.New("not a confirmed participant")
)

type ParticipantRepositoryInterface interface {
	Join(ctx context.Context, eventID, userID uuid.UUID) (*entity.Participant, error)
	Leave(ctx context.Context, eventID, userID uuid.UUID) error
	Remove(ctx context.Context, eventID, userID uuid.UUID) (*entity.Participant, error)
	List(ctx context.Context, eventID, viewerID uuid.UUID, includeAll bool) ([]entity.ParticipantDetail, error)
	IsConfirmed(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	ListMyEvents(ctx context.Context, userID uuid.UUID) ([]eventEntity.Event, error)
	ReconcileCounts(ctx context.Context) (int64, error)
}

type ParticipantRepository struct {
	db database.Database
}

func NewParticipantRepository(db database.Database) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

type seatRow struct {
	MaxParticipants     int `db:"max_participants"`
	CurrentParticipants int `db:"current_participants"`
}

// lockEvent takes the row lock that serializes joins for one event.
func lockEvent(ctx context.Context, tx *sqlx.Tx, eventID uuid.UUID) (*seatRow, error) {
	var seats seatRow
	err := tx.GetContext(ctx, &seats, `
		SELECT max_participants, current_participants FROM events WHERE id = $1 FOR UPDATE
	`, eventID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &seats, nil
}

func recount(ctx context.Context, tx *sqlx.Tx, eventID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE events
		SET current_participants = (
			SELECT COUNT(*) FROM event_participants WHERE event_id = $1 AND status = 'confirmed'
		), updated_at = NOW()
		WHERE id = $1
	`, eventID)
	return err
}

func (r *ParticipantRepository) Join(ctx context.Context, eventID, userID uuid.UUID) (*entity.Participant, error) {
	var participant entity.Participant
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		seats, err := lockEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}

		var status entity.Status
		err = tx.GetContext(ctx, &status, `
			SELECT status FROM event_participants WHERE event_id = $1 AND user_id = $2
		`, eventID, userID)
		switch {
		case err == nil && status == entity.StatusRemoved:
			return ErrRemoved
		case err == nil:
			return ErrAlreadyJoined
		case !stderrors.Is(err, sql.ErrNoRows):
			return err
		}

		if seats.MaxParticipants > 0 && seats.CurrentParticipants >= seats.MaxParticipants {
			return ErrEventFull
		}

		err = tx.GetContext(ctx, &participant, `
			INSERT INTO event_participants (event_id, user_id, status)
			VALUES ($1, $2, 'confirmed')
			RETURNING id, event_id, user_id, status, joined_at
		`, eventID, userID)
		if database.IsUniqueViolation(err, participantConstraint) {
			return ErrAlreadyJoined
		}
		if err != nil {
			return err
		}
		return recount(ctx, tx, eventID)
	})
	if err != nil {
		if !isDomainError(err) {
			logger.Error("ParticipantRepository:Join:Error:", err)
		}
		return nil, err
	}
	return &participant, nil
}

func (r *ParticipantRepository) Leave(ctx context.Context, eventID, userID uuid.UUID) error {
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := lockEvent(ctx, tx, eventID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `
			DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2 AND status = 'confirmed'
		`, eventID, userID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return ErrNotParticipant
		}
		return recount(ctx, tx, eventID)
	})
	if err != nil && !isDomainError(err) {
		logger.Error("ParticipantRepository:Leave:Error:", err)
	}
	return err
}

// Remove bans the user from the event, inserting a removed row when they never joined.
func (r *ParticipantRepository) Remove(ctx context.Context, eventID, userID uuid.UUID) (*entity.Participant, error) {
	var participant entity.Participant
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := lockEvent(ctx, tx, eventID); err != nil {
			return err
		}
		err := tx.GetContext(ctx, &participant, `
			INSERT INTO event_participants (event_id, user_id, status)
			VALUES ($1, $2, 'removed')
			ON CONFLICT (event_id, user_id) DO UPDATE SET status = 'removed'
			RETURNING id, event_id, user_id, status, joined_at
		`, eventID, userID)
		if err != nil {
			return err
		}
		return recount(ctx, tx, eventID)
	})
	if err != nil {
		if !isDomainError(err) {
			logger.Error("ParticipantRepository:Remove:Error:", err)
		}
		return nil, err
	}
	return &participant, nil
}

// List returns the event's participants with their cards. Without includeAll only
// confirmed rows are listed, and a private card is joined only for its owner (viewerID).
func (r *ParticipantRepository) List(ctx context.Context, eventID, viewerID uuid.UUID, includeAll bool) ([]entity.ParticipantDetail, error) {
	query := `
		SELECT p.id, p.event_id, p.user_id, p.status, p.joined_at,
		       c.id AS card_id, c.full_name, c.company, c.job_title, c.profile_image_url
		FROM event_participants p
		LEFT JOIN business_cards c ON c.user_id = p.user_id AND ($2 OR c.is_public OR c.user_id = $3)
		WHERE p.event_id = $1 AND ($2 OR p.status = 'confirmed')
		ORDER BY p.joined_at ASC
	`
	rows := []entity.ParticipantDetail{}
	if err := r.db.SelectContext(ctx, &rows, query, eventID, includeAll, viewerID); err != nil {
		logger.Error("ParticipantRepository:List:Error:", err)
		return nil, err
	}
	return rows, nil
}

func (r *ParticipantRepository) IsConfirmed(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.GetContext(ctx, &ok, `
		SELECT EXISTS (
			SELECT 1 FROM event_participants
			WHERE event_id = $1 AND user_id = $2 AND status = 'confirmed'
		)
	`, eventID, userID)
	if err != nil {
		logger.Error("ParticipantRepository:IsConfirmed:Error:", err)
		return false, err
	}
	return ok, nil
}

func (r *ParticipantRepository) ListMyEvents(ctx context.Context, userID uuid.UUID) ([]eventEntity.Event, error) {
	query := `
		SELECT e.id, e.title, e.description, e.start_date, e.end_date, e.location, e.max_participants,
		       e.current_participants, e.event_code, e.image_url, e.organizer_name, e.organizer_email,
		       e.organizer_phone, e.created_by, e.created_at, e.updated_at
		FROM events e
		JOIN event_participants p ON p.event_id = e.id
		WHERE p.user_id = $1 AND p.status = 'confirmed'
		ORDER BY e.start_date DESC
	`
	events := []eventEntity.Event{}
	if err := r.db.SelectContext(ctx, &events, query, userID); err != nil {
		logger.Error("ParticipantRepository:ListMyEvents:Error:", err)
		return nil, err
	}
	return events, nil
}

// ReconcileCounts rewrites current_participants wherever it disagrees with the rows.
func (r *ParticipantRepository) ReconcileCounts(ctx context.Context) (int64, error) {
	res, err := r.db.ExecResultContext(ctx, `
		UPDATE events e
		SET current_participants = c.cnt, updated_at = NOW()
		FROM (
			SELECT ev.id, COUNT(p.id) FILTER (WHERE p.status = 'confirmed') AS cnt
			FROM events ev
			LEFT JOIN event_participants p ON p.event_id = ev.id
			GROUP BY ev.id
		) c
		WHERE e.id = c.id AND e.current_participants <> c.cnt
	`)
	if err != nil {
		logger.Error("ParticipantRepository:ReconcileCounts:Error:", err)
		return 0, err
	}
	return res.RowsAffected()
}

func isDomainError(err error) bool {
	return stderrors.Is(err, ErrEventNotFound) ||
		stderrors.Is(err, ErrRemoved) ||
		stderrors.Is(err, ErrAlreadyJoined) ||
		stderrors.Is(err, ErrEventFull) ||
		stderrors.Is(err, ErrNotParticipant)
}
