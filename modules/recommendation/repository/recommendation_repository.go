package repository

import (
	"context"
	"database/sql"

	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/modules/recommendation/entity"

	"github.com/google/uuid"
)

type RecommendationRepositoryInterface interface {
	GetCaller(ctx context.Context, userID uuid.UUID) (*entity.Candidate, error)
	ListCandidates(ctx context.Context, eventID, excludeUserID uuid.UUID) ([]entity.Candidate, error)
}

type RecommendationRepository struct {
	db database.Database
}

func NewRecommendationRepository(db database.Database) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

const candidateColumns = `c.user_id, c.id AS card_id, c.full_name, c.company, c.job_title, c.introduction,
	c.mbti, c.keywords, c.interests, c.hobbies, c.profile_image_url`

// GetCaller returns the caller's own card regardless of its visibility.
func (r *RecommendationRepository) GetCaller(ctx context.Context, userID uuid.UUID) (*entity.Candidate, error) {
	var caller entity.Candidate
	err := r.db.GetContext(ctx, &caller, `SELECT `+candidateColumns+` FROM business_cards c WHERE c.user_id = $1`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("RecommendationRepository:GetCaller:Error:", err)
		return nil, err
	}
	return &caller, nil
}

// ListCandidates returns the confirmed participants of an event with a public card.
func (r *RecommendationRepository) ListCandidates(ctx context.Context, eventID, excludeUserID uuid.UUID) ([]entity.Candidate, error) {
	query := `
		SELECT ` + candidateColumns + `
		FROM event_participants p
		JOIN business_cards c ON c.user_id = p.user_id
		WHERE p.event_id = $1 AND p.status = 'confirmed' AND c.is_public AND p.user_id <> $2
	`
	candidates := []entity.Candidate{}
	if err := r.db.SelectContext(ctx, &candidates, query, eventID, excludeUserID); err != nil {
		logger.Error("RecommendationRepository:ListCandidates:Error:", err)
		return nil, err
	}
	return candidates, nil
}
