package repository

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/core/params"
	"github.com/neimd2025/web-ndrop-sub000/modules/card/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CollectedConstraint allows a card to be collected once per collector.
const CollectedConstraint = "collected_cards_collector_card_key"

var ErrProfileNotFound = stderrors.New("profile not found")

type CardRepositoryInterface interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	UpsertProfile(ctx context.Context, profile *entity.Profile) (*entity.BusinessCard, error)
	SetVisibility(ctx context.Context, userID uuid.UUID, public bool) (*entity.BusinessCard, error)
	SetProfileImage(ctx context.Context, userID uuid.UUID, url string) (*entity.BusinessCard, error)
	GetCard(ctx context.Context, cardID uuid.UUID) (*entity.BusinessCard, error)
	GetCardByUser(ctx context.Context, userID uuid.UUID) (*entity.BusinessCard, error)
	Collect(ctx context.Context, collected *entity.CollectedCard) error
	ListCollected(ctx context.Context, collectorID uuid.UUID, params params.QueryParams) (*entity.PaginatedCollectedCard, error)
	RemoveCollected(ctx context.Context, collectorID, id uuid.UUID) (bool, error)
}

type CardRepository struct {
	db database.Database
}

func NewCardRepository(db database.Database) *CardRepository {
	return &CardRepository{db: db}
}

const profileColumns = `id, full_name, email, phone, company, job_title, introduction, mbti,
	keywords, interests, hobbies, profile_image_url, is_public, created_at, updated_at`

const cardColumns = `id, user_id, full_name, company, job_title, email, phone, introduction, mbti,
	keywords, interests, hobbies, profile_image_url, is_public, updated_at`

// regenerateCard rewrites the business card of userID from the profile row.
func regenerateCard(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (*entity.BusinessCard, error) {
	var card entity.BusinessCard
	err := tx.GetContext(ctx, &card, `
		INSERT INTO business_cards (user_id, full_name, company, job_title, email, phone, introduction,
			mbti, keywords, interests, hobbies, profile_image_url, is_public, updated_at)
		SELECT id, full_name, company, job_title, email, phone, introduction,
			mbti, keywords, interests, hobbies, profile_image_url, is_public, NOW()
		FROM user_profiles WHERE id = $1
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			company = EXCLUDED.company,
			job_title = EXCLUDED.job_title,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			introduction = EXCLUDED.introduction,
			mbti = EXCLUDED.mbti,
			keywords = EXCLUDED.keywords,
			interests = EXCLUDED.interests,
			hobbies = EXCLUDED.hobbies,
			profile_image_url = EXCLUDED.profile_image_url,
			is_public = EXCLUDED.is_public,
			updated_at = EXCLUDED.updated_at
		RETURNING `+cardColumns, userID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *CardRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.db.GetContext(ctx, &profile, `SELECT `+profileColumns+` FROM user_profiles WHERE id = $1`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CardRepository:GetProfile:Error:", err)
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile writes the profile and its card in one transaction.
// profile_image_url is left untouched on update.
func (r *CardRepository) UpsertProfile(ctx context.Context, profile *entity.Profile) (*entity.BusinessCard, error) {
	var card *entity.BusinessCard
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, profile, `
			INSERT INTO user_profiles (id, full_name, email, phone, company, job_title, introduction,
				mbti, keywords, interests, hobbies, profile_image_url, is_public)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (id) DO UPDATE SET
				full_name = EXCLUDED.full_name,
				email = EXCLUDED.email,
				phone = EXCLUDED.phone,
				company = EXCLUDED.company,
				job_title = EXCLUDED.job_title,
				introduction = EXCLUDED.introduction,
				mbti = EXCLUDED.mbti,
				keywords = EXCLUDED.keywords,
				interests = EXCLUDED.interests,
				hobbies = EXCLUDED.hobbies,
				is_public = EXCLUDED.is_public,
				updated_at = NOW()
			RETURNING `+profileColumns,
			profile.ID, profile.FullName, profile.Email, profile.Phone, profile.Company, profile.JobTitle,
			profile.Introduction, profile.MBTI, profile.Keywords, profile.Interests, profile.Hobbies,
			profile.ProfileImageURL, profile.IsPublic)
		if err != nil {
			return err
		}
		card, err = regenerateCard(ctx, tx, profile.ID)
		return err
	})
	if err != nil {
		logger.Error("CardRepository:UpsertProfile:Error:", err)
		return nil, err
	}
	return card, nil
}

func (r *CardRepository) SetVisibility(ctx context.Context, userID uuid.UUID, public bool) (*entity.BusinessCard, error) {
	return r.updateProfile(ctx, "SetVisibility", userID,
		`UPDATE user_profiles SET is_public = $2, updated_at = NOW() WHERE id = $1`, public)
}

func (r *CardRepository) SetProfileImage(ctx context.Context, userID uuid.UUID, url string) (*entity.BusinessCard, error) {
	return r.updateProfile(ctx, "SetProfileImage", userID,
		`UPDATE user_profiles SET profile_image_url = $2, updated_at = NOW() WHERE id = $1`, url)
}

// updateProfile applies a single column update and regenerates the card.
// It returns ErrProfileNotFound when the user has no profile.
func (r *CardRepository) updateProfile(ctx context.Context, op string, userID uuid.UUID, query string, value any) (*entity.BusinessCard, error) {
	var card *entity.BusinessCard
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query, userID, value)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return ErrProfileNotFound
		}
		card, err = regenerateCard(ctx, tx, userID)
		return err
	})
	if err != nil {
		if !stderrors.Is(err, ErrProfileNotFound) {
			logger.Error("CardRepository:"+op+":Error:", err)
		}
		return nil, err
	}
	return card, nil
}

func (r *CardRepository) GetCard(ctx context.Context, cardID uuid.UUID) (*entity.BusinessCard, error) {
	return r.getCard(ctx, "GetCard", `SELECT `+cardColumns+` FROM business_cards WHERE id = $1`, cardID)
}

func (r *CardRepository) GetCardByUser(ctx context.Context, userID uuid.UUID) (*entity.BusinessCard, error) {
	return r.getCard(ctx, "GetCardByUser", `SELECT `+cardColumns+` FROM business_cards WHERE user_id = $1`, userID)
}

func (r *CardRepository) getCard(ctx context.Context, op, query string, id uuid.UUID) (*entity.BusinessCard, error) {
	var card entity.BusinessCard
	err := r.db.GetContext(ctx, &card, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CardRepository:"+op+":Error:", err)
		return nil, err
	}
	return &card, nil
}

func (r *CardRepository) Collect(ctx context.Context, collected *entity.CollectedCard) error {
	err := r.db.GetContext(ctx, collected, `
		INSERT INTO collected_cards (collector_id, card_id, memo)
		VALUES ($1, $2, $3)
		RETURNING id, collector_id, card_id, memo, collected_at
	`, collected.CollectorID, collected.CardID, collected.Memo)
	if err != nil {
		if !database.IsUniqueViolation(err, CollectedConstraint) {
			logger.Error("CardRepository:Collect:Error:", err)
		}
		return err
	}
	return nil
}

func (r *CardRepository) ListCollected(ctx context.Context, collectorID uuid.UUID, params params.QueryParams) (*entity.PaginatedCollectedCard, error) {
	query := `
		SELECT cc.id, cc.collector_id, cc.card_id, cc.memo, cc.collected_at,
			bc.user_id AS owner_id, bc.full_name, bc.company, bc.job_title, bc.profile_image_url
		FROM collected_cards cc
		JOIN business_cards bc ON bc.id = cc.card_id
		WHERE cc.collector_id = $1
			AND ($2 = '' OR bc.full_name ILIKE '%' || $2 || '%' OR bc.company ILIKE '%' || $2 || '%')
		ORDER BY cc.collected_at DESC
		LIMIT $3 OFFSET $4
	`
	items := []entity.CollectedCardDetail{}
	if err := r.db.SelectContext(ctx, &items, query, collectorID, params.Search, params.PageSize, params.Offset()); err != nil {
		logger.Error("CardRepository:ListCollected:Error:", err)
		return nil, err
	}

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM collected_cards cc
		JOIN business_cards bc ON bc.id = cc.card_id
		WHERE cc.collector_id = $1
			AND ($2 = '' OR bc.full_name ILIKE '%' || $2 || '%' OR bc.company ILIKE '%' || $2 || '%')
	`
	if err := r.db.GetContext(ctx, &total, countQuery, collectorID, params.Search); err != nil {
		logger.Error("CardRepository:ListCollected:Count:Error:", err)
		return nil, err
	}

	return &entity.PaginatedCollectedCard{
		Items:      items,
		TotalItems: total,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *CardRepository) RemoveCollected(ctx context.Context, collectorID, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecResultContext(ctx, `DELETE FROM collected_cards WHERE id = $1 AND collector_id = $2`, id, collectorID)
	if err != nil {
		logger.Error("CardRepository:RemoveCollected:Error:", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
