package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Profile is the canonical record a business card is generated from.
type Profile struct {
	ID              uuid.UUID      `db:"id"`
	FullName        string         `db:"full_name"`
	Email           string         `db:"email"`
	Phone           string         `db:"phone"`
	Company         string         `db:"company"`
	JobTitle        string         `db:"job_title"`
	Introduction    string         `db:"introduction"`
	MBTI            string         `db:"mbti"`
	Keywords        pq.StringArray `db:"keywords"`
	Interests       pq.StringArray `db:"interests"`
	Hobbies         pq.StringArray `db:"hobbies"`
	ProfileImageURL *string        `db:"profile_image_url"`
	IsPublic        bool           `db:"is_public"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// BusinessCard is the read-only projection of a Profile.
type BusinessCard struct {
	ID              uuid.UUID      `db:"id"`
	UserID          uuid.UUID      `db:"user_id"`
	FullName        string         `db:"full_name"`
	Company         string         `db:"company"`
	JobTitle        string         `db:"job_title"`
	Email           string         `db:"email"`
	Phone           string         `db:"phone"`
	Introduction    string         `db:"introduction"`
	MBTI            string         `db:"mbti"`
	Keywords        pq.StringArray `db:"keywords"`
	Interests       pq.StringArray `db:"interests"`
	Hobbies         pq.StringArray `db:"hobbies"`
	ProfileImageURL *string        `db:"profile_image_url"`
	IsPublic        bool           `db:"is_public"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// VisibleTo reports whether viewerID may see the card.
func (c *BusinessCard) VisibleTo(viewerID uuid.UUID) bool {
	return c.IsPublic || c.UserID == viewerID
}

type CollectedCard struct {
	ID          uuid.UUID `db:"id"`
	CollectorID uuid.UUID `db:"collector_id"`
	CardID      uuid.UUID `db:"card_id"`
	Memo        string    `db:"memo"`
	CollectedAt time.Time `db:"collected_at"`
}

// CollectedCardDetail is a collected card joined with the card it points to.
type CollectedCardDetail struct {
	CollectedCard
	OwnerID         uuid.UUID `db:"owner_id"`
	FullName        string    `db:"full_name"`
	Company         string    `db:"company"`
	JobTitle        string    `db:"job_title"`
	ProfileImageURL *string   `db:"profile_image_url"`
}

type PaginatedCollectedCard struct {
	Items      []CollectedCardDetail
	TotalItems int
	PageNumber int
	PageSize   int
}
