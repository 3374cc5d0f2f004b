package dto

import (
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/dto"

	"github.com/google/uuid"
)

type UpsertProfileRequest struct {
	FullName     string   `json:"full_name" validate:"required,max=100"`
	Email        string   `json:"email" validate:"omitempty,email,max=200"`
	Phone        string   `json:"phone" validate:"max=50"`
	Company      string   `json:"company" validate:"max=200"`
	JobTitle     string   `json:"job_title" validate:"max=200"`
	Introduction string   `json:"introduction" validate:"max=2000"`
	MBTI         string   `json:"mbti" validate:"omitempty,len=4,alpha"`
	Keywords     []string `json:"keywords" validate:"max=20,dive,max=50"`
	Interests    []string `json:"interests" validate:"max=20,dive,max=50"`
	Hobbies      []string `json:"hobbies" validate:"max=20,dive,max=50"`
	IsPublic     *bool    `json:"is_public"`
}

type VisibilityRequest struct {
	IsPublic *bool `json:"is_public" validate:"required"`
}

type CollectCardRequest struct {
	CardID uuid.UUID `json:"card_id" validate:"required"`
	Memo   string    `json:"memo" validate:"max=500"`
}

// ImageFile is an uploaded profile image.
type ImageFile struct {
	Filename string
	Data     []byte
}

type CardResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	FullName        string    `json:"full_name"`
	Company         string    `json:"company"`
	JobTitle        string    `json:"job_title"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Introduction    string    `json:"introduction"`
	MBTI            string    `json:"mbti"`
	Keywords        []string  `json:"keywords"`
	Interests       []string  `json:"interests"`
	Hobbies         []string  `json:"hobbies"`
	ProfileImageURL *string   `json:"profile_image_url"`
	IsPublic        bool      `json:"is_public"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ProfileResponse struct {
	ID              uuid.UUID     `json:"id"`
	FullName        string        `json:"full_name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	Company         string        `json:"company"`
	JobTitle        string        `json:"job_title"`
	Introduction    string        `json:"introduction"`
	MBTI            string        `json:"mbti"`
	Keywords        []string      `json:"keywords"`
	Interests       []string      `json:"interests"`
	Hobbies         []string      `json:"hobbies"`
	ProfileImageURL *string       `json:"profile_image_url"`
	IsPublic        bool          `json:"is_public"`
	Card            *CardResponse `json:"card,omitempty"`
	Warning         string        `json:"warning,omitempty"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type CollectedCardResponse struct {
	ID              uuid.UUID `json:"id"`
	CardID          uuid.UUID `json:"card_id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	FullName        string    `json:"full_name"`
	Company         string    `json:"company"`
	JobTitle        string    `json:"job_title"`
	ProfileImageURL *string   `json:"profile_image_url"`
	Memo            string    `json:"memo"`
	CollectedAt     time.Time `json:"collected_at"`
}

type PaginatedCollectedCardResponse = dto.Pagination[CollectedCardResponse]
