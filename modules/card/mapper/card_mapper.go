package mapper

import (
	"strings"

	coreDto "github.com/neimd2025/web-ndrop-sub000/core/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/card/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/card/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ToProfileEntity builds the profile row; a nil IsPublic defaults to public.
func ToProfileEntity(userID uuid.UUID, req *dto.UpsertProfileRequest) *entity.Profile {
	public := true
	if req.IsPublic != nil {
		public = *req.IsPublic
	}
	return &entity.Profile{
		ID:           userID,
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Company:      strings.TrimSpace(req.Company),
		JobTitle:     strings.TrimSpace(req.JobTitle),
		Introduction: req.Introduction,
		MBTI:         strings.ToUpper(req.MBTI),
		Keywords:     tags(req.Keywords),
		Interests:    tags(req.Interests),
		Hobbies:      tags(req.Hobbies),
		IsPublic:     public,
	}
}

// tags trims entries and drops blanks and case-insensitive duplicates.
func tags(in []string) pq.StringArray {
	out := pq.StringArray{}
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

func ToCardResponse(c *entity.BusinessCard) *dto.CardResponse {
	if c == nil {
		return nil
	}
	return &dto.CardResponse{
		ID:              c.ID,
		UserID:          c.UserID,
		FullName:        c.FullName,
		Company:         c.Company,
		JobTitle:        c.JobTitle,
		Email:           c.Email,
		Phone:           c.Phone,
		Introduction:    c.Introduction,
		MBTI:            c.MBTI,
		Keywords:        nonNil(c.Keywords),
		Interests:       nonNil(c.Interests),
		Hobbies:         nonNil(c.Hobbies),
		ProfileImageURL: c.ProfileImageURL,
		IsPublic:        c.IsPublic,
		UpdatedAt:       c.UpdatedAt,
	}
}

func ToProfileResponse(p *entity.Profile, card *entity.BusinessCard) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:              p.ID,
		FullName:        p.FullName,
		Email:           p.Email,
		Phone:           p.Phone,
		Company:         p.Company,
		JobTitle:        p.JobTitle,
		Introduction:    p.Introduction,
		MBTI:            p.MBTI,
		Keywords:        nonNil(p.Keywords),
		Interests:       nonNil(p.Interests),
		Hobbies:         nonNil(p.Hobbies),
		ProfileImageURL: p.ProfileImageURL,
		IsPublic:        p.IsPublic,
		Card:            ToCardResponse(card),
		UpdatedAt:       p.UpdatedAt,
	}
}

func ToCollectedCardResponse(c *entity.CollectedCardDetail) *dto.CollectedCardResponse {
	return &dto.CollectedCardResponse{
		ID:              c.ID,
		CardID:          c.CardID,
		OwnerID:         c.OwnerID,
		FullName:        c.FullName,
		Company:         c.Company,
		JobTitle:        c.JobTitle,
		ProfileImageURL: c.ProfileImageURL,
		Memo:            c.Memo,
		CollectedAt:     c.CollectedAt,
	}
}

func ToCollectedCardPaginationResponse(page *entity.PaginatedCollectedCard) *dto.PaginatedCollectedCardResponse {
	if page == nil {
		return &dto.PaginatedCollectedCardResponse{Items: []dto.CollectedCardResponse{}}
	}
	items := make([]dto.CollectedCardResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToCollectedCardResponse(&page.Items[i])
	}
	return &dto.PaginatedCollectedCardResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: coreDto.TotalPages(page.TotalItems, page.PageSize),
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}

func nonNil(a pq.StringArray) []string {
	if a == nil {
		return []string{}
	}
	return a
}
