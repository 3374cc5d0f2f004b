package mapper

import (
	"time"

	coreDto "github.com/neimd2025/web-ndrop-sub000/core/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/event/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/event/entity"
)

func ToEventEntity(req *dto.CreateEventRequest) *entity.Event {
	return &entity.Event{
		Title:           req.Title,
		Description:     req.Description,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
		ImageURL:        req.ImageURL,
		OrganizerName:   req.OrganizerName,
		OrganizerEmail:  req.OrganizerEmail,
		OrganizerPhone:  req.OrganizerPhone,
		CreatedBy:       req.CreatedBy,
	}
}

// ApplyUpdate copies the non-nil fields of req onto e.
func ApplyUpdate(e *entity.Event, req *dto.UpdateEventRequest) {
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.StartDate != nil {
		e.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		e.EndDate = *req.EndDate
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.MaxParticipants != nil {
		e.MaxParticipants = *req.MaxParticipants
	}
	if req.ImageURL != nil {
		e.ImageURL = req.ImageURL
	}
	if req.OrganizerName != nil {
		e.OrganizerName = *req.OrganizerName
	}
	if req.OrganizerEmail != nil {
		e.OrganizerEmail = *req.OrganizerEmail
	}
	if req.OrganizerPhone != nil {
		e.OrganizerPhone = *req.OrganizerPhone
	}
}

// ToEventResponse computes the status against now.
func ToEventResponse(e *entity.Event, now time.Time) *dto.EventResponse {
	return &dto.EventResponse{
		ID:                  e.ID,
		Title:               e.Title,
		Description:         e.Description,
		StartDate:           e.StartDate,
		EndDate:             e.EndDate,
		Location:            e.Location,
		MaxParticipants:     e.MaxParticipants,
		CurrentParticipants: e.CurrentParticipants,
		EventCode:           e.EventCode,
		Status:              string(entity.CalculateStatus(now, e.StartDate, e.EndDate)),
		ImageURL:            e.ImageURL,
		OrganizerName:       e.OrganizerName,
		OrganizerEmail:      e.OrganizerEmail,
		OrganizerPhone:      e.OrganizerPhone,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func ToEventPaginationResponse(page *entity.PaginatedEvent, now time.Time) *dto.PaginatedEventResponse {
	if page == nil {
		return &dto.PaginatedEventResponse{Items: []dto.EventResponse{}}
	}
	items := make([]dto.EventResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToEventResponse(&page.Items[i], now)
	}
	return &dto.PaginatedEventResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: coreDto.TotalPages(page.TotalItems, page.PageSize),
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
