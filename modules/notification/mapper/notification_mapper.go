package mapper

import (
	"time"

	coreDto "github.com/neimd2025/web-ndrop-sub000/core/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification/entity"
)

func ToNotificationEntity(req *dto.CreateNotificationRequest) *entity.Notification {
	n := &entity.Notification{
		Title:            req.Title,
		Message:          req.Message,
		NotificationType: req.Type,
		TargetType:       entity.TargetType(req.TargetType),
		Metadata:         entity.JSONB(req.Metadata),
		CreatedBy:        req.CreatedBy,
	}
	if n.NotificationType == "" {
		n.NotificationType = entity.TypeNotice
	}
	// Only the field matching the target is kept.
	switch n.TargetType {
	case entity.TargetSpecific:
		n.UserID = req.UserID
	case entity.TargetEventParticipants:
		n.TargetEventID = req.TargetEventID
	}
	return n
}

func ToNotificationResponse(n *entity.Notification, readAt *time.Time) *dto.NotificationResponse {
	metadata := map[string]any(n.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &dto.NotificationResponse{
		ID:            n.ID,
		Title:         n.Title,
		Message:       n.Message,
		Type:          n.NotificationType,
		TargetType:    string(n.TargetType),
		UserID:        n.UserID,
		TargetEventID: n.TargetEventID,
		Metadata:      metadata,
		IsRead:        readAt != nil,
		ReadAt:        readAt,
		CreatedAt:     n.CreatedAt,
	}
}

func ToNotificationPaginationResponse(page *entity.PaginatedUserNotification) *dto.PaginatedNotificationResponse {
	if page == nil {
		return &dto.PaginatedNotificationResponse{Items: []dto.NotificationResponse{}}
	}
	items := make([]dto.NotificationResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToNotificationResponse(&page.Items[i].Notification, page.Items[i].ReadAt)
	}
	return &dto.PaginatedNotificationResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: coreDto.TotalPages(page.TotalItems, page.PageSize),
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}

func ToRealtimeNotification(n *entity.Notification) *dto.RealtimeNotification {
	return &dto.RealtimeNotification{
		ID:         n.ID,
		Title:      n.Title,
		Message:    n.Message,
		Type:       n.NotificationType,
		TargetType: string(n.TargetType),
		CreatedAt:  n.CreatedAt,
	}
}
