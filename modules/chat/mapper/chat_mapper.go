package mapper

import (
	"github.com/neimd2025/web-ndrop-sub000/modules/chat/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/chat/entity"
)

func ToMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:        m.ID,
		MeetingID: m.MeetingID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// ToMessagePage sets the next cursor only when the page came back full.
func ToMessagePage(items []entity.Message, limit int) *dto.MessagePage {
	page := &dto.MessagePage{Items: make([]dto.MessageResponse, len(items))}
	for i := range items {
		page.Items[i] = *ToMessageResponse(&items[i])
	}
	if len(items) > 0 && len(items) == limit {
		last := items[len(items)-1]
		page.NextBefore = &last.CreatedAt
		page.NextBeforeID = &last.ID
	}
	return page
}
