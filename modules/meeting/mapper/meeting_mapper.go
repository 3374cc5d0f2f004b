package mapper

import (
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/entity"
)

func ToMeetingResponse(m *entity.Meeting) *dto.MeetingResponse {
	return &dto.MeetingResponse{
		ID:          m.ID,
		EventID:     m.EventID,
		RequesterID: m.RequesterID,
		ReceiverID:  m.ReceiverID,
		Status:      string(m.Status),
		Message:     m.Message,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		RespondedAt: m.RespondedAt,
	}
}

func ToMeetingResponses(items []entity.Meeting) []dto.MeetingResponse {
	out := make([]dto.MeetingResponse, len(items))
	for i := range items {
		out[i] = *ToMeetingResponse(&items[i])
	}
	return out
}
