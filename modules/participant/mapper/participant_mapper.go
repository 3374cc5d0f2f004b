package mapper

import (
	"github.com/neimd2025/web-ndrop-sub000/modules/participant/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/participant/entity"
)

func ToParticipantResponse(p *entity.Participant) *dto.ParticipantResponse {
	return &dto.ParticipantResponse{
		ID:       p.ID,
		EventID:  p.EventID,
		UserID:   p.UserID,
		Status:   string(p.Status),
		JoinedAt: p.JoinedAt,
	}
}

func ToParticipantDetailResponses(rows []entity.ParticipantDetail) []dto.ParticipantResponse {
	out := make([]dto.ParticipantResponse, len(rows))
	for i := range rows {
		res := ToParticipantResponse(&rows[i].Participant)
		res.CardID = rows[i].CardID
		res.FullName = deref(rows[i].FullName)
		res.Company = deref(rows[i].Company)
		res.JobTitle = deref(rows[i].JobTitle)
		res.ProfileImageURL = rows[i].ProfileImageURL
		out[i] = *res
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
