package validator

import (
	"github.com/neimd2025/web-ndrop-sub000/core/validator"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification/entity"
)

func ValidateCreateNotificationRequest(req *dto.CreateNotificationRequest) *validator.Result {
	result := validator.Struct(req)
	switch entity.TargetType(req.TargetType) {
	case entity.TargetSpecific:
		if req.UserID == nil {
			result.Add("user_id", "is required when target_type is specific")
		}
	case entity.TargetEventParticipants:
		if req.TargetEventID == nil {
			result.Add("target_event_id", "is required when target_type is event_participants")
		}
	}
	return result
}
