package validator

import (
	"github.com/neimd2025/web-ndrop-sub000/core/validator"
	"github.com/neimd2025/web-ndrop-sub000/modules/card/dto"
)

func ValidateUpsertProfileRequest(req *dto.UpsertProfileRequest) *validator.Result {
	return validator.Struct(req)
}

func ValidateVisibilityRequest(req *dto.VisibilityRequest) *validator.Result {
	return validator.Struct(req)
}

func ValidateCollectCardRequest(req *dto.CollectCardRequest) *validator.Result {
	return validator.Struct(req)
}
