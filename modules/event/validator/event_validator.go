package validator

import (
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/validator"
	"github.com/neimd2025/web-ndrop-sub000/modules/event/dto"
)

func ValidateCreateEventRequest(req *dto.CreateEventRequest) *validator.Result {
	result := validator.Struct(req)
	checkDates(result, req.StartDate, req.EndDate)
	return result
}

func ValidateUpdateEventRequest(req *dto.UpdateEventRequest) *validator.Result {
	return validator.Struct(req)
}

// ValidateDates is run on the merged event after a partial update.
func ValidateDates(start, end time.Time) *validator.Result {
	result := &validator.Result{}
	checkDates(result, start, end)
	return result
}

func checkDates(result *validator.Result, start, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if !end.After(start) {
		result.Add("end_date", "must be after start_date")
	}
}
