package entity

import "time"

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

// CalculateStatus derives the status of an event spanning [start, end) at now.
func CalculateStatus(now, start, end time.Time) Status {
	if now.Before(start) {
		return StatusUpcoming
	}
	if now.Before(end) {
		return StatusOngoing
	}
	return StatusCompleted
}
