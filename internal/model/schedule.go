package model

import (
	"github.com/google/uuid"
)

// DayOfWeek as stored on availability schedules.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

func (d DayOfWeek) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// AvailabilitySchedule is a weekly recurring availability window for one
// nurse. At most one active schedule may exist per (nurse, day).
type AvailabilitySchedule struct {
	Base
	NurseID   uuid.UUID `json:"nurse_id" db:"nurse_id"`
	DayOfWeek DayOfWeek `json:"day_of_week" db:"day_of_week"`
	StartTime string    `json:"start_time" db:"start_time"`
	EndTime   string    `json:"end_time" db:"end_time"`
	IsActive  bool      `json:"is_active" db:"is_active"`
}

type CreateScheduleRequest struct {
	DayOfWeek DayOfWeek `json:"day_of_week" binding:"required,dayofweek"`
	StartTime string    `json:"start_time" binding:"required"`
	EndTime   string    `json:"end_time" binding:"required"`
}
