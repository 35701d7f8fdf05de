package model

import (
	"github.com/google/uuid"
)

type Clinic struct {
	Base
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	Name           string    `db:"name" json:"name"`
	Location       string    `db:"location" json:"location"`
	Status         string    `db:"status" json:"status"`
}

// UpdateCalendarRequest carries a clinic's operating-calendar settings
// as submitted over the API, clock times as "HH:MM". The hhmm rule is
// registered in pkg/validator.
type UpdateCalendarRequest struct {
	WorkingDays   []string `json:"working_days" binding:"dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	WorkStart     string   `json:"work_start" binding:"required,hhmm"`
	WorkEnd       string   `json:"work_end" binding:"required,hhmm"`
	HasLunchBreak bool     `json:"has_lunch_break"`
	LunchStart    string   `json:"lunch_start" binding:"omitempty,hhmm"`
	LunchEnd      string   `json:"lunch_end" binding:"omitempty,hhmm"`
}
