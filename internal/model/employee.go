package model

import "time"

// Employee is a registered employee. Archived employees are kept for
// historical counting but excluded from "active" tallies.
type Employee struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	RegistrationDate time.Time `json:"registration_date"`
	IsArchived       bool      `json:"is_archived"`
}
