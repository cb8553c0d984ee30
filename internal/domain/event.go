package domain

import (
	"context"
	"time"
)

// EventStatusActive is the status of events that are open and eligible for scanning.
const EventStatusActive = "active"

// Event is an event managed outside this service. It is read-only here.
// swagger:model Event
type Event struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Status              string    `json:"status"`
	RegistrationEndDate time.Time `json:"registrationEndDate"`
	EventDateTime       time.Time `json:"eventDateTime"`
}

// EventRepository reads events.
type EventRepository interface {
	// ListRegistrationEnded returns events with the given status whose registration ended at or before now.
	ListRegistrationEnded(ctx context.Context, status string, now time.Time) ([]*Event, error)
}
