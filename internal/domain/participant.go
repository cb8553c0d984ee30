package domain

import "context"

// Participant is a user who took part in one or more events. Name and Email may be empty.
// swagger:model Participant
type Participant struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Email                string   `json:"email"`
	ParticipatedEventIDs []string `json:"participatedEventIds"`
}

// ParticipantRepository reads participants.
type ParticipantRepository interface {
	// ListByEventID returns participants whose participated event set contains eventID.
	ListByEventID(ctx context.Context, eventID string) ([]*Participant, error)
}
