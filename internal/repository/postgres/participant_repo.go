package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"participationletters/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{
		DB: db,
	}
}

func (r *participantRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	query := `
		SELECT id, name, email, participated_event_ids
		FROM users
		WHERE participated_event_ids @> ARRAY[$1]::text[]
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*domain.Participant, 0)
	for rows.Next() {
		p := &domain.Participant{}
		var name, email sql.NullString
		var eventIDs pq.StringArray
		if err := rows.Scan(&p.ID, &name, &email, &eventIDs); err != nil {
			return nil, err
		}
		p.Name = name.String
		p.Email = email.String
		p.ParticipatedEventIDs = []string(eventIDs)
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return participants, nil
}
