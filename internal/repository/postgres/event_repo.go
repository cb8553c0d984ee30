package postgres

import (
	"context"
	"database/sql"
	"time"

	"participationletters/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) ListRegistrationEnded(ctx context.Context, status string, now time.Time) ([]*domain.Event, error) {
	query := `
		SELECT id, title, status, registration_end_date, event_date_time
		FROM events
		WHERE status = $1 AND registration_end_date <= $2
		ORDER BY registration_end_date, id
	`
	rows, err := r.DB.QueryContext(ctx, query, status, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var title sql.NullString
		if err := rows.Scan(&e.ID, &title, &e.Status, &e.RegistrationEndDate, &e.EventDateTime); err != nil {
			return nil, err
		}
		e.Title = title.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
