package postgres

import (
	"context"
	"database/sql"
	"errors"

	"participationletters/internal/domain"
)

type letterRepository struct {
	DB *sql.DB
}

func NewLetterRepository(db *sql.DB) domain.LetterRepository {
	return &letterRepository{
		DB: db,
	}
}

// Upsert replaces any existing record for (user_id, event_id). Both dates come from the database clock.
func (r *letterRepository) Upsert(ctx context.Context, l *domain.GeneratedLetter) error {
	query := `
		INSERT INTO event_letters (user_id, event_id, event_name, event_date, generated_date, letter_url)
		VALUES ($1, $2, $3, now(), now(), $4)
		ON CONFLICT (user_id, event_id) DO UPDATE
		SET event_name = EXCLUDED.event_name,
			event_date = EXCLUDED.event_date,
			generated_date = EXCLUDED.generated_date,
			letter_url = EXCLUDED.letter_url
		RETURNING event_date, generated_date
	`
	return r.DB.QueryRowContext(ctx, query, l.UserID, l.EventID, l.EventName, l.LetterURL).
		Scan(&l.EventDate, &l.GeneratedDate)
}

func (r *letterRepository) GetByUserAndEvent(ctx context.Context, userID, eventID string) (*domain.GeneratedLetter, error) {
	query := `
		SELECT user_id, event_id, event_name, event_date, generated_date, letter_url
		FROM event_letters
		WHERE user_id = $1 AND event_id = $2
	`
	l := &domain.GeneratedLetter{}
	err := r.DB.QueryRowContext(ctx, query, userID, eventID).
		Scan(&l.UserID, &l.EventID, &l.EventName, &l.EventDate, &l.GeneratedDate, &l.LetterURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}
