package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"participationletters/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_ListRegistrationEnded(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ended := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
	starts := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	cols := []string{"id", "title", "status", "registration_end_date", "event_date_time"}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    []*domain.Event
		wantErr bool
	}{
		{
			name: "success with null title",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, status, registration_end_date, event_date_time\s+FROM events\s+WHERE status = \$1 AND registration_end_date <= \$2`).
					WithArgs("active", now).
					WillReturnRows(sqlmock.NewRows(cols).
						AddRow("e1", "Spring Meetup", "active", ended, starts).
						AddRow("e2", nil, "active", ended, starts))
			},
			want: []*domain.Event{
				{ID: "e1", Title: "Spring Meetup", Status: "active", RegistrationEndDate: ended, EventDateTime: starts},
				{ID: "e2", Title: "", Status: "active", RegistrationEndDate: ended, EventDateTime: starts},
			},
		},
		{
			name: "empty",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events`).
					WithArgs("active", now).
					WillReturnRows(sqlmock.NewRows(cols))
			},
			want: []*domain.Event{},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.ListRegistrationEnded(ctx, domain.EventStatusActive, now)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
