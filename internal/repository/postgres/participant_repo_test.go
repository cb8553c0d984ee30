package postgres

import (
	"context"
	"database/sql"
	"testing"

	"participationletters/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestParticipantRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "name", "email", "participated_event_ids"}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    []*domain.Participant
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, email, participated_event_ids\s+FROM users\s+WHERE participated_event_ids @> ARRAY\[\$1\]::text\[\]`).
					WithArgs("e1").
					WillReturnRows(sqlmock.NewRows(cols).
						AddRow("u1", "Ada", "ada@example.com", "{e1,e2}").
						AddRow("u2", nil, nil, "{e1}"))
			},
			want: []*domain.Participant{
				{ID: "u1", Name: "Ada", Email: "ada@example.com", ParticipatedEventIDs: []string{"e1", "e2"}},
				{ID: "u2", ParticipatedEventIDs: []string{"e1"}},
			},
		},
		{
			name: "none",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM users`).
					WithArgs("e1").
					WillReturnRows(sqlmock.NewRows(cols))
			},
			want: []*domain.Participant{},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM users`).
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
			repo := NewParticipantRepository(db)
			got, err := repo.ListByEventID(ctx, "e1")
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
