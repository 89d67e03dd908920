package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"campuscert/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

const testHash = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"

func TestCertificateRepository_Create(t *testing.T) {
	ctx := context.Background()
	issueDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cert := domain.NewCertificateRecord("cert-1", "evt-42", "user-7", issueDate, testHash)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		errIs   error
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO certificates`).
					WithArgs("cert-1", "evt-42", "user-7", issueDate, testHash).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "natural key violation returns ErrAlreadyIssued",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO certificates`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "certificates_event_id_user_id_key"})
			},
			errIs:   domain.ErrAlreadyIssued,
			wantErr: true,
		},
		{
			name: "primary key violation is not AlreadyIssued",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO certificates`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "certificates_pkey"})
			},
			wantErr: true,
		},
		{
			name: "connection failure maps to ErrStorageUnavailable",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO certificates`).
					WillReturnError(sql.ErrConnDone)
			},
			errIs:   domain.ErrStorageUnavailable,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewCertificateRepository(db)
			err = repo.Create(ctx, cert)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				} else {
					require.NotErrorIs(t, err, domain.ErrAlreadyIssued)
				}
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCertificateRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	issueDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, user_id, issue_date, integrity_hash`).
			WithArgs("cert-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "issue_date", "integrity_hash"}).
				AddRow("cert-1", "evt-42", "user-7", issueDate, testHash))

		repo := NewCertificateRepository(db)
		cert, err := repo.GetByID(ctx, "cert-1")
		require.NoError(t, err)
		require.Equal(t, "evt-42", cert.EventID)
		require.Equal(t, testHash, cert.IntegrityHash)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing returns ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, user_id, issue_date, integrity_hash`).
			WithArgs("not-a-real-id").
			WillReturnError(sql.ErrNoRows)

		repo := NewCertificateRepository(db)
		_, err = repo.GetByID(ctx, "not-a-real-id")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCertificateRepository_GetByEventAndUser(t *testing.T) {
	ctx := context.Background()
	issueDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, event_id, user_id, issue_date, integrity_hash`).
		WithArgs("evt-42", "user-7").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "issue_date", "integrity_hash"}).
			AddRow("cert-1", "evt-42", "user-7", issueDate, testHash))

	repo := NewCertificateRepository(db)
	cert, err := repo.GetByEventAndUser(ctx, "evt-42", "user-7")
	require.NoError(t, err)
	require.Equal(t, "cert-1", cert.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificateRepository_ListByUserID(t *testing.T) {
	ctx := context.Background()
	issueDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, event_id, user_id, issue_date, integrity_hash`).
		WithArgs("user-7").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "issue_date", "integrity_hash"}).
			AddRow("cert-2", "evt-43", "user-7", issueDate, testHash).
			AddRow("cert-1", "evt-42", "user-7", issueDate.Add(-time.Hour), testHash))

	repo := NewCertificateRepository(db)
	certs, err := repo.ListByUserID(ctx, "user-7")
	require.NoError(t, err)
	require.Len(t, certs, 2)
	require.Equal(t, "cert-2", certs[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
