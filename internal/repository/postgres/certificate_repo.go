package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campuscert/internal/domain"
)

type certificateRepository struct {
	DB *sql.DB
}

func NewCertificateRepository(db *sql.DB) domain.CertificateRepository {
	return &certificateRepository{
		DB: db,
	}
}

// Create persists the certificate. The unique constraint on
// (event_id, user_id) makes the first write win; concurrent duplicates get
// ErrAlreadyIssued and converge on the stored record. A primary-key clash on
// id is not translated: a generator collision is not an expected outcome.
func (r *certificateRepository) Create(ctx context.Context, cert *domain.CertificateRecord) error {
	query := `
		INSERT INTO certificates (id, event_id, user_id, issue_date, integrity_hash)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query, cert.ID, cert.EventID, cert.UserID, cert.IssueDate, cert.IntegrityHash)
	if err != nil {
		if isUniqueViolation(err, "certificates_event_id_user_id_key") {
			return domain.ErrAlreadyIssued
		}
		return mapStorageErr(err)
	}
	return nil
}

func (r *certificateRepository) GetByID(ctx context.Context, id string) (*domain.CertificateRecord, error) {
	query := `
		SELECT id, event_id, user_id, issue_date, integrity_hash
		FROM certificates
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *certificateRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.CertificateRecord, error) {
	query := `
		SELECT id, event_id, user_id, issue_date, integrity_hash
		FROM certificates
		WHERE event_id = $1 AND user_id = $2
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, eventID, userID))
}

func (r *certificateRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.CertificateRecord, error) {
	query := `
		SELECT id, event_id, user_id, issue_date, integrity_hash
		FROM certificates
		WHERE user_id = $1
		ORDER BY issue_date DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	defer rows.Close()

	var certs []*domain.CertificateRecord
	for rows.Next() {
		cert := &domain.CertificateRecord{}
		if err := rows.Scan(&cert.ID, &cert.EventID, &cert.UserID, &cert.IssueDate, &cert.IntegrityHash); err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStorageErr(err)
	}
	if certs == nil {
		certs = []*domain.CertificateRecord{}
	}
	return certs, nil
}

func (r *certificateRepository) scanOne(row *sql.Row) (*domain.CertificateRecord, error) {
	cert := &domain.CertificateRecord{}
	err := row.Scan(&cert.ID, &cert.EventID, &cert.UserID, &cert.IssueDate, &cert.IntegrityHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapStorageErr(err)
	}
	return cert, nil
}
