package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campuscert/internal/domain"
)

type attendanceRepository struct {
	DB *sql.DB
}

func NewAttendanceRepository(db *sql.DB) domain.AttendanceRepository {
	return &attendanceRepository{
		DB: db,
	}
}

// Create inserts the attendance row. The unique constraint on
// (event_id, user_id) is the enforcement point for one-attendance-per-user-
// per-event: the second concurrent insert fails with ErrAlreadyRecorded
// instead of creating a duplicate.
func (r *attendanceRepository) Create(ctx context.Context, rec *domain.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (event_id, user_id, present, recorded_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, rec.EventID, rec.UserID, rec.Present, rec.RecordedAt).
		Scan(&rec.ID)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.ErrAlreadyRecorded
		}
		return mapStorageErr(err)
	}
	return nil
}

func (r *attendanceRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.AttendanceRecord, error) {
	query := `
		SELECT id, event_id, user_id, present, recorded_at
		FROM attendance_records
		WHERE event_id = $1 AND user_id = $2
	`
	rec := &domain.AttendanceRecord{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).
		Scan(&rec.ID, &rec.EventID, &rec.UserID, &rec.Present, &rec.RecordedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapStorageErr(err)
	}
	return rec, nil
}

func (r *attendanceRepository) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.AttendanceRecord, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM attendance_records WHERE event_id = $1`
	if err := r.DB.QueryRowContext(ctx, countQuery, eventID).Scan(&total); err != nil {
		return nil, 0, mapStorageErr(err)
	}

	query := `
		SELECT id, event_id, user_id, present, recorded_at
		FROM attendance_records
		WHERE event_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, mapStorageErr(err)
	}
	defer rows.Close()

	recs, err := scanAttendanceRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

func (r *attendanceRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.AttendanceRecord, error) {
	query := `
		SELECT id, event_id, user_id, present, recorded_at
		FROM attendance_records
		WHERE user_id = $1
		ORDER BY recorded_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows)
}

func scanAttendanceRows(rows *sql.Rows) ([]*domain.AttendanceRecord, error) {
	var recs []*domain.AttendanceRecord
	for rows.Next() {
		rec := &domain.AttendanceRecord{}
		if err := rows.Scan(&rec.ID, &rec.EventID, &rec.UserID, &rec.Present, &rec.RecordedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStorageErr(err)
	}
	if recs == nil {
		recs = []*domain.AttendanceRecord{}
	}
	return recs, nil
}
