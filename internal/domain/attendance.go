package domain

import (
	"context"
	"time"
)

// AttendanceRecord is the append-only fact that a user checked in to an
// event. Natural key is (event_id, user_id); at most one record ever exists
// per pair. Never mutated, never deleted.
// swagger:model AttendanceRecord
type AttendanceRecord struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	Present    bool      `json:"present"`
	RecordedAt time.Time `json:"recorded_at"`
}

// NewAttendanceRecord creates a new AttendanceRecord. ID is set by the repository on create.
func NewAttendanceRecord(eventID, userID string, recordedAt time.Time) *AttendanceRecord {
	return &AttendanceRecord{
		EventID:    eventID,
		UserID:     userID,
		Present:    true,
		RecordedAt: recordedAt,
	}
}

// AttendanceRepository defines storage operations for attendance records.
// Create must be backed by a unique constraint on (event_id, user_id) and
// return ErrAlreadyRecorded on the duplicate write; that constraint is the
// enforcement point for one-attendance-per-user-per-event.
type AttendanceRepository interface {
	Create(ctx context.Context, rec *AttendanceRecord) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*AttendanceRecord, error)
	ListByEventID(ctx context.Context, eventID string, params PaginationParams) ([]*AttendanceRecord, int, error)
	ListByUserID(ctx context.Context, userID string) ([]*AttendanceRecord, error)
}

// AttendanceLedger defines the check-in business operations.
type AttendanceLedger interface {
	// RecordAttendance records the user's check-in for the event. Returns
	// (rec, created, err): created is false when the pair was already
	// recorded, in which case the existing record is returned. Idempotent;
	// a duplicate scan never creates a second record.
	RecordAttendance(ctx context.Context, eventID, userID string) (*AttendanceRecord, bool, error)
	ListEventAttendance(ctx context.Context, eventID string, params PaginationParams) ([]*AttendanceRecord, int, error)
	ListUserAttendance(ctx context.Context, userID string) ([]*AttendanceRecord, error)
}
