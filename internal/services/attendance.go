package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campuscert/internal/domain"
)

type attendanceLedger struct {
	repo           domain.AttendanceRepository
	storageTimeout time.Duration
}

// NewAttendanceLedger creates an AttendanceLedger with the given repository.
// storageTimeout bounds each storage call; zero disables the bound.
func NewAttendanceLedger(repo domain.AttendanceRepository, storageTimeout time.Duration) domain.AttendanceLedger {
	return &attendanceLedger{
		repo:           repo,
		storageTimeout: storageTimeout,
	}
}

// RecordAttendance is insert-first: it writes against the unique
// (event_id, user_id) constraint and treats the duplicate-key rejection as
// the signal that the pair was already checked in. A read-then-write check
// would race; the constraint cannot.
func (s *attendanceLedger) RecordAttendance(ctx context.Context, eventID, userID string) (*domain.AttendanceRecord, bool, error) {
	if eventID == "" || userID == "" {
		return nil, false, fmt.Errorf("%w: event and user ids are required", domain.ErrInvalidInput)
	}

	rec := domain.NewAttendanceRecord(eventID, userID, time.Now().UTC().Truncate(time.Second))
	err := withStorageRetry(ctx, s.storageTimeout, func(ctx context.Context) error {
		return s.repo.Create(ctx, rec)
	})
	if err == nil {
		return rec, true, nil
	}
	if !errors.Is(err, domain.ErrAlreadyRecorded) {
		return nil, false, fmt.Errorf("create attendance record: %w", err)
	}

	var existing *domain.AttendanceRecord
	err = withStorageRetry(ctx, s.storageTimeout, func(ctx context.Context) error {
		var getErr error
		existing, getErr = s.repo.GetByEventAndUser(ctx, eventID, userID)
		return getErr
	})
	if err != nil {
		return nil, false, fmt.Errorf("get attendance record: %w", err)
	}
	return existing, false, nil
}

func (s *attendanceLedger) ListEventAttendance(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.AttendanceRecord, int, error) {
	if eventID == "" {
		return nil, 0, fmt.Errorf("%w: event id is required", domain.ErrInvalidInput)
	}
	var (
		recs  []*domain.AttendanceRecord
		total int
	)
	err := withStorageRetry(ctx, s.storageTimeout, func(ctx context.Context) error {
		var listErr error
		recs, total, listErr = s.repo.ListByEventID(ctx, eventID, params)
		return listErr
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list event attendance: %w", err)
	}
	return recs, total, nil
}

func (s *attendanceLedger) ListUserAttendance(ctx context.Context, userID string) ([]*domain.AttendanceRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	var recs []*domain.AttendanceRecord
	err := withStorageRetry(ctx, s.storageTimeout, func(ctx context.Context) error {
		var listErr error
		recs, listErr = s.repo.ListByUserID(ctx, userID)
		return listErr
	})
	if err != nil {
		return nil, fmt.Errorf("list user attendance: %w", err)
	}
	return recs, nil
}
