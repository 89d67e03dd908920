package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campuscert/internal/domain"
)

// integrityHashLen is the hex length of a 256-bit digest.
const integrityHashLen = 64

type certificateService struct {
	ledger         domain.AttendanceLedger
	certRepo       domain.CertificateRepository
	idGen          domain.IdentifierGenerator
	codec          domain.HashCodec
	storageTimeout time.Duration
}

// NewCertificateService creates a CertificateService orchestrating the
// attendance ledger and the certificate store.
func NewCertificateService(
	ledger domain.AttendanceLedger,
	certRepo domain.CertificateRepository,
	idGen domain.IdentifierGenerator,
	codec domain.HashCodec,
	storageTimeout time.Duration,
) domain.CertificateService {
	return &certificateService{
		ledger:         ledger,
		certRepo:       certRepo,
		idGen:          idGen,
		codec:          codec,
		storageTimeout: storageTimeout,
	}
}

func (s *certificateService) CheckInAndIssue(ctx context.Context, eventID, userID string) (*domain.CheckInResult, error) {
	if eventID == "" || userID == "" {
		return nil, fmt.Errorf("%w: event and user ids are required", domain.ErrInvalidInput)
	}

	// Step 1: record attendance. The created flag does not matter here; a
	// repeat scan still proceeds to the issuance lookup below.
	attendance, _, err := s.ledger.RecordAttendance(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("record attendance: %w", err)
	}

	// Step 2: issue against the unique (event_id, user_id) constraint.
	id, err := s.idGen.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate certificate id: %w", err)
	}
	// Whole-second issue time so the digest input survives the storage
	// round-trip exactly.
	issueDate := time.Now().UTC().Truncate(time.Second)
	hash, err := s.codec.Digest(eventID, userID, id, issueDate)
	if err != nil {
		return nil, fmt.Errorf("compute integrity hash: %w", err)
	}

	cert := domain.NewCertificateRecord(id, eventID, userID, issueDate, hash)
	err = withStorageRetry(ctx, s.storageTimeout, func(ctx context.Context) error {
		return s.certRepo.Create(ctx, cert)
	})
	if err == nil {
		return &domain.CheckInResult{
			Attendance:  attendance,
			Certificate: cert,
		}, nil
	}
	if !errors.Is(err, domain.ErrAlreadyIssued) {
		return nil, fmt.Errorf("create certificate: %w", err)
	}

	// Lost the race (or this is a repeat scan): converge on the stored
	// certificate. Callers see the same {id, hash} on every call.
	var existing *domain.CertificateRecord
	err = withStorageRetry(ctx, s.storageTimeout, func(ctx context.Context) error {
		var getErr error
		existing, getErr = s.certRepo.GetByEventAndUser(ctx, eventID, userID)
		return getErr
	})
	if err != nil {
		return nil, fmt.Errorf("get existing certificate: %w", err)
	}
	return &domain.CheckInResult{
		Attendance:    attendance,
		Certificate:   existing,
		AlreadyIssued: true,
	}, nil
}

func (s *certificateService) VerifyCertificate(ctx context.Context, id string) (*domain.VerificationResult, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: certificate id is required", domain.ErrInvalidInput)
	}

	var rec *domain.CertificateRecord
	err := withStorageRetry(ctx, s.storageTimeout, func(ctx context.Context) error {
		var getErr error
		rec, getErr = s.certRepo.GetByID(ctx, id)
		return getErr
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Absent is a distinct outcome from failed verification.
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get certificate: %w", err)
	}

	if rec.EventID == "" || rec.UserID == "" || len(rec.IntegrityHash) != integrityHashLen {
		return nil, fmt.Errorf("%w: certificate %s has unparsable fields", domain.ErrCorruptRecord, id)
	}

	expected, err := s.codec.Digest(rec.EventID, rec.UserID, rec.ID, rec.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
	}

	// Hashes are opaque case-sensitive lowercase hex; compare exactly.
	return &domain.VerificationResult{
		Valid:  expected == rec.IntegrityHash,
		Record: rec,
	}, nil
}

func (s *certificateService) ListUserCertificates(ctx context.Context, userID string) ([]*domain.CertificateRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	var certs []*domain.CertificateRecord
	err := withStorageRetry(ctx, s.storageTimeout, func(ctx context.Context) error {
		var listErr error
		certs, listErr = s.certRepo.ListByUserID(ctx, userID)
		return listErr
	})
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return certs, nil
}
