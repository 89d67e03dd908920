package domain

import (
	"context"
	"time"
)

// CertificateRecord attests that a user attended an event. The id is the
// public handle (shareable without revealing the (event, user) key pair);
// the integrity hash is a digest over the defining fields so any party can
// re-derive and check it without trusting storage. Immutable after issuance.
// swagger:model CertificateRecord
type CertificateRecord struct {
	ID            string    `json:"id"`
	EventID       string    `json:"event_id"`
	UserID        string    `json:"user_id"`
	IssueDate     time.Time `json:"issue_date"`
	IntegrityHash string    `json:"integrity_hash"`
}

// NewCertificateRecord returns a new CertificateRecord with the given fields.
func NewCertificateRecord(id, eventID, userID string, issueDate time.Time, integrityHash string) *CertificateRecord {
	return &CertificateRecord{
		ID:            id,
		EventID:       eventID,
		UserID:        userID,
		IssueDate:     issueDate,
		IntegrityHash: integrityHash,
	}
}

// CertificateRepository defines storage operations for certificates.
// Create must be backed by a unique constraint on (event_id, user_id) and
// return ErrAlreadyIssued on the duplicate write; the first successful write
// wins and all concurrent attempts for the key must observe the rejection.
type CertificateRepository interface {
	Create(ctx context.Context, cert *CertificateRecord) error
	GetByID(ctx context.Context, id string) (*CertificateRecord, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*CertificateRecord, error)
	ListByUserID(ctx context.Context, userID string) ([]*CertificateRecord, error)
}

// HashCodec computes the integrity digest over a certificate's defining
// fields. Pure and deterministic: identical inputs always produce identical
// output, which is what makes later re-verification possible. The encoding
// of the inputs must be injective so distinct field tuples can never digest
// to the same value.
type HashCodec interface {
	Digest(eventID, userID, certID string, issueDate time.Time) (string, error)
}

// IdentifierGenerator produces unique certificate identifiers from a
// cryptographically secure random source. Collision probability must be
// negligible across the system lifetime; implementations must fail with
// ErrEntropyUnavailable rather than fall back to weaker randomness.
type IdentifierGenerator interface {
	NewID() (string, error)
}

// CheckInResult is the outcome of a check-in-and-issue operation.
// swagger:model CheckInResult
type CheckInResult struct {
	Attendance    *AttendanceRecord  `json:"attendance"`
	Certificate   *CertificateRecord `json:"certificate"`
	AlreadyIssued bool               `json:"already_issued"`
}

// VerificationResult is the outcome of verifying a certificate by id.
// Valid is false when the recomputed digest does not match the stored one;
// the record is included either way so callers can flag tampering.
// swagger:model VerificationResult
type VerificationResult struct {
	Valid  bool               `json:"valid"`
	Record *CertificateRecord `json:"record,omitempty"`
}

// CertificateService defines the public issuance and verification operations.
type CertificateService interface {
	// CheckInAndIssue records attendance and issues the certificate for
	// (eventID, userID) as one logical operation. Idempotent end-to-end:
	// repeat calls return the same certificate with AlreadyIssued=true.
	CheckInAndIssue(ctx context.Context, eventID, userID string) (*CheckInResult, error)
	// VerifyCertificate looks up the certificate by id, recomputes its
	// integrity hash from the stored fields, and compares. Returns
	// ErrNotFound when no such id exists.
	VerifyCertificate(ctx context.Context, id string) (*VerificationResult, error)
	ListUserCertificates(ctx context.Context, userID string) ([]*CertificateRecord, error)
}
