package domain

import "errors"

// Sentinel errors shared across services and repositories. Repositories
// translate driver-level failures into these; services wrap them with
// context and nothing above the delivery layer inspects anything else.
var (
	// ErrInvalidInput marks malformed key material (empty event/user/
	// certificate id). Not retryable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a missing record. For certificate verification it
	// is a valid negative outcome, distinct from a failed hash check.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyRecorded is returned by the attendance repository when the
	// (event, user) pair already has a row. The ledger resolves it into an
	// idempotent success.
	ErrAlreadyRecorded = errors.New("attendance already recorded")

	// ErrAlreadyIssued is returned by the certificate repository when the
	// (event, user) pair already has a certificate. Expected race outcome;
	// the certificate service resolves it locally.
	ErrAlreadyIssued = errors.New("certificate already issued")

	// ErrCorruptRecord marks a stored certificate whose fields fail to
	// parse. Distinct from a hash mismatch so operators can tell storage
	// corruption from tampering.
	ErrCorruptRecord = errors.New("corrupt certificate record")

	// ErrStorageUnavailable marks a transient storage failure. Safe to
	// retry: every write path is idempotent by natural key.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrEntropyUnavailable marks a failed read from the secure random
	// source. Fatal; identifier generation never degrades to a weaker
	// source.
	ErrEntropyUnavailable = errors.New("entropy source unavailable")
)
