package integrity

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"campuscert/internal/domain"
)

// sha256Codec canonicalizes certificate fields into a single byte sequence
// and digests it with SHA-256. Each field is prefixed with its big-endian
// uint32 byte length, so no two distinct field tuples can serialize to the
// same bytes regardless of field content. A plain delimiter join would be
// ambiguous whenever an id contains the delimiter.
type sha256Codec struct{}

// NewSHA256Codec returns a HashCodec producing 64-char lowercase hex digests.
func NewSHA256Codec() domain.HashCodec {
	return &sha256Codec{}
}

// Digest field order is fixed: eventID, userID, certID, issueDate. The
// timestamp is canonicalized to UTC RFC3339 at second precision so the
// digest input survives a timestamptz round-trip through the database.
func (c *sha256Codec) Digest(eventID, userID, certID string, issueDate time.Time) (string, error) {
	if eventID == "" || userID == "" || certID == "" {
		return "", fmt.Errorf("%w: event, user, and certificate ids are required", domain.ErrInvalidInput)
	}
	if issueDate.IsZero() {
		return "", fmt.Errorf("%w: issue date is required", domain.ErrInvalidInput)
	}

	fields := []string{
		eventID,
		userID,
		certID,
		issueDate.UTC().Format(time.RFC3339),
	}

	h := sha256.New()
	var size [4]byte
	for _, f := range fields {
		binary.BigEndian.PutUint32(size[:], uint32(len(f)))
		h.Write(size[:])
		h.Write([]byte(f))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
