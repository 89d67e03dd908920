package identifier

import (
	"fmt"

	"github.com/google/uuid"

	"campuscert/internal/domain"
)

// uuidGenerator produces UUIDv4 identifiers from crypto/rand. 122 bits of
// randomness, independent of event/user content, so ids leak no correlation
// info and collisions are negligible across the system lifetime.
type uuidGenerator struct{}

// NewUUIDGenerator returns an IdentifierGenerator producing canonical
// UUID strings.
func NewUUIDGenerator() domain.IdentifierGenerator {
	return &uuidGenerator{}
}

func (g *uuidGenerator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		// No fallback: a degraded random source must abort the request.
		return "", fmt.Errorf("%w: %v", domain.ErrEntropyUnavailable, err)
	}
	return id.String(), nil
}
