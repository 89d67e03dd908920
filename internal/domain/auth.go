package domain

import "time"

// TokenIssuer issues bearer tokens (e.g. JWT) for an authenticated user.
// Token provisioning itself lives outside this service; the issuer exists
// for tooling and tests.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the authenticated user
// ID and the email claim (may be empty).
type TokenVerifier interface {
	Verify(token string) (userID, email string, err error)
}

// AdminKeyVerifier checks an operator API key against its stored hash.
type AdminKeyVerifier interface {
	VerifyKey(key string) error
}
