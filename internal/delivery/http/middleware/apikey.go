package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	h "campuscert/internal/delivery/http/helpers"
	"campuscert/internal/domain"
)

// AdminKeyHeader carries the admin API key on administrative routes.
const AdminKeyHeader = "X-Admin-Key"

// RequireAdminKey returns a wrapper that checks the X-Admin-Key header against
// the configured admin key verifier.
// If the key is missing or does not match, it responds with 401 and does not call next.
func RequireAdminKey(verifier domain.AdminKeyVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(AdminKeyHeader))
			if key == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing admin key")
				return
			}
			if err := verifier.VerifyKey(key); err != nil {
				logger.Warn("admin key rejected", "path", r.URL.Path)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid admin key")
				return
			}
			next(w, r)
		}
	}
}
