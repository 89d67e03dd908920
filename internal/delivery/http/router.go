package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"campuscert/internal/delivery/http/controllers"
	"campuscert/internal/delivery/http/middleware"
	"campuscert/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	logger *slog.Logger,
	tokens domain.TokenVerifier,
	adminKeys domain.AdminKeyVerifier,
	checkIn *controllers.CheckInController,
	certificates *controllers.CertificateController,
	attendance *controllers.AttendanceController,
) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(tokens, logger)
	admin := middleware.RequireAdminKey(adminKeys, logger)

	// Attendee routes (Bearer token)
	mux.HandleFunc("POST /attendee/events/{eventID}/check-in", auth(checkIn.CheckIn))
	mux.HandleFunc("GET /attendee/certificates", auth(certificates.ListMyCertificates))
	mux.HandleFunc("GET /attendee/attendance", auth(attendance.ListMyAttendance))

	// Public verification
	mux.HandleFunc("GET /certificates/{certificateID}/verification", certificates.VerifyCertificate)

	// Admin routes (X-Admin-Key)
	mux.HandleFunc("GET /admin/events/{eventID}/attendance", admin(attendance.ListEventAttendance))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
