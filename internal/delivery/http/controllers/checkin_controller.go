package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"campuscert/internal/delivery/http/helpers"
	"campuscert/internal/delivery/http/middleware"
	"campuscert/internal/domain"
)

// emailSendTimeout bounds the best-effort notification send so it can never
// hold a goroutine forever.
const emailSendTimeout = 30 * time.Second

type CheckInController struct {
	Logger  *slog.Logger
	Service domain.CertificateService
	Email   domain.EmailService
}

// NewCheckInController returns a CheckInController. Email may be nil, in which
// case no issuance notifications are sent.
func NewCheckInController(logger *slog.Logger, svc domain.CertificateService, email domain.EmailService) *CheckInController {
	return &CheckInController{
		Logger:  logger,
		Service: svc,
		Email:   email,
	}
}

// CheckInSuccessResponse is the success response envelope for POST /attendee/events/{eventID}/check-in (200 or 201).
type CheckInSuccessResponse struct {
	Data  *domain.CheckInResult `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// CheckIn godoc
// @Summary Check in to an event and receive an attendance certificate
// @Description Records the authenticated user's attendance for the event and issues a tamper-evident certificate in the same operation. Idempotent: returns 201 with a fresh certificate on the first check-in, 200 with the existing certificate on every repeat.
// @Tags attendee
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.CheckInSuccessResponse "Already checked in; existing certificate returned"
// @Success 201 {object} controllers.CheckInSuccessResponse "Attendance recorded and certificate issued"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /attendee/events/{eventID}/check-in [post]
func (c *CheckInController) CheckIn(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	result, err := c.Service.CheckInAndIssue(r.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrStorageUnavailable) {
			c.Logger.ErrorContext(r.Context(), "storage unavailable", "path", r.URL.Path, "err", err)
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeServiceUnavailable, "storage temporarily unavailable")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	if !result.AlreadyIssued {
		c.notifyIssued(r, result)
		helpers.WriteJSONSuccess(w, http.StatusCreated, result)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// notifyIssued sends the issuance notification in the background. Best effort:
// a failed send is logged and never affects the check-in response.
func (c *CheckInController) notifyIssued(r *http.Request, result *domain.CheckInResult) {
	if c.Email == nil || result.Certificate == nil {
		return
	}
	email, ok := middleware.UserEmailFromContext(r.Context())
	if !ok || email == "" {
		return
	}
	cert := result.Certificate
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), emailSendTimeout)
		defer cancel()
		err := c.Email.SendCertificateIssued(ctx, &domain.CertificateIssuedEmailData{
			Email:         email,
			EventID:       cert.EventID,
			CertificateID: cert.ID,
			IntegrityHash: cert.IntegrityHash,
			IssueDate:     cert.IssueDate.Format(time.RFC3339),
		})
		if err != nil {
			c.Logger.Error("certificate notification failed", "certificate_id", cert.ID, "err", err)
		}
	}()
}
