package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"campuscert/internal/delivery/http/helpers"
	"campuscert/internal/delivery/http/middleware"
	"campuscert/internal/domain"
)

type CertificateController struct {
	Logger  *slog.Logger
	Service domain.CertificateService
}

func NewCertificateController(logger *slog.Logger, svc domain.CertificateService) *CertificateController {
	return &CertificateController{
		Logger:  logger,
		Service: svc,
	}
}

// VerifyCertificateSuccessResponse is the success response envelope for GET /certificates/{certificateID}/verification (200).
type VerifyCertificateSuccessResponse struct {
	Data  *domain.VerificationResult `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// VerifyCertificate godoc
// @Summary Verify a certificate by its public identifier
// @Description Looks up the certificate, recomputes the integrity hash from the stored fields, and reports whether it matches. Public: no authentication required. A 200 with valid=false means the stored record no longer matches its hash; the record is included so the discrepancy can be inspected.
// @Tags certificates
// @Produce json
// @Param certificateID path string true "Certificate ID"
// @Success 200 {object} controllers.VerifyCertificateSuccessResponse "Verification outcome (valid true or false)"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: corrupt_record or internal_error"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /certificates/{certificateID}/verification [get]
func (c *CertificateController) VerifyCertificate(w http.ResponseWriter, r *http.Request) {
	certificateID := r.PathValue("certificateID")
	if certificateID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing certificateID")
		return
	}

	result, err := c.Service.VerifyCertificate(r.Context(), certificateID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "certificate not found")
			return
		}
		if errors.Is(err, domain.ErrCorruptRecord) {
			c.Logger.ErrorContext(r.Context(), "corrupt certificate record", "certificate_id", certificateID, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeCorruptRecord, "stored record is not verifiable")
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

	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// ListCertificatesSuccessResponse is the success response envelope for GET /attendee/certificates (200).
type ListCertificatesSuccessResponse struct {
	Data  []*domain.CertificateRecord `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// ListMyCertificates godoc
// @Summary List the current user's certificates
// @Description Returns all certificates issued to the authenticated user, newest first.
// @Tags attendee
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListCertificatesSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /attendee/certificates [get]
func (c *CertificateController) ListMyCertificates(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	certs, err := c.Service.ListUserCertificates(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			c.Logger.ErrorContext(r.Context(), "storage unavailable", "path", r.URL.Path, "err", err)
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeServiceUnavailable, "storage temporarily unavailable")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, certs)
}
