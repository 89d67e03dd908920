package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"campuscert/internal/delivery/http/helpers"
	"campuscert/internal/delivery/http/middleware"
	"campuscert/internal/domain"
)

type AttendanceController struct {
	Logger *slog.Logger
	Ledger domain.AttendanceLedger
}

func NewAttendanceController(logger *slog.Logger, ledger domain.AttendanceLedger) *AttendanceController {
	return &AttendanceController{
		Logger: logger,
		Ledger: ledger,
	}
}

// ListAttendanceSuccessResponse is the success response envelope for GET /attendee/attendance (200).
type ListAttendanceSuccessResponse struct {
	Data  []*domain.AttendanceRecord `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// ListMyAttendance godoc
// @Summary List the current user's attendance records
// @Description Returns every event check-in recorded for the authenticated user.
// @Tags attendee
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListAttendanceSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /attendee/attendance [get]
func (c *AttendanceController) ListMyAttendance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	recs, err := c.Ledger.ListUserAttendance(r.Context(), userID)
	if err != nil {
		c.writeListError(w, r, err)
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, recs)
}

// EventAttendancePage is the paginated payload for GET /admin/events/{eventID}/attendance.
// swagger:model EventAttendancePage
type EventAttendancePage struct {
	Records    []*domain.AttendanceRecord `json:"records"`
	Pagination helpers.PaginationMeta     `json:"pagination"`
}

// EventAttendanceSuccessResponse is the success response envelope for GET /admin/events/{eventID}/attendance (200).
type EventAttendanceSuccessResponse struct {
	Data  *EventAttendancePage `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ListEventAttendance godoc
// @Summary List attendance for an event (admin)
// @Description Returns the attendance records for the event, paginated. Requires the X-Admin-Key header.
// @Tags admin
// @Produce json
// @Security AdminKeyAuth
// @Param eventID path string true "Event ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.EventAttendanceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /admin/events/{eventID}/attendance [get]
func (c *AttendanceController) ListEventAttendance(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	params := helpers.ParsePagination(r)
	recs, total, err := c.Ledger.ListEventAttendance(r.Context(), eventID, params)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.writeListError(w, r, err)
		return
	}

	page := &EventAttendancePage{
		Records:    recs,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

func (c *AttendanceController) writeListError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrStorageUnavailable) {
		c.Logger.ErrorContext(r.Context(), "storage unavailable", "path", r.URL.Path, "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeServiceUnavailable, "storage temporarily unavailable")
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}
