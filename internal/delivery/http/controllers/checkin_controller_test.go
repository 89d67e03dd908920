package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campuscert/internal/delivery/http/helpers"
	"campuscert/internal/delivery/http/middleware"
	"campuscert/internal/domain"
)

type mockCertificateService struct {
	result     *domain.CheckInResult
	verifyRes  *domain.VerificationResult
	certs      []*domain.CertificateRecord
	checkInErr error
	verifyErr  error
	listErr    error
}

func (m *mockCertificateService) CheckInAndIssue(ctx context.Context, eventID, userID string) (*domain.CheckInResult, error) {
	if m.checkInErr != nil {
		return nil, m.checkInErr
	}
	return m.result, nil
}

func (m *mockCertificateService) VerifyCertificate(ctx context.Context, id string) (*domain.VerificationResult, error) {
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	return m.verifyRes, nil
}

func (m *mockCertificateService) ListUserCertificates(ctx context.Context, userID string) ([]*domain.CertificateRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.certs, nil
}

type mockEmailService struct {
	sent chan *domain.CertificateIssuedEmailData
}

func newMockEmailService() *mockEmailService {
	return &mockEmailService{sent: make(chan *domain.CertificateIssuedEmailData, 1)}
}

func (m *mockEmailService) SendCertificateIssued(ctx context.Context, data *domain.CertificateIssuedEmailData) error {
	m.sent <- data
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func sampleCheckInResult(alreadyIssued bool) *domain.CheckInResult {
	issued := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	return &domain.CheckInResult{
		Attendance: &domain.AttendanceRecord{
			ID: "att-1", EventID: "evt-1", UserID: "user-1", Present: true, RecordedAt: issued,
		},
		Certificate: &domain.CertificateRecord{
			ID: "cert-1", EventID: "evt-1", UserID: "user-1", IssueDate: issued,
			IntegrityHash: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
		},
		AlreadyIssued: alreadyIssued,
	}
}

func checkInRequest(eventID string, authenticated bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/attendee/events/"+eventID+"/check-in", nil)
	req.SetPathValue("eventID", eventID)
	if authenticated {
		req = req.WithContext(middleware.SetUser(req.Context(), "user-1", "user-1@example.edu"))
	}
	return req
}

func TestCheckInController_CheckIn_Created(t *testing.T) {
	svc := &mockCertificateService{result: sampleCheckInResult(false)}
	email := newMockEmailService()
	ctrl := NewCheckInController(testLogger(), svc, email)

	w := httptest.NewRecorder()
	ctrl.CheckIn(w, checkInRequest("evt-1", true))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}

	select {
	case data := <-email.sent:
		if data.Email != "user-1@example.edu" {
			t.Errorf("notification sent to %q, want user-1@example.edu", data.Email)
		}
		if data.CertificateID != "cert-1" {
			t.Errorf("notification for certificate %q, want cert-1", data.CertificateID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected an issuance notification")
	}
}

func TestCheckInController_CheckIn_AlreadyIssued(t *testing.T) {
	svc := &mockCertificateService{result: sampleCheckInResult(true)}
	email := newMockEmailService()
	ctrl := NewCheckInController(testLogger(), svc, email)

	w := httptest.NewRecorder()
	ctrl.CheckIn(w, checkInRequest("evt-1", true))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	select {
	case <-email.sent:
		t.Fatal("repeat check-in must not send another notification")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCheckInController_CheckIn_Unauthorized(t *testing.T) {
	svc := &mockCertificateService{result: sampleCheckInResult(false)}
	ctrl := NewCheckInController(testLogger(), svc, nil)

	w := httptest.NewRecorder()
	ctrl.CheckIn(w, checkInRequest("evt-1", false))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestCheckInController_CheckIn_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"storage unavailable", domain.ErrStorageUnavailable, http.StatusServiceUnavailable, helpers.ErrCodeServiceUnavailable},
		{"entropy unavailable", domain.ErrEntropyUnavailable, http.StatusInternalServerError, helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCertificateService{checkInErr: tt.err}
			ctrl := NewCheckInController(testLogger(), svc, nil)

			w := httptest.NewRecorder()
			ctrl.CheckIn(w, checkInRequest("evt-1", true))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var resp helpers.APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Fatalf("expected error code %q, got %+v", tt.wantCode, resp.Error)
			}
		})
	}
}

func TestCheckInController_CheckIn_MissingEventID(t *testing.T) {
	svc := &mockCertificateService{result: sampleCheckInResult(false)}
	ctrl := NewCheckInController(testLogger(), svc, nil)

	w := httptest.NewRecorder()
	ctrl.CheckIn(w, checkInRequest("", true))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
