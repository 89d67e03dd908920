package services

import (
	"context"
	"fmt"
	"log"

	"campuscert/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendCertificateIssued sends the issuance notification using the
// "certificate_issued" template and the given data.
func (s *emailService) SendCertificateIssued(ctx context.Context, data *domain.CertificateIssuedEmailData) error {
	if data == nil {
		return fmt.Errorf("certificate issued data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("certificate_issued", data)
	if err != nil {
		return fmt.Errorf("failed to render certificate_issued template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send certificate email: %w", err)
	}
	log.Printf("[EMAIL] Certificate notification sent to %s", data.Email)
	return nil
}
