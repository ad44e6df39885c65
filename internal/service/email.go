package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
	"github.com/slatesocial/site/internal/model"
)

var errEmailNotConfigured = errors.New("email service not configured (missing RESEND_API_KEY)")

type EmailService struct {
	client      *resend.Client
	fromEmail   string
	audienceID  string
	notifyEmail string
	isDev       bool
	siteURL     string
	siteName    string
}

func NewEmailService(apiKey, fromEmail, audienceID, notifyEmail, siteURL, siteName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:      client,
		fromEmail:   fromEmail,
		audienceID:  audienceID,
		notifyEmail: notifyEmail,
		isDev:       isDev,
		siteURL:     siteURL,
		siteName:    siteName,
	}
}

// SendRegistrationConfirmation thanks the registrant for joining the beta list.
func (s *EmailService) SendRegistrationConfirmation(ctx context.Context, reg *model.Registration) error {
	subject, body := registrationConfirmationTemplate(reg.FullName, reg.GymName, s.siteURL, s.siteName)
	return s.send(ctx, "registration_confirmation", reg.Email, subject, body)
}

// SendRegistrationNotification tells the team about a new beta registration.
func (s *EmailService) SendRegistrationNotification(ctx context.Context, reg *model.Registration) error {
	if s.notifyEmail == "" {
		return nil
	}
	subject, body := registrationNotificationTemplate(reg, s.siteName)
	return s.send(ctx, "registration_notification", s.notifyEmail, subject, body)
}

func (s *EmailService) send(ctx context.Context, kind, to, subject, body string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "type", kind, "to", to, "subject", subject)
		return nil
	}

	if s.client == nil {
		return errEmailNotConfigured
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}
	slog.Info("email sent", "type", kind, "to", to)
	return nil
}

// AddContact adds the registrant to the beta audience.
// Failures are logged and swallowed to prevent email enumeration.
func (s *EmailService) AddContact(ctx context.Context, reg *model.Registration) error {
	if s.isDev {
		slog.Info("audience contact added (dev mode)", "email", reg.Email)
		return nil
	}

	if s.client == nil {
		return errEmailNotConfigured
	}

	if s.audienceID == "" {
		slog.Warn("registration received but no audience configured", "email", reg.Email)
		return nil
	}

	params := &resend.CreateContactRequest{
		Email:      reg.Email,
		FirstName:  firstName(reg.FullName),
		AudienceId: s.audienceID,
	}

	_, err := s.client.Contacts.CreateWithContext(ctx, params)
	if err != nil {
		slog.Warn("audience contact failed", "error", err, "email", reg.Email)
		return nil
	}

	slog.Info("audience contact added", "email", reg.Email)
	return nil
}
