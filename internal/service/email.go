package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// OTPPurpose selects the wording of a code email.
type OTPPurpose string

const (
	OTPPurposeVerification OTPPurpose = "verification"
	OTPPurposeLogin        OTPPurpose = "login"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appName   string
}

func NewEmailService(apiKey, fromEmail, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appName:   appName,
	}
}

// SendOTPEmail delivers a one-time code. The purpose only changes the
// wording of the email, not the code semantics.
func (s *EmailService) SendOTPEmail(email, code string, purpose OTPPurpose) error {
	subject, body := otpEmailTemplate(code, purpose, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "otp", "purpose", string(purpose), "to", email, "code", code)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", "otp", "purpose", string(purpose), "to", email)
	}
	return err
}
