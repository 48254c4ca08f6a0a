// Package mailer delivers transactional mail through an authenticated SMTP
// relay.
package mailer

//go:generate mockgen -destination=../mocks/mock_mailer.go -package=mocks github.com/GowthamBk/student-management-api/internal/mailer Sender

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Sender delivers a password-reset message to one recipient.
type Sender interface {
	SendPasswordReset(ctx context.Context, to, resetToken string) error
}

// SMTPSender sends plain-text mail over STARTTLS with plain auth.
type SMTPSender struct {
	host        string
	port        int
	username    string
	password    string
	frontendURL string
}

func NewSMTPSender(host string, port int, username, password, frontendURL string) *SMTPSender {
	return &SMTPSender{
		host:        host,
		port:        port,
		username:    username,
		password:    password,
		frontendURL: frontendURL,
	}
}

const resetBodyTemplate = `Hello,

You have requested to reset your password. Please click the link below to reset your password:

%s/reset-password?token=%s

This link will expire in 1 hour.

If you did not request this password reset, please ignore this email.

Best regards,
Your App Team
`

func (s *SMTPSender) SendPasswordReset(ctx context.Context, to, resetToken string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.username); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("Password Reset Request")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(resetBodyTemplate, s.frontendURL, resetToken))

	client, err := mail.NewClient(s.host,
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.username),
		mail.WithPassword(s.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("failed to build SMTP client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, msg)
}
