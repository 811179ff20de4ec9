package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ResendEmailSender sends the welcome email through the Resend API. The user
// service treats a nil sender as "email disabled".
type ResendEmailSender struct {
	client *resend.Client
	from   string
}

func NewResendEmailSender(apiKey string, from string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return nil
	}
	return &ResendEmailSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendEmailSender) SendWelcomeEmail(ctx context.Context, email string, firstName string, affiliate string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{email},
		Subject: "Welcome",
		Html: fmt.Sprintf(
			"<p>Hi %s, your account is ready.</p><p>Your affiliate code is <strong>%s</strong>.</p>",
			firstName, affiliate,
		),
		Text: fmt.Sprintf("Hi %s, your account is ready. Your affiliate code is %s.", firstName, affiliate),
	}
	_, err := s.client.Emails.Send(params)
	return err
}
