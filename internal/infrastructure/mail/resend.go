package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/oladokun-o/engine/internal/core/ports"
)

type resendEmails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type ResendMailer struct {
	emails resendEmails
	domain string
}

var _ ports.Mailer = (*ResendMailer)(nil)

func NewResendMailer(apiKey, domain string) *ResendMailer {
	return &ResendMailer{emails: resend.NewClient(apiKey).Emails, domain: domain}
}

func (r *ResendMailer) Send(ctx context.Context, n ports.Notification) error {
	req := &resend.SendEmailRequest{
		From:    Address(n.From, r.domain),
		To:      []string{n.To},
		Subject: n.Subject,
	}
	if n.HTML {
		req.Html = n.Body
	} else {
		req.Text = n.Body
	}
	if _, err := r.emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}
